package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/errs"
	"github.com/recipebox/backend/models"
)

func TestLedgerAddIsUniquePerPair(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepo(db)
	user := createTestUser(t, db, "alice")
	recipe := createTestRecipe(t, db, user, "soup", nil)

	for _, rel := range []Relation{RelationFavorite, RelationShoppingCart} {
		require.NoError(t, repo.Add(rel, user.ID, recipe.ID))

		err := repo.Add(rel, user.ID, recipe.ID)
		require.Error(t, err)
		assert.True(t, errs.IsDuplicateKey(err), "second add must hit the unique index, got: %v", err)

		exists, err := repo.Exists(rel, user.ID, recipe.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	}

	// Exactly one row per relation survived the duplicate attempts.
	var favorites, carts int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favorites).Error)
	require.NoError(t, db.Model(&models.ShoppingCart{}).Count(&carts).Error)
	assert.EqualValues(t, 1, favorites)
	assert.EqualValues(t, 1, carts)
}

func TestLedgerRelationsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepo(db)
	user := createTestUser(t, db, "alice")
	recipe := createTestRecipe(t, db, user, "soup", nil)

	require.NoError(t, repo.Add(RelationFavorite, user.ID, recipe.ID))

	inCart, err := repo.Exists(RelationShoppingCart, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, inCart, "favoriting must not touch the cart")
}

func TestLedgerRemoveReportsPresence(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepo(db)
	user := createTestUser(t, db, "alice")
	recipe := createTestRecipe(t, db, user, "soup", nil)

	deleted, err := repo.Remove(RelationFavorite, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "nothing to remove yet")

	require.NoError(t, repo.Add(RelationFavorite, user.ID, recipe.ID))

	deleted, err = repo.Remove(RelationFavorite, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestSubscriptionUniquePerPair(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepo(db)
	follower := createTestUser(t, db, "alice")
	author := createTestUser(t, db, "bob")

	require.NoError(t, repo.AddSubscription(follower.ID, author.ID))

	err := repo.AddSubscription(follower.ID, author.ID)
	require.Error(t, err)
	assert.True(t, errs.IsDuplicateKey(err))
}

func TestAuthorsListsFollowedUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepo(db)
	follower := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	createTestUser(t, db, "dave") // not followed

	require.NoError(t, repo.AddSubscription(follower.ID, carol.ID))
	require.NoError(t, repo.AddSubscription(follower.ID, bob.ID))

	authors, err := repo.Authors(follower.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "bob", authors[0].Username)
	assert.Equal(t, "carol", authors[1].Username)
	assert.True(t, authors[0].IsSubscribed)
}

func TestRecipeIngredientUniquePerRecipe(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	salt := createTestIngredient(t, db, "Salt", "g")
	recipe := createTestRecipe(t, db, user, "soup", nil, testAmount{salt, 5})

	err := db.Create(&models.RecipeIngredient{
		RecipeID:     recipe.ID,
		IngredientID: salt.ID,
		Amount:       3,
	}).Error
	require.Error(t, err)
	assert.True(t, errs.IsDuplicateKey(err))
}
