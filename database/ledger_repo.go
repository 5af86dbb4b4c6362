package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/models"
)

// Relation selects which user-recipe ledger a toggle operates on. A tagged
// value instead of one repo type per relation: Favorite and ShoppingCart are
// structurally identical.
type Relation int

const (
	RelationFavorite Relation = iota
	RelationShoppingCart
)

// String names the relation in user-facing conflict messages.
func (rel Relation) String() string {
	switch rel {
	case RelationFavorite:
		return "favorites"
	case RelationShoppingCart:
		return "shopping cart"
	default:
		return fmt.Sprintf("relation(%d)", int(rel))
	}
}

func (rel Relation) model() interface{} {
	if rel == RelationFavorite {
		return &models.Favorite{}
	}
	return &models.ShoppingCart{}
}

// LedgerRepo holds the user-recipe ledgers (Favorite, ShoppingCart) and the
// user-author Subscription ledger.
type LedgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) *LedgerRepo {
	return &LedgerRepo{db}
}

// Exists reports whether the ledger holds a row for (user, recipe).
func (r *LedgerRepo) Exists(rel Relation, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(rel.model()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a ledger row. A concurrent duplicate insert fails on the
// unique index and comes back as gorm.ErrDuplicatedKey; callers translate
// that to the same conflict as a failed pre-check.
func (r *LedgerRepo) Add(rel Relation, userID, recipeID uuid.UUID) error {
	switch rel {
	case RelationFavorite:
		return r.db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	default:
		return r.db.Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
	}
}

// Remove deletes the ledger row for (user, recipe) and reports whether one
// was there to delete.
func (r *LedgerRepo) Remove(rel Relation, userID, recipeID uuid.UUID) (bool, error) {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(rel.model())
	return res.RowsAffected > 0, res.Error
}

// SubscriptionExists reports whether user follows author.
func (r *LedgerRepo) SubscriptionExists(userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// AddSubscription inserts a subscription row.
func (r *LedgerRepo) AddSubscription(userID, authorID uuid.UUID) error {
	return r.db.Create(&models.Subscription{UserID: userID, AuthorID: authorID}).Error
}

// RemoveSubscription deletes the subscription row and reports whether one
// was there to delete.
func (r *LedgerRepo) RemoveSubscription(userID, authorID uuid.UUID) (bool, error) {
	res := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Subscription{})
	return res.RowsAffected > 0, res.Error
}

// Authors returns the authors the user follows, ordered by username.
func (r *LedgerRepo) Authors(userID uuid.UUID) ([]*models.User, error) {
	var authors []*models.User
	err := r.db.Model(&models.User{}).
		Select("users.*, ? AS is_subscribed", true).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("users.username").
		Find(&authors).Error
	return authors, err
}
