package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/errs"
)

func TestSubscribeToSelfRejected(t *testing.T) {
	store := newTestStore(t)
	svc := NewSubscriptionService(store.UserRepo(), store.RecipeRepo(), store.LedgerRepo())

	user := seedUser(t, store, "alice")

	_, err := svc.Subscribe(user.ID, user.ID)
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestSubscribeTwiceConflicts(t *testing.T) {
	store := newTestStore(t)
	svc := NewSubscriptionService(store.UserRepo(), store.RecipeRepo(), store.LedgerRepo())

	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	author, err := svc.Subscribe(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, author.IsSubscribed)

	_, err = svc.Subscribe(alice.ID, bob.ID)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestUnsubscribeRequiresSubscription(t *testing.T) {
	store := newTestStore(t)
	svc := NewSubscriptionService(store.UserRepo(), store.RecipeRepo(), store.LedgerRepo())

	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	err := svc.Unsubscribe(alice.ID, bob.ID)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	_, err = svc.Subscribe(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(alice.ID, bob.ID))
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	store := newTestStore(t)
	svc := NewSubscriptionService(store.UserRepo(), store.RecipeRepo(), store.LedgerRepo())

	alice := seedUser(t, store, "alice")

	_, err := svc.Subscribe(alice.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestSubscriptionsPreviewLimit(t *testing.T) {
	store := newTestStore(t)
	svc := NewSubscriptionService(store.UserRepo(), store.RecipeRepo(), store.LedgerRepo())

	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	for _, name := range []string{"soup", "stew", "salad"} {
		seedRecipe(t, store, bob, name)
	}

	_, err := svc.Subscribe(alice.ID, bob.ID)
	require.NoError(t, err)

	subscribed, err := svc.Subscriptions(alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, subscribed, 1)
	assert.Equal(t, "bob", subscribed[0].Author.Username)
	assert.Len(t, subscribed[0].Recipes, 2, "preview capped at recipes_limit")
	assert.EqualValues(t, 3, subscribed[0].RecipesCount, "count reflects all recipes")

	// No limit returns everything.
	subscribed, err = svc.Subscriptions(alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, subscribed, 1)
	assert.Len(t, subscribed[0].Recipes, 3)
}
