package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/models"
)

// Compression is off, so rendered text is visible in the raw output and the
// tests can assert on content and ordering directly.

func TestRenderShoppingListPDFContainsRowsInOrder(t *testing.T) {
	doc, err := RenderShoppingListPDF([]database.ShoppingListRow{
		{Name: "Flour", MeasurementUnit: "g", Amount: 300},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 200},
		{Name: "Salt", MeasurementUnit: "g", Amount: 8},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	for _, want := range []string{"Shopping list", "Item", "Qnty", "Units", "Flour", "300", "Milk", "200", "Salt"} {
		assert.Contains(t, string(doc), want)
	}

	flour := bytes.Index(doc, []byte("Flour"))
	milk := bytes.Index(doc, []byte("Milk"))
	salt := bytes.Index(doc, []byte("Salt"))
	assert.Less(t, flour, milk)
	assert.Less(t, milk, salt)
}

func TestRenderShoppingListPDFEmpty(t *testing.T) {
	doc, err := RenderShoppingListPDF(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
	assert.Contains(t, string(doc), "Shopping list")
	assert.Contains(t, string(doc), "Item")
}

func TestRenderShoppingListPDFPaginatesLongLists(t *testing.T) {
	rows := make([]database.ShoppingListRow, 40)
	for i := range rows {
		rows[i] = database.ShoppingListRow{Name: "Ingredient", MeasurementUnit: "g", Amount: i + 1}
	}

	doc, err := RenderShoppingListPDF(rows)
	require.NoError(t, err)
	// 40 rows at 8mm spacing overflow one page.
	assert.Contains(t, string(doc), "/Count 2")
}

func TestBuildPDFFromCart(t *testing.T) {
	store := newTestStore(t)
	svc := NewShoppingListService(store.ShoppingListRepo())

	user := seedUser(t, store, "alice")
	salt := seedIngredient(t, store, "Salt", "g")

	recipe := &models.Recipe{
		Name:        "soup",
		Image:       "recipes/soup.png",
		Text:        "Cook soup",
		CookingTime: 10,
		AuthorID:    user.ID,
		Ingredients: []models.RecipeIngredient{{IngredientID: salt.ID, Amount: 5}},
	}
	require.NoError(t, store.RecipeRepo().Add(recipe))
	require.NoError(t, store.LedgerRepo().Add(database.RelationShoppingCart, user.ID, recipe.ID))

	doc, err := svc.BuildPDF(user.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
	assert.Contains(t, string(doc), "Salt")
	assert.Contains(t, string(doc), "5")
}

func TestBuildPDFEmptyCart(t *testing.T) {
	store := newTestStore(t)
	svc := NewShoppingListService(store.ShoppingListRepo())

	user := seedUser(t, store, "alice")

	doc, err := svc.BuildPDF(user.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
