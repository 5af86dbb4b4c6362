package api

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/models"
)

func TestFavoriteLifecycle(t *testing.T) {
	api := newTestAPI(t)
	author, _ := api.seedUser(t, "author")
	_, token := api.seedUser(t, "reader")
	recipe := api.seedRecipe(t, author, "soup")

	target := fmt.Sprintf("/api/recipes/%s/favorite", recipe.ID)

	rec := api.do(t, http.MethodPost, target, token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var abridged AbridgedRecipe
	decodeJSON(t, rec, &abridged)
	assert.Equal(t, recipe.ID, abridged.ID)
	assert.Equal(t, "soup", abridged.Name)

	// Second add is a conflict, not a no-op.
	rec = api.do(t, http.MethodPost, target, token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, target, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Removing again fails the same way.
	rec = api.do(t, http.MethodDelete, target, token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	author, _ := api.seedUser(t, "author")
	recipe := api.seedRecipe(t, author, "soup")

	rec := api.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%s/shopping_cart", recipe.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestToggleUnknownRecipeIs404(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.seedUser(t, "reader")

	rec := api.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%s/favorite", uuid.New()), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecipeListingFlagAnnotations(t *testing.T) {
	api := newTestAPI(t)
	author, _ := api.seedUser(t, "author")
	_, token := api.seedUser(t, "reader")
	recipe := api.seedRecipe(t, author, "soup")
	api.seedRecipe(t, author, "stew")

	rec := api.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%s/favorite", recipe.ID), token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var page struct {
		Count   int64           `json:"count"`
		Results []models.Recipe `json:"results"`
	}

	rec = api.do(t, http.MethodGet, "/api/recipes", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &page)
	require.EqualValues(t, 2, page.Count)

	flags := map[string]bool{}
	for _, r := range page.Results {
		flags[r.Name] = r.IsFavorited
	}
	assert.True(t, flags["soup"])
	assert.False(t, flags["stew"])

	// Anonymous sees the same recipes with flags off.
	rec = api.do(t, http.MethodGet, "/api/recipes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &page)
	for _, r := range page.Results {
		assert.False(t, r.IsFavorited)
	}
}

func TestRecipeListingRejectsBadFlagValue(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/recipes?is_favorited=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func recipePayload(api testAPI, t *testing.T, name string) map[string]any {
	t.Helper()

	tag := &models.Tag{Name: name + "-tag", Color: "#ff0000", Slug: name + "-tag"}
	require.NoError(t, api.store.TagRepo().Add(tag))
	ingredient := &models.Ingredient{Name: name + "-salt", MeasurementUnit: "g"}
	require.NoError(t, api.store.IngredientRepo().Add(ingredient))

	return map[string]any{
		"name":         name,
		"image":        "recipes/" + name + ".png",
		"text":         "Cook " + name,
		"cooking_time": 30,
		"tags":         []string{tag.ID.String()},
		"ingredients":  []map[string]any{{"id": ingredient.ID.String(), "amount": 5}},
	}
}

func TestCreateRecipe(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.seedUser(t, "author")
	payload := recipePayload(api, t, "soup")

	rec := api.do(t, http.MethodPost, "/api/recipes", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Recipe
	decodeJSON(t, rec, &created)
	assert.Equal(t, "soup", created.Name)
	assert.Equal(t, "author", created.Author.Username)
	require.Len(t, created.Ingredients, 1)
	assert.Equal(t, 5, created.Ingredients[0].Amount)
}

func TestCreateRecipeValidation(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.seedUser(t, "author")

	payload := recipePayload(api, t, "soup")
	payload["cooking_time"] = 0

	rec := api.do(t, http.MethodPost, "/api/recipes", token, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRecipeRejectsDuplicateIngredient(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.seedUser(t, "author")

	payload := recipePayload(api, t, "soup")
	items := payload["ingredients"].([]map[string]any)
	payload["ingredients"] = append(items, map[string]any{"id": items[0]["id"], "amount": 2})

	rec := api.do(t, http.MethodPost, "/api/recipes", token, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRecipeAuthorOnly(t *testing.T) {
	api := newTestAPI(t)
	author, _ := api.seedUser(t, "author")
	_, otherToken := api.seedUser(t, "other")
	recipe := api.seedRecipe(t, author, "soup")

	payload := recipePayload(api, t, "soup2")
	rec := api.do(t, http.MethodPatch, "/api/recipes/"+recipe.ID.String(), otherToken, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteRecipe(t *testing.T) {
	api := newTestAPI(t)
	author, token := api.seedUser(t, "author")
	recipe := api.seedRecipe(t, author, "soup")

	rec := api.do(t, http.MethodDelete, "/api/recipes/"+recipe.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/recipes/"+recipe.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	api := newTestAPI(t)
	author, token := api.seedUser(t, "author")
	recipe := api.seedRecipe(t, author, "soup")

	rec := api.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%s/shopping_cart", recipe.ID), token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="shopping-list.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestDownloadShoppingCartRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
