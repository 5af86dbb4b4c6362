package api

import (
	"github.com/google/uuid"

	"github.com/recipebox/backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler       userHandler
	tagHandler        tagHandler
	ingredientHandler ingredientHandler
	recipeHandler     recipeHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// Page is the list envelope shared by paginated endpoints.
type Page struct {
	Count   int64 `json:"count"`
	Results any   `json:"results"`
}

// AbridgedRecipe is the reduced recipe representation used in toggle
// responses and subscription previews.
type AbridgedRecipe struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

func abridge(recipe *models.Recipe) AbridgedRecipe {
	return AbridgedRecipe{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func abridgeAll(recipes []*models.Recipe) []AbridgedRecipe {
	abridged := make([]AbridgedRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		abridged = append(abridged, abridge(recipe))
	}
	return abridged
}
