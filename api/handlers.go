package api

import (
	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, auth services.AuthService) *routeHandlers {
	toggles := services.NewToggleService(db.RecipeRepo(), db.LedgerRepo())
	subscriptions := services.NewSubscriptionService(db.UserRepo(), db.RecipeRepo(), db.LedgerRepo())
	shoppingList := services.NewShoppingListService(db.ShoppingListRepo())

	return &routeHandlers{
		userHandler:       newUserHandler(db.UserRepo(), auth, subscriptions),
		tagHandler:        newTagHandler(db.TagRepo()),
		ingredientHandler: newIngredientHandler(db.IngredientRepo()),
		recipeHandler:     newRecipeHandler(db.RecipeRepo(), db.TagRepo(), db.IngredientRepo(), toggles, shoppingList),
	}
}
