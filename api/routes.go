package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Read endpoints take an optional token so
// the per-user flags can be computed; mutations require one.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public endpoints
		r.Post("/api/users", handlers.userHandler.signup())
		r.Post("/api/auth/token/login", handlers.userHandler.login())
		r.Get("/api/tags", handlers.tagHandler.getAllTags())
		r.Get("/api/tags/{tagID}", handlers.tagHandler.getTag())
		r.Get("/api/ingredients", handlers.ingredientHandler.getAllIngredients())
		r.Get("/api/ingredients/{ingredientID}", handlers.ingredientHandler.getIngredient())

		// Reads with optional authentication
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticateOptional)

			r.Get("/api/users", handlers.userHandler.getAllUsers())
			r.Get("/api/recipes", handlers.recipeHandler.getAllRecipes())
		})

		// Authenticated endpoints. Static segments are registered in the
		// same tree as the {userID}/{recipeID} params; chi matches static
		// routes first.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/api/users/me", handlers.userHandler.getMe())
			r.Get("/api/users/subscriptions", handlers.userHandler.getSubscriptions())
			r.Post("/api/users/{userID}/subscribe", handlers.userHandler.subscribe())
			r.Delete("/api/users/{userID}/subscribe", handlers.userHandler.unsubscribe())

			r.Post("/api/recipes", handlers.recipeHandler.createRecipe())
			r.Patch("/api/recipes/{recipeID}", handlers.recipeHandler.updateRecipe())
			r.Delete("/api/recipes/{recipeID}", handlers.recipeHandler.deleteRecipe())

			r.Get("/api/recipes/download_shopping_cart", handlers.recipeHandler.downloadShoppingCart())
			r.Post("/api/recipes/{recipeID}/favorite", handlers.recipeHandler.addFavorite())
			r.Delete("/api/recipes/{recipeID}/favorite", handlers.recipeHandler.removeFavorite())
			r.Post("/api/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.addToShoppingCart())
			r.Delete("/api/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.removeFromShoppingCart())
		})

		// Detail reads with optional authentication, after the static routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticateOptional)

			r.Get("/api/users/{userID}", handlers.userHandler.getUser())
			r.Get("/api/recipes/{recipeID}", handlers.recipeHandler.getRecipe())
		})
	})
}
