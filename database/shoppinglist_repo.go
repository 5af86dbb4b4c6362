package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/models"
)

// ShoppingListRow is one aggregated line of a user's shopping list.
type ShoppingListRow struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type ShoppingListRepo struct {
	db *gorm.DB
}

func NewShoppingListRepo(db *gorm.DB) *ShoppingListRepo {
	return &ShoppingListRepo{db}
}

// Aggregate sums ingredient amounts across every recipe in the user's cart,
// grouped by (name, measurement unit), as a single grouped query. The same
// ingredient appearing in two carted recipes comes back as one row with the
// summed amount. An empty cart yields an empty slice. Ordering by name is
// part of the contract; the PDF renders rows in this order.
func (r *ShoppingListRepo) Aggregate(userID uuid.UUID) ([]ShoppingListRow, error) {
	var rows []ShoppingListRow
	err := r.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&rows).Error
	return rows, err
}
