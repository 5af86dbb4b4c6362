package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/models"
)

// newTestStore opens an in-memory sqlite store with the full schema, pinned
// to one connection so every query sees the same memory database.
func newTestStore(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return database.New(db)
}

func seedUser(t *testing.T, store database.Database, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, store.UserRepo().Add(user))
	return user
}

func seedRecipe(t *testing.T, store database.Database, author *models.User, name string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Name:        name,
		Image:       "recipes/" + name + ".png",
		Text:        "Cook " + name,
		CookingTime: 10,
		AuthorID:    author.ID,
	}
	require.NoError(t, store.RecipeRepo().Add(recipe))
	return recipe
}

func seedIngredient(t *testing.T, store database.Database, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, store.IngredientRepo().Add(ingredient))
	return ingredient
}
