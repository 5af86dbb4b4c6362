package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/models"
	"github.com/recipebox/backend/services"
)

const testSecret = "api-test-secret"

type testAPI struct {
	router http.Handler
	store  database.Database
	auth   services.AuthService
}

// newTestAPI wires the full router against an in-memory sqlite store, pinned
// to one connection so every query sees the same memory database.
func newTestAPI(t *testing.T) testAPI {
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

	cfg := map[string]string{"JWT_SECRET": testSecret}
	store := database.New(db)
	return testAPI{
		router: newRouter(store, withConfig(cfg)),
		store:  store,
		auth:   services.NewAuthService(cfg),
	}
}

// seedUser creates an account directly in the store and returns it with a
// valid bearer token.
func (a testAPI) seedUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	hash, err := a.auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
	}
	require.NoError(t, a.store.UserRepo().Add(user))

	token, err := a.auth.IssueToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func (a testAPI) seedRecipe(t *testing.T, author *models.User, name string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Name:        name,
		Image:       "recipes/" + name + ".png",
		Text:        "Cook " + name,
		CookingTime: 10,
		AuthorID:    author.ID,
	}
	require.NoError(t, a.store.RecipeRepo().Add(recipe))
	return recipe
}

// do runs one request through the router. A non-nil body is JSON-encoded; a
// non-empty token goes into the Authorization header.
func (a testAPI) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}
