package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/errs"
	"github.com/recipebox/backend/models"
	"github.com/recipebox/backend/services"
)

type recipeHandler struct {
	responder      Responder
	logger         zerolog.Logger
	validate       *validator.Validate
	recipeRepo     *database.RecipeRepo
	tagRepo        *database.TagRepo
	ingredientRepo *database.IngredientRepo
	toggles        services.ToggleService
	shoppingList   services.ShoppingListService
}

func newRecipeHandler(
	recipeRepo *database.RecipeRepo,
	tagRepo *database.TagRepo,
	ingredientRepo *database.IngredientRepo,
	toggles services.ToggleService,
	shoppingList services.ShoppingListService,
) recipeHandler {
	logger := log.With().Str("handlerName", "recipeHandler").Logger()

	return recipeHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		validate:       validator.New(),
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		toggles:        toggles,
		shoppingList:   shoppingList,
	}
}

type recipeIngredientPayload struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount" validate:"required,min=1,max=32000"`
}

type recipeWritePayload struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Image       string                    `json:"image" validate:"required"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
	Tags        []uuid.UUID               `json:"tags" validate:"required,min=1"`
	Ingredients []recipeIngredientPayload `json:"ingredients" validate:"required,min=1,dive"`
}

func (h recipeHandler) writeValidationError(w http.ResponseWriter, err error) {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		h.responder.WriteError(w, errs.NewValidationError(first.Field(), "failed on '"+first.Tag()+"' validation"))
		return
	}
	h.responder.WriteError(w, errs.NewBadRequestError("invalid payload"))
}

// parseRecipeFilter reads the listing query params. The boolean flags are
// parsed with strconv.ParseBool and anything it rejects is a 400; the
// filters restrict to recipes where the flag is true for the requester.
func parseRecipeFilter(r *http.Request) (database.RecipeFilter, error) {
	var filter database.RecipeFilter

	query := r.URL.Query()
	if raw := query.Get("author"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			return filter, errs.NewValidationError("author", "must be a valid user id")
		}
		filter.AuthorID = &authorID
	}
	if slugs := query["tags"]; len(slugs) > 0 {
		filter.TagSlugs = slugs
	}
	if raw := query.Get("is_favorited"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errs.NewValidationError("is_favorited", "must be a boolean")
		}
		filter.Favorited = val
	}
	if raw := query.Get("is_in_shopping_cart"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errs.NewValidationError("is_in_shopping_cart", "must be a boolean")
		}
		filter.InShoppingCart = val
	}

	return filter, nil
}

// getAllRecipes lists annotated recipes, newest first, with filters and
// pagination.
func (h recipeHandler) getAllRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseRecipeFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		limit, offset, err := parsePage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var requesterID *uuid.UUID
		if user, ok := ctxGetUser(r.Context()); ok {
			requesterID = &user.ID
		}

		recipes, total, err := h.recipeRepo.FindAll(requesterID, filter, limit, offset)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "recipes", err))
			return
		}

		h.responder.WriteJSON(w, Page{Count: total, Results: recipes})
	}
}

func (h recipeHandler) getRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		var requesterID *uuid.UUID
		if user, ok := ctxGetUser(r.Context()); ok {
			requesterID = &user.ID
		}

		recipe, err := h.recipeRepo.FindByID(recipeID, requesterID)
		if err != nil {
			if errs.IsRecordNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "recipe", err))
			return
		}

		h.responder.WriteJSON(w, recipe)
	}
}

// buildRecipe validates the payload's references and assembles the model:
// tags must all exist, ingredients must all exist, and an ingredient may
// appear only once per recipe.
func (h recipeHandler) buildRecipe(payload recipeWritePayload, authorID uuid.UUID) (*models.Recipe, error) {
	tags, err := h.tagRepo.FindByIDs(payload.Tags)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "tags", err)
	}
	if len(tags) != len(payload.Tags) {
		return nil, errs.NewValidationError("tags", "unknown tag id")
	}

	ingredientIDs := make([]uuid.UUID, 0, len(payload.Ingredients))
	seen := make(map[uuid.UUID]bool, len(payload.Ingredients))
	for _, item := range payload.Ingredients {
		if seen[item.ID] {
			return nil, errs.NewValidationError("ingredients", "ingredient listed more than once")
		}
		seen[item.ID] = true
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	count, err := h.ingredientRepo.CountByIDs(ingredientIDs)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "ingredients", err)
	}
	if count != int64(len(ingredientIDs)) {
		return nil, errs.NewValidationError("ingredients", "unknown ingredient id")
	}

	recipe := &models.Recipe{
		Name:        payload.Name,
		Image:       payload.Image,
		Text:        payload.Text,
		CookingTime: payload.CookingTime,
		AuthorID:    authorID,
		Tags:        tags,
	}
	for _, item := range payload.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return recipe, nil
}

// createRecipe creates a recipe owned by the requester.
func (h recipeHandler) createRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var payload recipeWritePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := h.validate.Struct(payload); err != nil {
			h.writeValidationError(w, err)
			return
		}

		recipe, err := h.buildRecipe(payload, user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.recipeRepo.Add(recipe); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "recipe", err))
			return
		}

		created, err := h.recipeRepo.FindByID(recipe.ID, &user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find created", "recipe", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

// updateRecipe replaces the recipe's fields, tag set and ingredient set.
// Only the author may update.
func (h recipeHandler) updateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		existing, err := h.recipeRepo.FindByID(recipeID, nil)
		if err != nil {
			if errs.IsRecordNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "recipe", err))
			return
		}
		if existing.AuthorID != user.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may edit a recipe"))
			return
		}

		var payload recipeWritePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := h.validate.Struct(payload); err != nil {
			h.writeValidationError(w, err)
			return
		}

		recipe, err := h.buildRecipe(payload, user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		recipe.ID = recipeID

		if err := h.recipeRepo.Update(recipe); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "recipe", err))
			return
		}

		updated, err := h.recipeRepo.FindByID(recipeID, &user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find updated", "recipe", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteRecipe removes a recipe. Only the author may delete.
func (h recipeHandler) deleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		existing, err := h.recipeRepo.FindByID(recipeID, nil)
		if err != nil {
			if errs.IsRecordNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "recipe", err))
			return
		}
		if existing.AuthorID != user.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may delete a recipe"))
			return
		}

		if err := h.recipeRepo.Delete(recipeID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "recipe", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleAdd is the shared handler for POST favorite/shopping_cart.
func (h recipeHandler) toggleAdd(rel database.Relation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		recipe, err := h.toggles.Add(rel, user.ID, recipeID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, abridge(recipe))
	}
}

// toggleRemove is the shared handler for DELETE favorite/shopping_cart.
func (h recipeHandler) toggleRemove(rel database.Relation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		if err := h.toggles.Remove(rel, user.ID, recipeID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h recipeHandler) addFavorite() http.HandlerFunc {
	return h.toggleAdd(database.RelationFavorite)
}

func (h recipeHandler) removeFavorite() http.HandlerFunc {
	return h.toggleRemove(database.RelationFavorite)
}

func (h recipeHandler) addToShoppingCart() http.HandlerFunc {
	return h.toggleAdd(database.RelationShoppingCart)
}

func (h recipeHandler) removeFromShoppingCart() http.HandlerFunc {
	return h.toggleRemove(database.RelationShoppingCart)
}

// downloadShoppingCart streams the aggregated cart as a PDF attachment.
func (h recipeHandler) downloadShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		doc, err := h.shoppingList.BuildPDF(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePDF(w, services.ShoppingListFilename, doc)
	}
}
