package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/errs"
)

type ingredientHandler struct {
	responder      Responder
	logger         zerolog.Logger
	ingredientRepo *database.IngredientRepo
}

func newIngredientHandler(ingredientRepo *database.IngredientRepo) ingredientHandler {
	logger := log.With().Str("handlerName", "ingredientHandler").Logger()

	return ingredientHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		ingredientRepo: ingredientRepo,
	}
}

// getAllIngredients lists the catalog, optionally filtered by a name prefix
// via ?name=.
func (h ingredientHandler) getAllIngredients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		namePrefix := r.URL.Query().Get("name")

		ingredients, err := h.ingredientRepo.FindAll(namePrefix)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "ingredients", err))
			return
		}

		h.responder.WriteJSON(w, ingredients)
	}
}

func (h ingredientHandler) getIngredient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredientID, err := uuid.Parse(chi.URLParam(r, "ingredientID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid ingredientID"))
			return
		}

		ingredient, err := h.ingredientRepo.FindByID(ingredientID)
		if err != nil {
			if errs.IsRecordNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("ingredient not found"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "ingredient", err))
			return
		}

		h.responder.WriteJSON(w, ingredient)
	}
}
