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

type userHandler struct {
	responder     Responder
	logger        zerolog.Logger
	validate      *validator.Validate
	userRepo      *database.UserRepo
	auth          services.AuthService
	subscriptions services.SubscriptionService
}

func newUserHandler(userRepo *database.UserRepo, auth services.AuthService, subscriptions services.SubscriptionService) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		validate:      validator.New(),
		userRepo:      userRepo,
		auth:          auth,
		subscriptions: subscriptions,
	}
}

type signupPayload struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=150"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authorWithRecipes is the subscription-listing entry: the author plus a
// preview of their recipes.
type authorWithRecipes struct {
	models.User
	Recipes      []AbridgedRecipe `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}

func (h userHandler) writeValidationError(w http.ResponseWriter, err error) {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		h.responder.WriteError(w, errs.NewValidationError(first.Field(), "failed on '"+first.Tag()+"' validation"))
		return
	}
	h.responder.WriteError(w, errs.NewBadRequestError("invalid payload"))
}

// signup registers a new account.
func (h userHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload signupPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := h.validate.Struct(payload); err != nil {
			h.writeValidationError(w, err)
			return
		}

		hash, err := h.auth.HashPassword(payload.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		user := models.User{
			Email:        payload.Email,
			Username:     payload.Username,
			FirstName:    payload.FirstName,
			LastName:     payload.LastName,
			PasswordHash: hash,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, user)
	}
}

// login exchanges email+password for a bearer token.
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := h.validate.Struct(payload); err != nil {
			h.writeValidationError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(payload.Email)
		if err != nil {
			if errs.IsRecordNotFound(err) {
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if !h.auth.CheckPassword(user.PasswordHash, payload.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.auth.IssueToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"auth_token": token})
	}
}

// getMe returns the authenticated user's own profile.
func (h userHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

// getAllUsers lists accounts with is_subscribed flags for the requester.
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := parsePage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var requesterID *uuid.UUID
		if user, ok := ctxGetUser(r.Context()); ok {
			requesterID = &user.ID
		}

		users, total, err := h.userRepo.FindAll(requesterID, limit, offset)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "users", err))
			return
		}

		h.responder.WriteJSON(w, Page{Count: total, Results: users})
	}
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		var requesterID *uuid.UUID
		if user, ok := ctxGetUser(r.Context()); ok {
			requesterID = &user.ID
		}

		user, err := h.userRepo.FindByID(userID, requesterID)
		if err != nil {
			if errs.IsRecordNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// subscribe makes the requester follow an author.
func (h userHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		authorID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		author, err := h.subscriptions.Subscribe(user.ID, authorID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, author)
	}
}

func (h userHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		authorID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		if err := h.subscriptions.Unsubscribe(user.ID, authorID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// getSubscriptions lists followed authors with abridged recipe previews;
// ?recipes_limit= caps the preview size.
func (h userHandler) getSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		recipesLimit := 0
		if raw := r.URL.Query().Get("recipes_limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				h.responder.WriteError(w, errs.NewValidationError("recipes_limit", "must be a positive integer"))
				return
			}
			recipesLimit = parsed
		}

		subscribed, err := h.subscriptions.Subscriptions(user.ID, recipesLimit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		results := make([]authorWithRecipes, 0, len(subscribed))
		for _, entry := range subscribed {
			results = append(results, authorWithRecipes{
				User:         *entry.Author,
				Recipes:      abridgeAll(entry.Recipes),
				RecipesCount: entry.RecipesCount,
			})
		}

		h.responder.WriteJSON(w, Page{Count: int64(len(results)), Results: results})
	}
}
