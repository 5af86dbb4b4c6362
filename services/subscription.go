package services

import (
	"github.com/google/uuid"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/errs"
	"github.com/recipebox/backend/models"
)

// SubscribedAuthor is one entry of a user's subscription listing: the author
// plus a preview of their newest recipes.
type SubscribedAuthor struct {
	Author       *models.User
	Recipes      []*models.Recipe
	RecipesCount int64
}

// SubscriptionService manages the user-author ledger with the same
// non-idempotent add/remove semantics as the recipe toggles, plus the
// self-subscription rule.
type SubscriptionService struct {
	userRepo   *database.UserRepo
	recipeRepo *database.RecipeRepo
	ledgerRepo *database.LedgerRepo
}

func NewSubscriptionService(userRepo *database.UserRepo, recipeRepo *database.RecipeRepo, ledgerRepo *database.LedgerRepo) SubscriptionService {
	return SubscriptionService{
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s SubscriptionService) resolveAuthor(authorID uuid.UUID) (*models.User, error) {
	author, err := s.userRepo.FindByID(authorID, nil)
	if err != nil {
		if errs.IsRecordNotFound(err) {
			return nil, errs.NewNotFound("user")
		}
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	return author, nil
}

// Subscribe makes user follow author. Self-subscription is rejected before
// any ledger access.
func (s SubscriptionService) Subscribe(userID, authorID uuid.UUID) (*models.User, error) {
	if userID == authorID {
		return nil, errs.NewBadRequestError("cannot subscribe to yourself")
	}

	author, err := s.resolveAuthor(authorID)
	if err != nil {
		return nil, err
	}

	exists, err := s.ledgerRepo.SubscriptionExists(userID, authorID)
	if err != nil {
		return nil, errs.NewDatabaseError("check", "subscription", err)
	}
	if exists {
		return nil, errs.NewConflictError("already subscribed to this author")
	}

	if err := s.ledgerRepo.AddSubscription(userID, authorID); err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.NewConflictError("already subscribed to this author")
		}
		return nil, errs.NewDatabaseError("add", "subscription", err)
	}

	author.IsSubscribed = true
	return author, nil
}

// Unsubscribe removes the subscription row.
func (s SubscriptionService) Unsubscribe(userID, authorID uuid.UUID) error {
	if _, err := s.resolveAuthor(authorID); err != nil {
		return err
	}

	deleted, err := s.ledgerRepo.RemoveSubscription(userID, authorID)
	if err != nil {
		return errs.NewDatabaseError("remove", "subscription", err)
	}
	if !deleted {
		return errs.NewConflictError("not subscribed to this author")
	}
	return nil
}

// Subscriptions lists the authors the user follows with up to recipesLimit
// recipes each (all of them when recipesLimit <= 0).
func (s SubscriptionService) Subscriptions(userID uuid.UUID, recipesLimit int) ([]SubscribedAuthor, error) {
	authors, err := s.ledgerRepo.Authors(userID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "subscriptions", err)
	}

	result := make([]SubscribedAuthor, 0, len(authors))
	for _, author := range authors {
		recipes, err := s.recipeRepo.FindByAuthor(author.ID, recipesLimit)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "author recipes", err)
		}
		count, err := s.recipeRepo.CountByAuthor(author.ID)
		if err != nil {
			return nil, errs.NewDatabaseError("count", "author recipes", err)
		}
		result = append(result, SubscribedAuthor{
			Author:       author,
			Recipes:      recipes,
			RecipesCount: count,
		})
	}
	return result, nil
}
