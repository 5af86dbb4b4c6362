package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/errs"
	"github.com/recipebox/backend/models"
)

// ToggleService is the add/remove pair over a user-recipe ledger relation,
// parameterized by which relation it targets. Deliberately not idempotent: a
// second add for the same pair is a conflict, not a no-op.
type ToggleService struct {
	recipeRepo *database.RecipeRepo
	ledgerRepo *database.LedgerRepo
}

func NewToggleService(recipeRepo *database.RecipeRepo, ledgerRepo *database.LedgerRepo) ToggleService {
	return ToggleService{
		recipeRepo: recipeRepo,
		ledgerRepo: ledgerRepo,
	}
}

// resolve maps an unknown recipe id to NotFound before any ledger access.
func (s ToggleService) resolve(recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(recipeID, nil)
	if err != nil {
		if errs.IsRecordNotFound(err) {
			return nil, errs.NewNotFound("recipe")
		}
		return nil, errs.NewDatabaseError("find", "recipe", err)
	}
	return recipe, nil
}

// Add puts the recipe into the user's ledger and returns the recipe for the
// abridged response. The existence pre-check gives the clean error message;
// the unique index is the arbiter under concurrent adds, and a duplicate-key
// failure maps to the same conflict.
func (s ToggleService) Add(rel database.Relation, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.resolve(recipeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.ledgerRepo.Exists(rel, userID, recipeID)
	if err != nil {
		return nil, errs.NewDatabaseError("check", rel.String(), err)
	}
	if exists {
		return nil, errs.NewConflictError(fmt.Sprintf("recipe is already in %s", rel))
	}

	if err := s.ledgerRepo.Add(rel, userID, recipeID); err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.NewConflictError(fmt.Sprintf("recipe is already in %s", rel))
		}
		return nil, errs.NewDatabaseError("add to", rel.String(), err)
	}

	return recipe, nil
}

// Remove deletes the ledger row. Removing a recipe that was never added is an
// error, mirroring the non-idempotent add.
func (s ToggleService) Remove(rel database.Relation, userID, recipeID uuid.UUID) error {
	if _, err := s.resolve(recipeID); err != nil {
		return err
	}

	deleted, err := s.ledgerRepo.Remove(rel, userID, recipeID)
	if err != nil {
		return errs.NewDatabaseError("remove from", rel.String(), err)
	}
	if !deleted {
		return errs.NewConflictError(fmt.Sprintf("recipe is not in %s", rel))
	}
	return nil
}
