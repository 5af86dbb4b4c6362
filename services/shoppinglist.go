package services

import (
	"github.com/google/uuid"

	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/errs"
)

// ShoppingListFilename is the fixed attachment name of the exported list.
const ShoppingListFilename = "shopping-list.pdf"

// ShoppingListService turns a user's cart into a downloadable PDF.
type ShoppingListService struct {
	shoppingListRepo *database.ShoppingListRepo
}

func NewShoppingListService(shoppingListRepo *database.ShoppingListRepo) ShoppingListService {
	return ShoppingListService{shoppingListRepo: shoppingListRepo}
}

// BuildPDF aggregates the user's cart and renders it. An empty cart renders
// a valid header-only document rather than failing.
func (s ShoppingListService) BuildPDF(userID uuid.UUID) ([]byte, error) {
	rows, err := s.shoppingListRepo.Aggregate(userID)
	if err != nil {
		return nil, errs.NewDatabaseError("aggregate", "shopping list", err)
	}

	doc, err := RenderShoppingListPDF(rows)
	if err != nil {
		return nil, errs.NewInternalError("failed to render shopping list: " + err.Error())
	}
	return doc, nil
}
