package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/models"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db}
}

// FindAll returns ingredients ordered by name, optionally restricted to
// names starting with namePrefix.
func (r *IngredientRepo) FindAll(namePrefix string) ([]*models.Ingredient, error) {
	q := r.db.Order("name")
	if namePrefix != "" {
		q = q.Where("name LIKE ?", namePrefix+"%")
	}

	var ingredients []*models.Ingredient
	err := q.Find(&ingredients).Error
	return ingredients, err
}

// FindByID returns an ingredient by its ID
func (r *IngredientRepo) FindByID(id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// CountByIDs returns how many of the given ingredient IDs are in the catalog.
func (r *IngredientRepo) CountByIDs(ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Exists reports whether an ingredient with this exact name and unit is
// already in the catalog. Used by the CSV importer to skip duplicates.
func (r *IngredientRepo) Exists(name, measurementUnit string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Ingredient{}).
		Where("name = ? AND measurement_unit = ?", name, measurementUnit).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new ingredient into the catalog
func (r *IngredientRepo) Add(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}
