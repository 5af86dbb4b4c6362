package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bounds shared by cooking time and ingredient amounts.
const (
	MinCookingTime      = 1
	MaxCookingTime      = 32000
	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
)

// Recipe is the aggregate root: a recipe plus its tag set and its ingredient
// amounts (through RecipeIngredient).
type Recipe struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Image       string    `json:"image" db:"image" gorm:"type:text;not null"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" db:"cooking_time" gorm:"type:integer;not null"`
	AuthorID    uuid.UUID `json:"-" db:"author_id" gorm:"type:uuid;not null;index"`
	PubDate     time.Time `json:"-" db:"pub_date" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Author      User               `json:"author" gorm:"foreignKey:AuthorID;references:ID"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`

	// Per-user annotations computed by the recipe repo's EXISTS subselects.
	// Always false for anonymous readers. Not columns.
	IsFavorited      bool `json:"is_favorited" gorm:"->;-:migration"`
	IsInShoppingCart bool `json:"is_in_shopping_cart" gorm:"->;-:migration"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient links a recipe to an ingredient with a quantity. A recipe
// lists each ingredient at most once; the whole set is replaced atomically
// with the owning recipe on update.
type RecipeIngredient struct {
	ID           uuid.UUID `json:"-" db:"id" gorm:"type:uuid;primaryKey;not null"`
	RecipeID     uuid.UUID `json:"-" db:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_unique"`
	IngredientID uuid.UUID `json:"id" db:"ingredient_id" gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_unique"`
	Amount       int       `json:"amount" db:"amount" gorm:"type:integer;not null"`

	Ingredient Ingredient `json:"-" gorm:"foreignKey:IngredientID;references:ID"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
