package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a meal occasion (breakfast, lunch, ...). Low-cardinality reference
// data; name, color and slug are each unique on their own.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name  string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
	Color string    `json:"color" db:"color" gorm:"type:text;not null;unique"`
	Slug  string    `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
