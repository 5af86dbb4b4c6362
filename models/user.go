package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that authors recipes and owns ledger rows.
// Email is the login identifier.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	FirstName    string    `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName     string    `json:"last_name" db:"last_name" gorm:"type:text;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"-" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	// Populated by the user repo for the requesting user; not a column.
	IsSubscribed bool `json:"is_subscribed" gorm:"->;-:migration"`
}

// BeforeCreate assigns the ID in application code so the model behaves the
// same on postgres and the sqlite test stores.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
