package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// annotated attaches is_subscribed for the requesting user. Anonymous
// requests get a constant false and no subquery.
func (r *UserRepo) annotated(requesterID *uuid.UUID) *gorm.DB {
	q := r.db.Model(&models.User{})
	if requesterID == nil {
		return q.Select("users.*, ? AS is_subscribed", false)
	}
	return q.Select(
		"users.*, EXISTS(SELECT 1 FROM subscriptions s WHERE s.user_id = ? AND s.author_id = users.id) AS is_subscribed",
		*requesterID,
	)
}

// FindAll returns one page of users ordered by username, with the total count.
func (r *UserRepo) FindAll(requesterID *uuid.UUID, limit, offset int) ([]*models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := r.annotated(requesterID).
		Order("users.username").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, total, err
}

// FindByID returns a user by its ID
func (r *UserRepo) FindByID(id uuid.UUID, requesterID *uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.annotated(requesterID).Where("users.id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by its login email
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}
