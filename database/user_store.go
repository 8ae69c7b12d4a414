package database

import (
	"context"
	"errors"

	"todoweb/models"

	"gorm.io/gorm"
)

// ErrDuplicateIdentity is returned when a signup reuses an existing
// username or email.
var ErrDuplicateIdentity = errors.New("username or email already exists")

// ErrUserNotFound is returned when no account matches the username, so
// callers can tell a failed lookup from a failing database.
var ErrUserNotFound = errors.New("user not found")

// CreateUser persists a new account. The duplicate check and the insert run
// in one transaction so two racing signups cannot both pass the check.
// Matching is exact and case-sensitive.
func CreateUser(ctx context.Context, user *models.User) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateIdentity
		}
		return tx.Create(user).Error
	})
}

// FindUserByUsername retrieves an account by its exact username.
func FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := DB.WithContext(ctx).Where("username = ?", username).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
