package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"todoweb/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package at a throwaway sqlite database.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	DB = db
}

func mustCreateUser(t *testing.T, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	if err := CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%q, %q) failed: %v", username, email, err)
	}
	return user
}

func mustCreateTask(t *testing.T, ownerID uint, title string) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:        title,
		Category:     "Chores",
		CategorySlug: "chores",
		DueDate:      time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
		Description:  "description of " + title,
		UserID:       ownerID,
	}
	if err := CreateTask(context.Background(), task); err != nil {
		t.Fatalf("CreateTask(%q) failed: %v", title, err)
	}
	return task
}
