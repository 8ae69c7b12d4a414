package database

import (
	"context"
	"errors"
	"time"

	"todoweb/models"

	"gorm.io/gorm"
)

// ErrTaskNotFound is returned both when a task id does not exist and when
// it belongs to another user. Callers must not be able to tell the two
// apart, so the existence of other users' tasks never leaks.
var ErrTaskNotFound = errors.New("task not found")

// Tasks returns every task owned by ownerID in storage order. A non-empty
// categorySlug narrows the list to one category.
func Tasks(ctx context.Context, ownerID uint, categorySlug string) ([]models.Task, error) {
	var tasks []models.Task
	q := DB.WithContext(ctx).Where("user_id = ?", ownerID)
	if categorySlug != "" {
		q = q.Where("category_slug = ?", categorySlug)
	}
	result := q.Find(&tasks)
	return tasks, result.Error
}

// CreateTask saves a new task record.
func CreateTask(ctx context.Context, task *models.Task) error {
	return DB.WithContext(ctx).Create(task).Error
}

// GetTask retrieves a task only when both the id and the owner match.
func GetTask(ctx context.Context, ownerID, taskID uint) (*models.Task, error) {
	var task models.Task
	result := DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, ownerID).
		First(&task)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &task, nil
}

// TaskFields is the set of columns an edit overwrites.
type TaskFields struct {
	Title        string
	Category     string
	CategorySlug string
	DueDate      time.Time
	Description  string
}

// UpdateTask overwrites the editable fields of an owned task. The ownership
// check and the write run in one transaction.
func UpdateTask(ctx context.Context, ownerID, taskID uint, fields TaskFields) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Where("id = ? AND user_id = ?", taskID, ownerID).First(&task).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}
		return tx.Model(&task).Updates(map[string]interface{}{
			"title":         fields.Title,
			"category":      fields.Category,
			"category_slug": fields.CategorySlug,
			"due_date":      fields.DueDate,
			"description":   fields.Description,
		}).Error
	})
}

// SetTaskDone sets the completion flag on an owned task. Setting the same
// value twice is not an error.
func SetTaskDone(ctx context.Context, ownerID, taskID uint, done bool) error {
	result := DB.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, ownerID).
		Update("done", done)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes an owned task permanently. There is no soft delete.
func DeleteTask(ctx context.Context, ownerID, taskID uint) error {
	result := DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, ownerID).
		Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
