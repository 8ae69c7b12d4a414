package models

import "time"

// Task is a single to-do item. UserID references the owning account and is
// immutable after creation; every query against tasks must filter by both
// the task id and the owner id.
type Task struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Category     string    `json:"category"`
	CategorySlug string    `gorm:"index" json:"category_slug"`
	DueDate      time.Time `json:"due_date"`
	Description  string    `json:"description"`
	Done         bool      `gorm:"not null;default:false" json:"done"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
