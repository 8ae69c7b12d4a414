package models

import "time"

// User represents a user account in the system. Accounts are created at
// signup and never mutated afterwards; the password is only ever stored as
// a bcrypt hash.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Tasks []Task `gorm:"foreignKey:UserID" json:"-"`
}
