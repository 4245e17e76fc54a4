// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Emails are stored trimmed and
// lowercased; uniqueness is enforced by the database constraint.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	Posts        []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
