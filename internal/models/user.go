// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. The username is a generated UUID
// handle, distinct from the email used for login.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FirstName string     `gorm:"not null" json:"first_name"`
	LastName  string     `gorm:"not null" json:"last_name"`
	Username  string     `gorm:"uniqueIndex;not null" json:"-"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Address   string     `gorm:"type:text" json:"address"`
	Avatar    string     `json:"-"`
	Password  string     `gorm:"not null" json:"-"`
	LastLogin *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserSummary is the trimmed user shape embedded in post listings and
// login responses.
type UserSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Address:   u.Address,
	}
}
