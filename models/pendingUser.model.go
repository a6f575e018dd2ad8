package models

import (
	"time"

	"gorm.io/gorm"
)

// PendingUser holds an unverified registration until the email link is visited.
// The row is deleted once the real User is created, or when the token expires.
type PendingUser struct {
	gorm.Model
	Email     string    `json:"email" gorm:"index;not null"`
	FirstName string    `json:"first_name" gorm:"default:''"`
	LastName  string    `json:"last_name" gorm:"default:''"`
	Password  string    `json:"-" gorm:"not null"` // already hashed
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
}

// IsExpired reports whether the verification window has passed.
func (p *PendingUser) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}
