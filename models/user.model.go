package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName       string    `json:"first_name" gorm:"default:''"`
	LastName        string    `json:"last_name" gorm:"default:''"`
	Email           string    `json:"email" gorm:"unique;not null"`
	Password        string    `json:"-" gorm:"not null"`
	Role            string    `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	IsEmailVerified bool      `json:"is_email_verified" gorm:"default:false"`
	LastLogin       time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted       bool      `json:"-" gorm:"default:false"`
}

// IsStaff reports whether the user may access admin routes.
func (u *User) IsStaff() bool {
	return u.Role == "ADMIN"
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
