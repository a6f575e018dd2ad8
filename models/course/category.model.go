package course

import "gorm.io/gorm"

// Category groups courses. Deleting a category detaches its courses
// instead of removing them.
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
