package course

import "gorm.io/gorm"

// Feedback is a per-user per-course review. Submitting requires a live
// enrollment; the unique index keeps one review per pair.
type Feedback struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"uniqueIndex:idx_feedback_user_course;not null"`
	CourseID  uint    `json:"course_id" gorm:"uniqueIndex:idx_feedback_user_course;not null"`
	Course    *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Rating    int     `json:"rating" gorm:"not null"` // 1-5
	Comment   string  `json:"comment"`
	IsDeleted bool    `json:"-" gorm:"default:false"`
}
