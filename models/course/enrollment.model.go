package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment tracks a user's access to a course and their consumption progress.
// Progress is always derived from the watched set and the course's
// duration_in_days; clients never write it directly. The (user, course) pair
// is guarded by a database unique index so concurrent enrolls collapse to one row.
type Enrollment struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID        uint           `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Course          *Course        `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Progress        int            `json:"progress" gorm:"default:0"` // 0-100
	LastWatchedID   *uint          `json:"last_watched_id" gorm:"index"`
	WatchedVideoIDs datatypes.JSON `json:"watched_video_ids"` // sorted distinct int array
	IsDeleted       bool           `json:"-" gorm:"default:false"`
}
