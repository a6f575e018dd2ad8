package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate records an issued completion document. At most one per
// (user, course); repeated issue requests return the existing row.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	CourseID          uint      `json:"course_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	FullName          string    `json:"full_name" gorm:"not null"`
	CoachName         string    `json:"coach_name"`
	CertificateNumber string    `json:"certificate_number" gorm:"uniqueIndex"`
	IssuedAt          time.Time `json:"issued_at"` // immutable once set
	PDFFile           string    `json:"pdf_file"`  // optional stored rendering
	IsDeleted         bool      `json:"-" gorm:"default:false"`
}
