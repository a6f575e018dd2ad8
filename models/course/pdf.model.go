package course

import "gorm.io/gorm"

// PDF is a downloadable course document, soft-deleted with its course.
type PDF struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PDFFile     string `json:"pdf_file"`
	Order       int    `json:"order" gorm:"column:order_index;default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
