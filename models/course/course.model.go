package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Thumbnail      string    `json:"thumbnail"`     // uploaded file path
	ThumbnailURL   string    `json:"thumbnail_url"` // external URL, alternative to upload
	CategoryID     *uint     `json:"category_id" gorm:"index"`
	Category       *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Duration       string    `json:"duration"`                           // display label, e.g. "10 hours"
	DurationInDays int       `json:"duration_in_days" gorm:"default:0"`  // drives progress math
	Price          *float64  `json:"price"`                              // nil or 0 means free
	IsPublished    bool      `json:"is_published" gorm:"default:false"`
	IsFree         bool      `json:"is_free" gorm:"default:false"`
	IsDeleted      bool      `json:"-" gorm:"default:false"`
}
