package course

import "gorm.io/gorm"

// Video belongs to exactly one course and is soft-deleted with it.
type Video struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoFile   string `json:"video_file"` // uploaded file path
	VideoURL    string `json:"video_url"`  // external URL, alternative to upload
	Duration    string `json:"duration"`   // display label, e.g. "15:30"
	Order       int    `json:"order" gorm:"column:order_index;default:0"`
	IsFree      bool   `json:"is_free" gorm:"default:false"` // viewable without enrollment
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// DisplayURL returns the uploaded file path when present, else the external URL.
func (v *Video) DisplayURL() string {
	if v.VideoFile != "" {
		return v.VideoFile
	}
	return v.VideoURL
}
