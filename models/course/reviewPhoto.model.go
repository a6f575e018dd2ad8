package course

import "gorm.io/gorm"

// ReviewPhoto is a standalone image shown on the homepage carousel.
// It has no relation to any other entity.
type ReviewPhoto struct {
	gorm.Model
	Title          string `json:"title"`
	Image          string `json:"image"`
	ShowOnHomepage bool   `json:"show_on_homepage" gorm:"default:true"`
	Order          int    `json:"order" gorm:"column:order_index;default:0"`
	IsDeleted      bool   `json:"-" gorm:"default:false"`
}
