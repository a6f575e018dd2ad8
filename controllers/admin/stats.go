package adminController

import (
	"elearning/database"
	"elearning/middleware"
	"elearning/models"
	courseModels "elearning/models/course"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminStats returns aggregate counts for the dashboard.
func AdminStats(c *fiber.Ctx) error {
	var totalCourses, publishedCourses, totalVideos, totalUsers, totalEnrollments, totalPDFs, totalCertificates int64

	db := database.Database.Db
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)
	db.Model(&courseModels.Video{}).Where("is_deleted = ?", false).Count(&totalVideos)
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.PDF{}).Where("is_deleted = ?", false).Count(&totalPDFs)
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&totalCertificates)

	// Recent enrollments for the dashboard feed
	type RecentEnrollment struct {
		UserName    string    `json:"user_name"`
		CourseTitle string    `json:"course_title"`
		EnrolledAt  time.Time `json:"enrolled_at"`
	}

	var recentEnrollments []courseModels.Enrollment
	db.Where("is_deleted = ?", false).Order("created_at desc").Limit(5).Find(&recentEnrollments)

	recent := make([]RecentEnrollment, len(recentEnrollments))
	for i, e := range recentEnrollments {
		var enrolledUser models.User
		var course courseModels.Course
		db.Where("id = ?", e.UserID).First(&enrolledUser)
		db.Where("id = ?", e.CourseID).First(&course)
		recent[i] = RecentEnrollment{
			UserName:    enrolledUser.FullName(),
			CourseTitle: course.Title,
			EnrolledAt:  e.CreatedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"courses":           totalCourses,
			"published_courses": publishedCourses,
			"videos":            totalVideos,
			"users":             totalUsers,
			"enrollments":       totalEnrollments,
			"pdfs":              totalPDFs,
			"certificates":      totalCertificates,
		},
		"recent_enrollments": recent,
	})
}

// AdminGetCertificates lists all issued certificates.
func AdminGetCertificates(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var certificates []courseModels.Certificate
	if err := db.Offset(offset).Limit(limit).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
