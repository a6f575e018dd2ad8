package controllers

import (
	"elearning/database"
	"elearning/middleware"
	courseModels "elearning/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetCategories lists all categories. Public.
func GetCategories(c *fiber.Ctx) error {
	var categories []courseModels.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// GetAllCourses lists published courses with optional category and search
// filters. Public.
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("courses.is_deleted = ? AND courses.is_published = ?", false, true).
		Preload("Category")

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		db = db.Joins("LEFT JOIN categories ON categories.id = courses.category_id").
			Where("LOWER(categories.name) LIKE ?", "%"+strings.ToLower(category)+"%")
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		db = db.Where("LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ?", pattern, pattern)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("courses.created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one published course with its video count.
// Public; is_enrolled is filled in when a valid token accompanies the request.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).Preload("Category").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var videoCount int64
	database.Database.Db.Model(&courseModels.Video{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&videoCount)

	// Optional authentication: a bare catalog request still succeeds
	isEnrolled := false
	if authHeader := c.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		if claims, err := middleware.ParseJWT(authHeader[len("Bearer "):]); err == nil {
			userID := uint(claims["userId"].(float64))
			var enrollment courseModels.Enrollment
			isEnrolled = database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error == nil
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"video_count": videoCount,
		"is_enrolled": isEnrolled,
	})
}

// GetCourseVideos lists a course's videos for enrolled users.
func GetCourseVideos(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var videos []courseModels.Video
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc, created_at asc").Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully!", videos)
}

// GetCoursePDFs lists a course's documents for enrolled users.
func GetCoursePDFs(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var pdfs []courseModels.PDF
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc, created_at asc").Find(&pdfs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch PDFs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "PDFs fetched successfully!", pdfs)
}

// GetFreeVideos lists videos flagged is_free across published courses. Public.
func GetFreeVideos(c *fiber.Ctx) error {
	var videos []courseModels.Video
	if err := database.Database.Db.
		Joins("JOIN courses ON courses.id = videos.course_id").
		Where("videos.is_free = ? AND videos.is_deleted = ? AND courses.is_published = ? AND courses.is_deleted = ?", true, false, true, false).
		Order("videos.order_index asc").
		Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch free videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Free videos fetched successfully!", videos)
}

// GetReviewPhotos lists homepage review photos. Public.
func GetReviewPhotos(c *fiber.Ctx) error {
	var photos []courseModels.ReviewPhoto
	if err := database.Database.Db.Where("show_on_homepage = ? AND is_deleted = ?", true, false).Order("order_index asc").Find(&photos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch review photos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review photos fetched successfully!", photos)
}
