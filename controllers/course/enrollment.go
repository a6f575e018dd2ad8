package controllers

import (
	"elearning/database"
	"elearning/middleware"
	courseModels "elearning/models/course"
	"elearning/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollInCourse creates an enrollment for the authenticated user. The
// self-service path only accepts published courses; duplicate enrollment is a
// conflict both in the pre-check and at the unique index.
func EnrollInCourse(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	// Check if course exists and is published
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:          user.ID,
		CourseID:        uint(courseID),
		Progress:        0,
		WatchedVideoIDs: encodeWatchedIDs([]int{}),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		// Unique index closes the race between the existence check and the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	utils.SendEnrollmentEmail(user.Email, user.FirstName, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the authenticated user's enrollments with course info.
func GetEnrollments(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND is_deleted = ?", user.ID, false).Preload("Course")

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateEnrollmentProgress records watched videos on the caller's own
// enrollment and recomputes the derived progress percentage. The whole
// read-modify-write runs in one transaction with a row lock so two tabs
// watching in parallel never lose each other's updates. Clients cannot set
// progress directly; they only report watched video ids.
func UpdateEnrollmentProgress(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	reqData, ok := c.Locals("validatedProgressUpdate").(*struct {
		WatchedVideoIDs []interface{} `json:"watched_video_ids"`
		VideoID         *int          `json:"video_id"`
		LastWatchedID   *uint         `json:"last_watched_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var updated courseModels.Enrollment

	txErr := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, user.ID, false)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var enrollment courseModels.Enrollment
		if err := q.First(&enrollment).Error; err != nil {
			return gorm.ErrRecordNotFound
		}

		var course courseModels.Course
		if err := tx.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
			return gorm.ErrRecordNotFound
		}

		// Re-normalize the stored set, merge in the reported ids
		watched := decodeWatchedIDs(enrollment.WatchedVideoIDs)
		if reqData.WatchedVideoIDs != nil {
			watched = mergeWatchedIDs(watched, normalizeWatchedIDs(reqData.WatchedVideoIDs))
		}
		if reqData.VideoID != nil && *reqData.VideoID > 0 {
			watched = mergeWatchedIDs(watched, []int{*reqData.VideoID})
		}

		if reqData.LastWatchedID != nil {
			var video courseModels.Video
			if err := tx.Where("id = ? AND course_id = ? AND is_deleted = ?", *reqData.LastWatchedID, enrollment.CourseID, false).First(&video).Error; err != nil {
				return errLastWatchedNotInCourse
			}
			enrollment.LastWatchedID = reqData.LastWatchedID
		}

		enrollment.WatchedVideoIDs = encodeWatchedIDs(watched)
		enrollment.Progress = computeProgress(len(watched), course.DurationInDays)

		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}
		updated = enrollment
		return nil
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case errors.Is(txErr, errLastWatchedNotInCourse):
			return middleware.ValidationErrorResponse(c, map[string]string{"last_watched_id": "Video does not belong to this course!"})
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", updated)
}

var errLastWatchedNotInCourse = errors.New("last watched video not in course")

// GetUserProgress returns the enrollment snapshot for one course.
func GetUserProgress(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).Preload("Course").First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":        enrollment,
		"watched_video_ids": decodeWatchedIDs(enrollment.WatchedVideoIDs),
	})
}
