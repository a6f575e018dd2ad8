package controllers

import (
	"elearning/database"
	"elearning/middleware"
	"elearning/models"
	courseModels "elearning/models/course"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetFeedbacks lists feedback, optionally filtered by course. Public read.
func GetFeedbacks(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Feedback{}).Where("is_deleted = ?", false)

	if courseID := c.QueryInt("course_id", 0); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}

	var total int64
	db.Count(&total)

	var feedbacks []courseModels.Feedback
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&feedbacks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feedbacks!", nil)
	}

	type FeedbackWithUser struct {
		courseModels.Feedback
		UserName string `json:"user_name"`
	}

	result := make([]FeedbackWithUser, len(feedbacks))
	for i, f := range feedbacks {
		var user models.User
		database.Database.Db.Where("id = ?", f.UserID).First(&user)
		result[i] = FeedbackWithUser{
			Feedback: f,
			UserName: user.FullName(),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedbacks fetched successfully!", fiber.Map{
		"feedbacks": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// SubmitFeedback creates one review per (user, course). Enrollment-gated.
func SubmitFeedback(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	reqData, ok := c.Locals("validatedFeedback").(*struct {
		CourseID uint   `json:"course_id"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Feedback requires a live enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, reqData.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to leave feedback!", nil)
	}

	var existing courseModels.Feedback
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, reqData.CourseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	feedback := courseModels.Feedback{
		UserID:   user.ID,
		CourseID: reqData.CourseID,
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	if err := database.Database.Db.Create(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Feedback submitted successfully!", feedback)
}

// GetFeedback returns a single feedback entry.
func GetFeedback(c *fiber.Ctx) error {
	feedbackID := c.Locals("feedbackID").(int)

	var feedback courseModels.Feedback
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", feedbackID, false).Preload("Course").First(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Feedback not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched successfully!", feedback)
}

// UpdateFeedback lets the owner revise rating or comment.
func UpdateFeedback(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	feedbackID := c.Locals("feedbackID").(int)

	var feedback courseModels.Feedback
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", feedbackID, false).First(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Feedback not found!", nil)
	}

	if feedback.UserID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only update your own feedback!", nil)
	}

	reqData, ok := c.Locals("validatedFeedbackUpdate").(*struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Rating != nil {
		feedback.Rating = *reqData.Rating
	}
	if reqData.Comment != nil {
		feedback.Comment = *reqData.Comment
	}

	if err := database.Database.Db.Save(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback updated successfully!", feedback)
}

// DeleteFeedback lets the owner remove their review. The row is removed for
// real: a soft-deleted row would keep the (user, course) unique index occupied
// and lock the user out of ever reviewing the course again.
func DeleteFeedback(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	feedbackID := c.Locals("feedbackID").(int)

	var feedback courseModels.Feedback
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", feedbackID, false).First(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Feedback not found!", nil)
	}

	if feedback.UserID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own feedback!", nil)
	}

	if err := database.Database.Db.Unscoped().Delete(&feedback).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback deleted successfully!", nil)
}
