package adminController

import (
	"elearning/config"
	"elearning/database"
	"elearning/middleware"
	courseModels "elearning/models/course"
	"elearning/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateVideo adds a video to a course by uploaded file or external URL.
func AdminCreateVideo(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVideo").(*struct {
		CourseID    uint   `json:"course_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		VideoURL    string `json:"video_url"`
		Duration    string `json:"duration"`
		Order       int    `json:"order"`
		IsFree      bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.VideoURL != "" && config.AppConfig.VerifyVideoURLs {
		if err := utils.VerifyExternalURL(reqData.VideoURL); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"video_url": "Video URL is not reachable!"})
		}
	}

	video := courseModels.Video{
		CourseID:    reqData.CourseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
		Order:       reqData.Order,
		IsFree:      reqData.IsFree,
	}

	if err := database.Database.Db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", video)
}

// AdminUploadVideoFile attaches an uploaded file to an existing video.
func AdminUploadVideoFile(c *fiber.Ctx) error {
	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	file, err := c.FormFile("video")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "course_videos")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save video file!", nil)
	}

	video.VideoFile = path
	if err := database.Database.Db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video file uploaded successfully!", fiber.Map{
		"video_file": utils.GetFileURL(path),
	})
}

// AdminUpdateVideo updates video metadata.
func AdminUpdateVideo(c *fiber.Ctx) error {
	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	reqData, ok := c.Locals("validatedVideoUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		VideoURL    *string `json:"video_url"`
		Duration    *string `json:"duration"`
		Order       *int    `json:"order"`
		IsFree      *bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		video.Title = *reqData.Title
	}
	if reqData.Description != nil {
		video.Description = *reqData.Description
	}
	if reqData.VideoURL != nil {
		if *reqData.VideoURL != "" && config.AppConfig.VerifyVideoURLs {
			if err := utils.VerifyExternalURL(*reqData.VideoURL); err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{"video_url": "Video URL is not reachable!"})
			}
		}
		video.VideoURL = *reqData.VideoURL
	}
	if reqData.Duration != nil {
		video.Duration = *reqData.Duration
	}
	if reqData.Order != nil {
		video.Order = *reqData.Order
	}
	if reqData.IsFree != nil {
		video.IsFree = *reqData.IsFree
	}

	if err := database.Database.Db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully!", video)
}

// AdminDeleteVideo soft deletes a video and clears last_watched references
// pointing at it so enrollments never dangle.
func AdminDeleteVideo(c *fiber.Ctx) error {
	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	tx := database.Database.Db.Begin()

	video.IsDeleted = true
	if err := tx.Save(&video).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	if err := tx.Model(&courseModels.Enrollment{}).Where("last_watched_id = ?", videoID).Update("last_watched_id", nil).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to detach video from enrollments!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}

// AdminGetCourseVideos lists all videos of a course, drafts included.
func AdminGetCourseVideos(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var videos []courseModels.Video
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc, created_at asc").Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully!", videos)
}
