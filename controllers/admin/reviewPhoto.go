package adminController

import (
	"elearning/database"
	"elearning/middleware"
	courseModels "elearning/models/course"
	"elearning/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateReviewPhoto uploads a homepage review photo.
func AdminCreateReviewPhoto(c *fiber.Ctx) error {
	title := c.FormValue("title")
	if title == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "review_photos")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	order, _ := strconv.Atoi(c.FormValue("order", "0"))

	photo := courseModels.ReviewPhoto{
		Title:          title,
		Image:          path,
		ShowOnHomepage: c.FormValue("show_on_homepage", "true") != "false",
		Order:          order,
	}

	if err := database.Database.Db.Create(&photo).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create review photo!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review photo created successfully!", photo)
}

// AdminUpdateReviewPhoto toggles visibility or reorders a photo.
func AdminUpdateReviewPhoto(c *fiber.Ctx) error {
	photoID := c.Locals("photoID").(int)

	var photo courseModels.ReviewPhoto
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", photoID, false).First(&photo).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review photo not found!", nil)
	}

	reqData := new(struct {
		Title          *string `json:"title"`
		ShowOnHomepage *bool   `json:"show_on_homepage"`
		Order          *int    `json:"order"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		photo.Title = *reqData.Title
	}
	if reqData.ShowOnHomepage != nil {
		photo.ShowOnHomepage = *reqData.ShowOnHomepage
	}
	if reqData.Order != nil {
		photo.Order = *reqData.Order
	}

	if err := database.Database.Db.Save(&photo).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review photo!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review photo updated successfully!", photo)
}

// AdminDeleteReviewPhoto soft deletes a photo.
func AdminDeleteReviewPhoto(c *fiber.Ctx) error {
	photoID := c.Locals("photoID").(int)

	var photo courseModels.ReviewPhoto
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", photoID, false).First(&photo).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review photo not found!", nil)
	}

	photo.IsDeleted = true
	if err := database.Database.Db.Save(&photo).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review photo!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review photo deleted successfully!", nil)
}
