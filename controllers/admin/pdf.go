package adminController

import (
	"elearning/database"
	"elearning/middleware"
	courseModels "elearning/models/course"
	"elearning/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminCreatePDF uploads a course document.
func AdminCreatePDF(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPDF").(*struct {
		CourseID    uint   `json:"course_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Order       int    `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	file, err := c.FormFile("pdf_file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "PDF file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "course_pdfs")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save PDF file!", nil)
	}

	pdf := courseModels.PDF{
		CourseID:    reqData.CourseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		PDFFile:     path,
		Order:       reqData.Order,
	}

	if err := database.Database.Db.Create(&pdf).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create PDF!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "PDF created successfully!", pdf)
}

// AdminUpdatePDF updates document metadata.
func AdminUpdatePDF(c *fiber.Ctx) error {
	pdfID := c.Locals("pdfID").(int)

	var pdf courseModels.PDF
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", pdfID, false).First(&pdf).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "PDF not found!", nil)
	}

	reqData, ok := c.Locals("validatedPDFUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Order       *int    `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		pdf.Title = *reqData.Title
	}
	if reqData.Description != nil {
		pdf.Description = *reqData.Description
	}
	if reqData.Order != nil {
		pdf.Order = *reqData.Order
	}

	if err := database.Database.Db.Save(&pdf).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update PDF!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "PDF updated successfully!", pdf)
}

// AdminDeletePDF soft deletes a document.
func AdminDeletePDF(c *fiber.Ctx) error {
	pdfID := c.Locals("pdfID").(int)

	var pdf courseModels.PDF
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", pdfID, false).First(&pdf).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "PDF not found!", nil)
	}

	pdf.IsDeleted = true
	if err := database.Database.Db.Save(&pdf).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete PDF!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "PDF deleted successfully!", nil)
}

// AdminGetAllPDFs lists documents, optionally filtered by course.
func AdminGetAllPDFs(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if courseID := c.QueryInt("course_id", 0); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}

	var pdfs []courseModels.PDF
	if err := db.Order("order_index asc, created_at asc").Find(&pdfs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch PDFs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "PDFs fetched successfully!", pdfs)
}
