package controllers

import (
	"elearning/database"
	"elearning/middleware"
	courseModels "elearning/models/course"
	"elearning/utils"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueCertificate creates the persisted certificate record for the caller's
// enrollment, or returns the existing one unchanged. Repeat calls are success,
// never an error, so page reloads don't fail. No completion check runs here;
// enrollment is the only precondition.
func IssueCertificate(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	// Idempotent: an existing certificate is returned as-is
	var existing courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", existing)
	}

	reqData, _ := c.Locals("validatedCertificate").(*struct {
		FullName  string `json:"full_name"`
		CoachName string `json:"coach_name"`
	})

	fullName := user.FullName()
	coachName := ""
	if reqData != nil {
		if reqData.FullName != "" {
			fullName = reqData.FullName
		}
		coachName = reqData.CoachName
	}

	certificate := courseModels.Certificate{
		UserID:            user.ID,
		CourseID:          uint(courseID),
		FullName:          fullName,
		CoachName:         coachName,
		CertificateNumber: uuid.New().String(),
		IssuedAt:          time.Now(),
	}

	if err := database.Database.Db.Create(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent request; fetch what it created
			if err := database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&existing).Error; err == nil {
				return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", existing)
			}
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", certificate)
}

// GenerateCertificate renders a downloadable completion document on the fly.
// This is the stateless path: nothing is persisted, the PDF streams straight
// back with a fresh unique filename each call.
func GenerateCertificate(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCertificate").(*struct {
		FullName  string `json:"full_name"`
		CoachName string `json:"coach_name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	pdfBytes, filename, err := utils.RenderCertificate(reqData.FullName, course.Title, reqData.CoachName)
	if err != nil {
		if errors.Is(err, utils.ErrEmptyRecipient) {
			return middleware.ValidationErrorResponse(c, map[string]string{"full_name": "Name is required!"})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%s`, filename))
	return c.Send(pdfBytes)
}

// GetUserCertificates lists the caller's issued certificates with course titles.
func GetUserCertificates(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", result)
}
