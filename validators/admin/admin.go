package adminValidator

import (
	"elearning/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func idParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}

		c.Locals(localKey, id)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return idParam("id", "courseID", "Course ID")
}

func CategoryID() fiber.Handler {
	return idParam("id", "categoryID", "Category ID")
}

func VideoID() fiber.Handler {
	return idParam("id", "videoID", "Video ID")
}

func PDFID() fiber.Handler {
	return idParam("id", "pdfID", "PDF ID")
}

func UserID() fiber.Handler {
	return idParam("id", "targetUserID", "User ID")
}

func PhotoID() fiber.Handler {
	return idParam("id", "photoID", "Photo ID")
}

// CreateCategory validates a new category payload.
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name is required!"})
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// CreateCourse validates a new course payload.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title          string   `json:"title"`
			Description    string   `json:"description"`
			ThumbnailURL   string   `json:"thumbnail_url"`
			CategoryID     *uint    `json:"category_id"`
			Duration       string   `json:"duration"`
			DurationInDays int      `json:"duration_in_days"`
			Price          *float64 `json:"price"`
			IsFree         bool     `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.DurationInDays < 0 {
			errors["duration_in_days"] = "Duration in days cannot be negative!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates a partial course update.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title          *string  `json:"title"`
			Description    *string  `json:"description"`
			ThumbnailURL   *string  `json:"thumbnail_url"`
			CategoryID     *uint    `json:"category_id"`
			Duration       *string  `json:"duration"`
			DurationInDays *int     `json:"duration_in_days"`
			Price          *float64 `json:"price"`
			IsPublished    *bool    `json:"is_published"`
			IsFree         *bool    `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.DurationInDays != nil && *reqData.DurationInDays < 0 {
			errors["duration_in_days"] = "Duration in days cannot be negative!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateVideo validates a new video payload.
func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID    uint   `json:"course_id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			VideoURL    string `json:"video_url"`
			Duration    string `json:"duration"`
			Order       int    `json:"order"`
			IsFree      bool   `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// UpdateVideo validates a partial video update.
func UpdateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			VideoURL    *string `json:"video_url"`
			Duration    *string `json:"duration"`
			Order       *int    `json:"order"`
			IsFree      *bool   `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title cannot be empty!"})
		}

		c.Locals("validatedVideoUpdate", reqData)
		return c.Next()
	}
}

// CreatePDF validates new document metadata; the file arrives as multipart.
func CreatePDF() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(c.FormValue("course_id", "0"))
		if err != nil || courseID <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"course_id": "Course ID is required!"})
		}

		title := strings.TrimSpace(c.FormValue("title"))
		if title == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		order, _ := strconv.Atoi(c.FormValue("order", "0"))

		reqData := &struct {
			CourseID    uint   `json:"course_id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Order       int    `json:"order"`
		}{
			CourseID:    uint(courseID),
			Title:       title,
			Description: c.FormValue("description"),
			Order:       order,
		}

		c.Locals("validatedPDF", reqData)
		return c.Next()
	}
}

// UpdatePDF validates a partial document update.
func UpdatePDF() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Order       *int    `json:"order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title cannot be empty!"})
		}

		c.Locals("validatedPDFUpdate", reqData)
		return c.Next()
	}
}

// UpdateUser validates an admin user update.
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FirstName       *string `json:"first_name"`
			LastName        *string `json:"last_name"`
			Role            *string `json:"role"`
			IsEmailVerified *bool   `json:"is_email_verified"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Role != nil && *reqData.Role != "USER" && *reqData.Role != "ADMIN" {
			return middleware.ValidationErrorResponse(c, map[string]string{"role": "Role must be USER or ADMIN!"})
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

// AssignCourse validates the assign/unassign payload.
func AssignCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint `json:"user_id"`
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignCourse", reqData)
		return c.Next()
	}
}
