package courseValidator

import (
	"elearning/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// idParam parses a positive integer route parameter into c.Locals(localKey).
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

func CourseIDParam() fiber.Handler {
	return idParam("course_id", "courseID", "Course ID")
}

func EnrollmentID() fiber.Handler {
	return idParam("id", "enrollmentID", "Enrollment ID")
}

func FeedbackID() fiber.Handler {
	return idParam("id", "feedbackID", "Feedback ID")
}

// ProgressUpdate validates the enrollment PATCH payload. Watched ids arrive
// as a raw array so the handler can coerce and discard junk entries; progress
// itself is never accepted from the client.
func ProgressUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WatchedVideoIDs []interface{} `json:"watched_video_ids"`
			VideoID         *int          `json:"video_id"`
			LastWatchedID   *uint         `json:"last_watched_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.VideoID != nil && *reqData.VideoID <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"video_id": "Video ID must be a positive integer!"})
		}

		c.Locals("validatedProgressUpdate", reqData)
		return c.Next()
	}
}

// Certificate validates the certificate request payload. The name check for
// the stateless render path lives in the renderer itself; here we only shape
// the payload.
func Certificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName  string `json:"full_name"`
			CoachName string `json:"coach_name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.FullName = strings.TrimSpace(reqData.FullName)

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

// Feedback validates a new review: target course and rating bounds.
func Feedback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint   `json:"course_id"`
			Rating   int    `json:"rating"`
			Comment  string `json:"comment"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFeedback", reqData)
		return c.Next()
	}
}

// FeedbackUpdate validates a review update; rating keeps its bounds.
func FeedbackUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Rating  *int    `json:"rating"`
			Comment *string `json:"comment"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Rating != nil && (*reqData.Rating < 1 || *reqData.Rating > 5) {
			return middleware.ValidationErrorResponse(c, map[string]string{"rating": "Rating must be between 1 and 5!"})
		}

		c.Locals("validatedFeedbackUpdate", reqData)
		return c.Next()
	}
}
