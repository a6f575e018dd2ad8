package controllers_test

import (
	"regexp"
	"testing"

	"elearning/database"
	courseModels "elearning/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCertificate(t *testing.T) {
	app := setupTestApp(t)
	user, token := createTestUser(t, "learner@example.com")
	course := createTestCourse(t, "Go for Beginners", 10, true)

	t.Run("requires enrollment", func(t *testing.T) {
		resp, _ := doRequest(t, app, "POST", "/courses/1/certificates", token, fiber.Map{})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing course is not found", func(t *testing.T) {
		resp, _ := doRequest(t, app, "POST", "/courses/999/certificates", token, fiber.Map{})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("issues once then returns existing", func(t *testing.T) {
		enrollUser(t, user.ID, course.ID)

		resp, body := doRequest(t, app, "POST", "/courses/1/certificates", token, fiber.Map{
			"full_name":  "Jane Learner",
			"coach_name": "Coach Smith",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		firstNumber := data["certificate_number"].(string)
		assert.NotEmpty(t, firstNumber)
		assert.Equal(t, "Jane Learner", data["full_name"])

		// repeat issue is a success with the same record
		resp, body = doRequest(t, app, "POST", "/courses/1/certificates", token, fiber.Map{
			"full_name": "Different Name",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		data = body["data"].(map[string]interface{})
		assert.Equal(t, firstNumber, data["certificate_number"])
		assert.Equal(t, "Jane Learner", data["full_name"]) // original record untouched

		var count int64
		database.Database.Db.Model(&courseModels.Certificate{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("defaults full name from profile", func(t *testing.T) {
		user2, token2 := createTestUser(t, "second@example.com")
		other := createTestCourse(t, "Second Course", 5, true)
		enrollUser(t, user2.ID, other.ID)

		resp, body := doRequest(t, app, "POST", "/courses/2/certificates", token2, fiber.Map{})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, "Test User", data["full_name"])
	})
}

func TestGenerateCertificate(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "learner@example.com")
	createTestCourse(t, "Go for Beginners", 10, true)

	t.Run("streams a pdf attachment", func(t *testing.T) {
		resp, _ := doRequest(t, app, "POST", "/1/generate", token, fiber.Map{
			"full_name":  "Jane Learner",
			"coach_name": "Coach Smith",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

		disposition := resp.Header.Get("Content-Disposition")
		assert.Regexp(t, regexp.MustCompile(`^attachment; filename=certificate_[0-9a-f-]{36}\.pdf$`), disposition)
	})

	t.Run("fresh filename per request", func(t *testing.T) {
		resp1, _ := doRequest(t, app, "POST", "/1/generate", token, fiber.Map{"full_name": "Jane Learner"})
		resp2, _ := doRequest(t, app, "POST", "/1/generate", token, fiber.Map{"full_name": "Jane Learner"})
		assert.NotEqual(t, resp1.Header.Get("Content-Disposition"), resp2.Header.Get("Content-Disposition"))
	})

	t.Run("blank name rejected", func(t *testing.T) {
		resp, body := doRequest(t, app, "POST", "/1/generate", token, fiber.Map{
			"full_name": "   ",
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		errs := body["data"].(map[string]interface{})
		assert.Contains(t, errs, "full_name")
	})

	t.Run("nothing persisted", func(t *testing.T) {
		var count int64
		database.Database.Db.Model(&courseModels.Certificate{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestGetUserCertificates(t *testing.T) {
	app := setupTestApp(t)
	user, token := createTestUser(t, "learner@example.com")
	_, otherToken := createTestUser(t, "other@example.com")
	course := createTestCourse(t, "Go for Beginners", 10, true)
	enrollUser(t, user.ID, course.ID)

	doRequest(t, app, "POST", "/courses/1/certificates", token, fiber.Map{"full_name": "Jane Learner"})

	t.Run("lists own certificates with course titles", func(t *testing.T) {
		resp, body := doRequest(t, app, "GET", "/user/certificates", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		certs := body["data"].([]interface{})
		require.Len(t, certs, 1)

		cert := certs[0].(map[string]interface{})
		assert.Equal(t, "Go for Beginners", cert["course_title"])
		assert.Equal(t, "Jane Learner", cert["full_name"])
	})

	t.Run("other users see nothing", func(t *testing.T) {
		resp, body := doRequest(t, app, "GET", "/user/certificates", otherToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, body["data"].([]interface{}), 0)
	})
}
