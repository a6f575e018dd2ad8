package adminController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"elearning/config"
	"elearning/database"
	"elearning/middleware"
	"elearning/models"
	courseModels "elearning/models/course"
	"elearning/routers/adminRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAdminApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
		UploadDir: t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	adminRoutes.SetupAdminRoutes(app)
	return app
}

func makeUser(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()

	user := models.User{
		FirstName:       "Admin",
		LastName:        "User",
		Email:           email,
		Password:        "not-a-real-hash",
		Role:            role,
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName(), user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func adminRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	return resp, parsed
}

func TestAdminAccessControl(t *testing.T) {
	app := setupAdminApp(t)
	_, userToken := makeUser(t, "user@example.com", "USER")

	t.Run("anonymous rejected", func(t *testing.T) {
		resp, _ := adminRequest(t, app, "GET", "/admin/stats", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-staff rejected", func(t *testing.T) {
		resp, _ := adminRequest(t, app, "GET", "/admin/stats", userToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestAdminCategoryManagement(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := makeUser(t, "admin@example.com", "ADMIN")

	t.Run("creates a category", func(t *testing.T) {
		resp, body := adminRequest(t, app, "POST", "/admin/categories", adminToken, fiber.Map{
			"name": "Programming",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Programming", body["data"].(map[string]interface{})["name"])
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		resp, _ := adminRequest(t, app, "POST", "/admin/categories", adminToken, fiber.Map{
			"name": "Programming",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("delete detaches courses", func(t *testing.T) {
		var category courseModels.Category
		require.NoError(t, database.Database.Db.First(&category).Error)

		course := courseModels.Course{Title: "Go Course", CategoryID: &category.ID}
		require.NoError(t, database.Database.Db.Create(&course).Error)

		resp, _ := adminRequest(t, app, "DELETE", "/admin/categories/1", adminToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var reloaded courseModels.Course
		require.NoError(t, database.Database.Db.First(&reloaded, course.ID).Error)
		assert.Nil(t, reloaded.CategoryID)
	})

	t.Run("name is reusable after delete", func(t *testing.T) {
		resp, _ := adminRequest(t, app, "POST", "/admin/categories", adminToken, fiber.Map{
			"name": "Programming",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})
}

func TestAdminCourseLifecycle(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := makeUser(t, "admin@example.com", "ADMIN")

	t.Run("creates unpublished", func(t *testing.T) {
		resp, body := adminRequest(t, app, "POST", "/admin/courses", adminToken, fiber.Map{
			"title":            "Go for Beginners",
			"description":      "intro course",
			"duration_in_days": 10,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, false, data["is_published"])
	})

	t.Run("publish toggle", func(t *testing.T) {
		resp, body := adminRequest(t, app, "POST", "/admin/courses/1/publish", adminToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["data"].(map[string]interface{})["is_published"])

		resp, body = adminRequest(t, app, "POST", "/admin/courses/1/publish", adminToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["data"].(map[string]interface{})["is_published"])
	})

	t.Run("partial update", func(t *testing.T) {
		resp, body := adminRequest(t, app, "PUT", "/admin/courses/1", adminToken, fiber.Map{
			"duration_in_days": 4,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.EqualValues(t, 4, data["duration_in_days"])
		assert.Equal(t, "Go for Beginners", data["title"]) // untouched
	})

	t.Run("delete soft-cascades videos", func(t *testing.T) {
		video := courseModels.Video{CourseID: 1, Title: "Lesson 1"}
		require.NoError(t, database.Database.Db.Create(&video).Error)

		resp, _ := adminRequest(t, app, "DELETE", "/admin/courses/1", adminToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var reloaded courseModels.Video
		require.NoError(t, database.Database.Db.First(&reloaded, video.ID).Error)
		assert.True(t, reloaded.IsDeleted)
	})
}

func TestAdminAssignUnassignCourse(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := makeUser(t, "admin@example.com", "ADMIN")
	learner, _ := makeUser(t, "learner@example.com", "USER")

	// unpublished on purpose: the admin path does not require publication
	course := courseModels.Course{Title: "Private Course", DurationInDays: 5}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	assignPayload := fiber.Map{"user_id": learner.ID, "course_id": course.ID}

	t.Run("assigns unpublished course", func(t *testing.T) {
		resp, _ := adminRequest(t, app, "POST", "/admin/assign-course", adminToken, assignPayload)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var count int64
		database.Database.Db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", learner.ID, course.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("double assign conflicts", func(t *testing.T) {
		resp, _ := adminRequest(t, app, "POST", "/admin/assign-course", adminToken, assignPayload)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("unassign removes enrollment and feedback", func(t *testing.T) {
		feedback := courseModels.Feedback{UserID: learner.ID, CourseID: course.ID, Rating: 5}
		require.NoError(t, database.Database.Db.Create(&feedback).Error)

		resp, _ := adminRequest(t, app, "POST", "/admin/unassign-course", adminToken, assignPayload)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var enrollments, feedbacks int64
		database.Database.Db.Model(&courseModels.Enrollment{}).Where("user_id = ?", learner.ID).Count(&enrollments)
		database.Database.Db.Model(&courseModels.Feedback{}).Where("user_id = ?", learner.ID).Count(&feedbacks)
		assert.Equal(t, int64(0), enrollments)
		assert.Equal(t, int64(0), feedbacks)
	})

	t.Run("unassign without enrollment is not found", func(t *testing.T) {
		resp, _ := adminRequest(t, app, "POST", "/admin/unassign-course", adminToken, assignPayload)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminStats(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := makeUser(t, "admin@example.com", "ADMIN")
	learner, _ := makeUser(t, "learner@example.com", "USER")

	published := courseModels.Course{Title: "Published", IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&published).Error)
	draft := courseModels.Course{Title: "Draft"}
	require.NoError(t, database.Database.Db.Create(&draft).Error)

	enrollment := courseModels.Enrollment{UserID: learner.ID, CourseID: published.ID, WatchedVideoIDs: []byte("[]")}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	resp, body := adminRequest(t, app, "GET", "/admin/stats", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	assert.EqualValues(t, 2, stats["courses"])
	assert.EqualValues(t, 1, stats["published_courses"])
	assert.EqualValues(t, 2, stats["users"])
	assert.EqualValues(t, 1, stats["enrollments"])

	recent := data["recent_enrollments"].([]interface{})
	require.Len(t, recent, 1)
	entry := recent[0].(map[string]interface{})
	assert.Equal(t, "Published", entry["course_title"])
	assert.Equal(t, "Admin User", entry["user_name"])
}
