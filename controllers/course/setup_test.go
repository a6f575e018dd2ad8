package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"elearning/config"
	"elearning/database"
	"elearning/middleware"
	"elearning/models"
	courseModels "elearning/models/course"
	"elearning/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires the course routes against a fresh in-memory database.
func setupTestApp(t *testing.T) *fiber.App {
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

	// A second connection would see its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func createTestUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	user := models.User{
		FirstName:       "Test",
		LastName:        "User",
		Email:           email,
		Password:        "not-a-real-hash",
		Role:            "USER",
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName(), user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func createTestCourse(t *testing.T, title string, durationInDays int, published bool) *courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:          title,
		Description:    "test course",
		DurationInDays: durationInDays,
		IsPublished:    published,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return &course
}

func enrollUser(t *testing.T, userID, courseID uint) *courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		UserID:          userID,
		CourseID:        courseID,
		WatchedVideoIDs: []byte("[]"),
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
	return &enrollment
}

func createTestVideo(t *testing.T, courseID uint, order int) *courseModels.Video {
	t.Helper()

	video := courseModels.Video{
		CourseID: courseID,
		Title:    fmt.Sprintf("Lesson %d", order),
		VideoURL: "https://videos.example.com/lesson.mp4",
		Order:    order,
	}
	require.NoError(t, database.Database.Db.Create(&video).Error)
	return &video
}

// doRequest performs a request against the test app with an optional JSON
// body and bearer token, and decodes the standard response envelope.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
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
	if len(raw) > 0 && resp.Header.Get("Content-Type") != "application/pdf" {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}
