package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"elearning/config"
	"elearning/database"
	"elearning/models"
	"elearning/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:              "test-secret",
		SaltRound:           4,
		FrontendURL:         "http://localhost:8080",
		EmailSender:         "noreply@example.com",
		PendingUserTTLHours: 24,
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
	authRoutes.SetupAuthRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
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

func registerPayload(email string) fiber.Map {
	return fiber.Map{
		"email":      email,
		"password":   "strongpass123",
		"password2":  "strongpass123",
		"first_name": "Jane",
		"last_name":  "Learner",
	}
}

func TestRegisterVerifyLogin(t *testing.T) {
	app := setupAuthApp(t)

	t.Run("register creates a pending user only", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/auth/register", "", registerPayload("jane@example.com"))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, true, body["status"])

		var pendingCount, userCount int64
		database.Database.Db.Model(&models.PendingUser{}).Count(&pendingCount)
		database.Database.Db.Model(&models.User{}).Count(&userCount)
		assert.Equal(t, int64(1), pendingCount)
		assert.Equal(t, int64(0), userCount)
	})

	t.Run("login before verification fails", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
			"email":    "jane@example.com",
			"password": "strongpass123",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("verify materializes the account", func(t *testing.T) {
		var pending models.PendingUser
		require.NoError(t, database.Database.Db.First(&pending).Error)

		resp, _ := doJSON(t, app, "GET", "/auth/verify-email?token="+pending.Token, "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var user models.User
		require.NoError(t, database.Database.Db.Where("email = ?", "jane@example.com").First(&user).Error)
		assert.True(t, user.IsEmailVerified)

		// pending row consumed
		var pendingCount int64
		database.Database.Db.Model(&models.PendingUser{}).Count(&pendingCount)
		assert.Equal(t, int64(0), pendingCount)
	})

	t.Run("token cannot be used twice", func(t *testing.T) {
		var user models.User
		require.NoError(t, database.Database.Db.First(&user).Error)

		resp, _ := doJSON(t, app, "GET", "/auth/verify-email?token=does-not-exist", "", nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login succeeds after verification", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
			"email":    "JANE@example.com", // case-insensitive
			"password": "strongpass123",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access"])
		assert.NotEmpty(t, data["refresh"])
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
			"email":    "jane@example.com",
			"password": "wrongpass123",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("registered email conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/auth/register", "", registerPayload("jane@example.com"))
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestRegisterValidation(t *testing.T) {
	app := setupAuthApp(t)

	t.Run("password mismatch", func(t *testing.T) {
		payload := registerPayload("jane@example.com")
		payload["password2"] = "differentpass"

		resp, body := doJSON(t, app, "POST", "/auth/register", "", payload)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

		errs := body["data"].(map[string]interface{})
		assert.Contains(t, errs, "password")
	})

	t.Run("short password", func(t *testing.T) {
		payload := registerPayload("jane@example.com")
		payload["password"] = "short"
		payload["password2"] = "short"

		resp, body := doJSON(t, app, "POST", "/auth/register", "", payload)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

		errs := body["data"].(map[string]interface{})
		assert.Contains(t, errs, "password")
	})

	t.Run("invalid email", func(t *testing.T) {
		payload := registerPayload("not-an-email")

		resp, body := doJSON(t, app, "POST", "/auth/register", "", payload)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

		errs := body["data"].(map[string]interface{})
		assert.Contains(t, errs, "email")
	})
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	app := setupAuthApp(t)

	doJSON(t, app, "POST", "/auth/register", "", registerPayload("jane@example.com"))

	var pending models.PendingUser
	require.NoError(t, database.Database.Db.First(&pending).Error)

	// Age the token past its TTL
	pending.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, database.Database.Db.Save(&pending).Error)

	resp, _ := doJSON(t, app, "GET", "/auth/verify-email?token="+pending.Token, "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// expired row deleted on sight
	var count int64
	database.Database.Db.Model(&models.PendingUser{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestVerifyEmailTakenBySoftDeletedAccount(t *testing.T) {
	app := setupAuthApp(t)

	// A removed account still owns the email at the storage level
	ghost := models.User{
		Email:           "jane@example.com",
		Password:        "not-a-real-hash",
		IsEmailVerified: true,
		IsDeleted:       true,
	}
	require.NoError(t, database.Database.Db.Create(&ghost).Error)

	// Registration passes: its pre-check only sees live accounts
	resp, _ := doJSON(t, app, "POST", "/auth/register", "", registerPayload("jane@example.com"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var pending models.PendingUser
	require.NoError(t, database.Database.Db.First(&pending).Error)

	// The unique index speaks up at verification time; that is a conflict,
	// not a server error
	resp, _ = doJSON(t, app, "GET", "/auth/verify-email?token="+pending.Token, "", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// the dead-end pending row is cleaned up
	var count int64
	database.Database.Db.Model(&models.PendingUser{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRefreshToken(t *testing.T) {
	app := setupAuthApp(t)

	doJSON(t, app, "POST", "/auth/register", "", registerPayload("jane@example.com"))
	var pending models.PendingUser
	require.NoError(t, database.Database.Db.First(&pending).Error)
	doJSON(t, app, "GET", "/auth/verify-email?token="+pending.Token, "", nil)

	_, body := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "jane@example.com",
		"password": "strongpass123",
	})
	data := body["data"].(map[string]interface{})
	access := data["access"].(string)
	refresh := data["refresh"].(string)

	t.Run("refresh token mints a new access token", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/auth/token/refresh", "", fiber.Map{"refresh": refresh})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["data"].(map[string]interface{})["access"])
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/auth/token/refresh", "", fiber.Map{"refresh": access})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token cannot hit protected routes", func(t *testing.T) {
		resp, _ := doJSON(t, app, "GET", "/auth/profile", refresh, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("profile with access token", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/auth/profile", access, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		profile := body["data"].(map[string]interface{})
		assert.Equal(t, "jane@example.com", profile["email"])
	})
}

func TestChangePassword(t *testing.T) {
	app := setupAuthApp(t)

	doJSON(t, app, "POST", "/auth/register", "", registerPayload("jane@example.com"))
	var pending models.PendingUser
	require.NoError(t, database.Database.Db.First(&pending).Error)
	doJSON(t, app, "GET", "/auth/verify-email?token="+pending.Token, "", nil)

	_, body := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "jane@example.com",
		"password": "strongpass123",
	})
	access := body["data"].(map[string]interface{})["access"].(string)

	t.Run("wrong old password", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/auth/change-password", access, fiber.Map{
			"old_password": "wrongpass123",
			"new_password": "freshpass456",
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		errs := body["data"].(map[string]interface{})
		assert.Contains(t, errs, "old_password")
	})

	t.Run("changes the password", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/auth/change-password", access, fiber.Map{
			"old_password": "strongpass123",
			"new_password": "freshpass456",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		// old credentials are dead, new ones work
		resp, _ = doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
			"email":    "jane@example.com",
			"password": "strongpass123",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		resp, _ = doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
			"email":    "jane@example.com",
			"password": "freshpass456",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
