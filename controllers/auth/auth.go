package authController

import (
	"elearning/config"
	"elearning/database"
	"elearning/middleware"
	"elearning/models"
	"elearning/utils"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// swappable so tests can simulate delivery failures
var sendVerificationEmail = utils.SendVerificationEmail

// Register creates a pending registration and emails a verification link.
// The real account only materializes once the link is visited. A failed email
// send rolls the pending row back so no unverifiable record is left behind.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		Password2 string `json:"password2" validate:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	email := strings.ToLower(strings.TrimSpace(reqData.Email))
	db := database.Database.Db

	// Check if email already belongs to a real account
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Drop stale pending registrations for the same email
	db.Unscoped().Where("email = ?", email).Delete(&models.PendingUser{})

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	pending := models.PendingUser{
		Email:     email,
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Password:  string(hashedPassword),
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(time.Duration(config.AppConfig.PendingUserTTLHours) * time.Hour),
	}

	if err := db.Create(&pending).Error; err != nil {
		log.Printf("Error saving pending user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register!", nil)
	}

	// Synchronous: registration must not succeed with no email on the way
	if err := sendVerificationEmail(pending.Email, pending.FirstName, pending.Token); err != nil {
		db.Unscoped().Delete(&pending)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send verification email. Please try again.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registration successful. Please check your email to verify your account.", fiber.Map{
		"email": pending.Email,
	})
}

// VerifyEmail materializes the account behind a pending registration token.
// Expired tokens are deleted on sight; the user must register again.
func VerifyEmail(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification token is required!", nil)
	}

	db := database.Database.Db

	var pending models.PendingUser
	if err := db.Where("token = ?", token).First(&pending).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired verification token!", nil)
	}

	if pending.IsExpired() {
		db.Unscoped().Delete(&pending)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification token has expired. Please register again.", nil)
	}

	user := models.User{
		Email:           pending.Email,
		FirstName:       pending.FirstName,
		LastName:        pending.LastName,
		Password:        pending.Password, // already hashed
		IsEmailVerified: true,
	}

	if err := db.Create(&user).Error; err != nil {
		// The email can be taken by a soft-deleted account or by a concurrent
		// pending registration that verified first. The pending row is useless
		// either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			db.Unscoped().Delete(&pending)
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		log.Printf("Error creating user from pending registration: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify email!", nil)
	}

	db.Unscoped().Delete(&pending)

	utils.SendWelcomeEmail(user.Email, user.FirstName)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully. You can now login.", fiber.Map{
		"email": user.Email,
	})
}

// Login exchanges credentials for an access/refresh token pair.
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not verified!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	accessToken, err := middleware.GenerateJWT(user.ID, user.FullName(), user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	refreshToken, err := middleware.GenerateRefreshJWT(user.ID)
	if err != nil {
		log.Printf("Error generating refresh token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	user.LastLogin = time.Now()
	database.Database.Db.Save(&user)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"access":  accessToken,
		"refresh": refreshToken,
		"user":    user,
	})
}

// RefreshToken mints a new access token from a valid refresh token.
func RefreshToken(c *fiber.Ctx) error {
	reqData := new(struct {
		Refresh string `json:"refresh"`
	})

	if err := c.BodyParser(reqData); err != nil || reqData.Refresh == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Refresh token is required!", nil)
	}

	claims, err := middleware.ParseJWT(reqData.Refresh)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired refresh token!", nil)
	}

	if t, _ := claims["type"].(string); t != "refresh" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token type!", nil)
	}

	userID := uint(claims["userId"].(float64))

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	accessToken, err := middleware.GenerateJWT(user.ID, user.FullName(), user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refresh token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token refreshed!", fiber.Map{
		"access": accessToken,
	})
}

// GetProfile returns the authenticated user's profile.
func GetProfile(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile updates first/last name on the authenticated user.
func UpdateProfile(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	reqData := new(struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.FirstName != nil {
		user.FirstName = *reqData.FirstName
	}
	if reqData.LastName != nil {
		user.LastName = *reqData.LastName
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// ChangePassword verifies the old password before setting a new one.
func ChangePassword(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if user == nil {
		return err
	}

	reqData, ok := c.Locals("validatedChangePassword").(*struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"old_password": "Wrong password."})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	user.Password = string(hashedPassword)
	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully!", nil)
}
