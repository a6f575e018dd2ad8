package authRoutes

import (
	authController "elearning/controllers/auth"
	"elearning/middleware"
	authValidator "elearning/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, verification and session routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Get("/verify-email", authController.VerifyEmail)
	authGroup.Post("/login", authController.Login)
	authGroup.Post("/token/refresh", authController.RefreshToken)

	authGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	authGroup.Put("/profile", middleware.JWTMiddleware, authController.UpdateProfile)
	authGroup.Post("/change-password", middleware.JWTMiddleware, authValidator.ChangePassword(), authController.ChangePassword)
}
