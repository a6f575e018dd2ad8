package adminRoutes

import (
	controllers "elearning/controllers/admin"
	"elearning/middleware"
	validators "elearning/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up all staff-only management routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.StaffOnly)

	// Categories
	adminGroup.Post("/categories", validators.CreateCategory(), controllers.AdminCreateCategory)
	adminGroup.Delete("/categories/:id", validators.CategoryID(), controllers.AdminDeleteCategory)

	// Courses
	adminGroup.Get("/courses", controllers.AdminGetAllCourses)
	adminGroup.Post("/courses", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/courses/:id", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/courses/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Post("/courses/:id/publish", validators.CourseID(), controllers.AdminPublishCourse)
	adminGroup.Post("/courses/:id/thumbnail", validators.CourseID(), controllers.AdminUploadCourseThumbnail)
	adminGroup.Get("/courses/:id/videos", validators.CourseID(), controllers.AdminGetCourseVideos)

	// Videos
	adminGroup.Post("/videos", validators.CreateVideo(), controllers.AdminCreateVideo)
	adminGroup.Put("/videos/:id", validators.VideoID(), validators.UpdateVideo(), controllers.AdminUpdateVideo)
	adminGroup.Delete("/videos/:id", validators.VideoID(), controllers.AdminDeleteVideo)
	adminGroup.Post("/videos/:id/upload", validators.VideoID(), controllers.AdminUploadVideoFile)

	// PDFs
	adminGroup.Get("/pdfs", controllers.AdminGetAllPDFs)
	adminGroup.Post("/pdfs", validators.CreatePDF(), controllers.AdminCreatePDF)
	adminGroup.Put("/pdfs/:id", validators.PDFID(), validators.UpdatePDF(), controllers.AdminUpdatePDF)
	adminGroup.Delete("/pdfs/:id", validators.PDFID(), controllers.AdminDeletePDF)

	// Users and enrollment management
	adminGroup.Get("/users", controllers.AdminGetAllUsers)
	adminGroup.Put("/users/:id", validators.UserID(), validators.UpdateUser(), controllers.AdminUpdateUser)
	adminGroup.Delete("/users/:id", validators.UserID(), controllers.AdminDeleteUser)
	adminGroup.Get("/users/:id/enrollments", validators.UserID(), controllers.AdminGetUserEnrollments)
	adminGroup.Post("/assign-course", validators.AssignCourse(), controllers.AdminAssignCourse)
	adminGroup.Post("/unassign-course", validators.AssignCourse(), controllers.AdminUnassignCourse)

	// Review photos
	adminGroup.Post("/review-photos", controllers.AdminCreateReviewPhoto)
	adminGroup.Put("/review-photos/:id", validators.PhotoID(), controllers.AdminUpdateReviewPhoto)
	adminGroup.Delete("/review-photos/:id", validators.PhotoID(), controllers.AdminDeleteReviewPhoto)

	// Certificates and dashboard
	adminGroup.Get("/certificates", controllers.AdminGetCertificates)
	adminGroup.Get("/stats", controllers.AdminStats)
}
