package courseRoutes

import (
	controllers "elearning/controllers/course"
	"elearning/middleware"
	validators "elearning/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog and all user-facing
// enrollment, progress, certificate and feedback routes
func SetupCourseRoutes(app *fiber.App) {
	// Public catalog
	app.Get("/categories", controllers.GetCategories)
	app.Get("/courses", controllers.GetAllCourses)
	app.Get("/courses/:id", validators.CourseID(), controllers.GetCourseDetails)
	app.Get("/videos/free", controllers.GetFreeVideos)
	app.Get("/review-photos", controllers.GetReviewPhotos)

	// Course content (enrolled users)
	app.Get("/courses/:id/videos", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseVideos)
	app.Get("/courses/:id/pdfs", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCoursePDFs)

	// Enrollment and progress
	app.Post("/courses/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	app.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
	app.Patch("/enrollments/:id", middleware.JWTMiddleware, validators.EnrollmentID(), validators.ProgressUpdate(), controllers.UpdateEnrollmentProgress)
	app.Get("/courses/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetUserProgress)

	// Certificates: persisted issuance and the stateless download render
	app.Post("/courses/:course_id/certificates", middleware.JWTMiddleware, validators.CourseIDParam(), validators.Certificate(), controllers.IssueCertificate)
	app.Post("/:course_id/generate", middleware.JWTMiddleware, validators.CourseIDParam(), validators.Certificate(), controllers.GenerateCertificate)
	app.Get("/user/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Feedback
	app.Get("/feedbacks", controllers.GetFeedbacks)
	app.Post("/feedbacks", middleware.JWTMiddleware, validators.Feedback(), controllers.SubmitFeedback)
	app.Get("/feedbacks/:id", middleware.JWTMiddleware, validators.FeedbackID(), controllers.GetFeedback)
	app.Patch("/feedbacks/:id", middleware.JWTMiddleware, validators.FeedbackID(), validators.FeedbackUpdate(), controllers.UpdateFeedback)
	app.Delete("/feedbacks/:id", middleware.JWTMiddleware, validators.FeedbackID(), controllers.DeleteFeedback)
}
