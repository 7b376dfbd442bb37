package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog is public; the detail route resolves an identity when a
	// token is present so the view can include the protected link
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.OptionalJWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment workflow
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestEnrollment)
	courseGroup.Get("/:id/enrollment/status", middleware.JWTMiddleware, validators.CourseID(), controllers.GetEnrollmentStatus)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetMyEnrollments)
}
