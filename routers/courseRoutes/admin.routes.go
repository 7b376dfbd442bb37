package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"elearn/models"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up admin course and enrollment routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin))

	// Course management
	adminGroup.Post("/course", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/course/:id", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/course/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Post("/course/:id/module", validators.CourseID(), validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Delete("/module/:module_id", validators.ModuleID(), controllers.AdminDeleteModule)

	// Enrollment review
	adminGroup.Get("/enrollments", validators.EnrollmentList(), controllers.AdminListEnrollmentRequests)
	adminGroup.Patch("/enrollments/:request_id/approve", validators.RequestID(), controllers.AdminApproveRequest)
	adminGroup.Patch("/enrollments/:request_id/reject", validators.RequestID(), validators.Reject(), controllers.AdminRejectRequest)
}
