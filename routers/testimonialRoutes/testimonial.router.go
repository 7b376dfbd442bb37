package testimonialRoutes

import (
	testimonialControllers "elearn/controllers/testimonial"
	"elearn/middleware"
	"elearn/models"
	testimonialValidators "elearn/validators/testimonial"

	"github.com/gofiber/fiber/v2"
)

func SetupTestimonialRoutes(app *fiber.App) {
	group := app.Group("/testimonial")

	group.Get("/list", testimonialControllers.ListTestimonials)
	group.Post("/", middleware.JWTMiddleware, middleware.RequireVerifiedEmail, testimonialValidators.Create(), testimonialControllers.CreateTestimonial)
	group.Patch("/:id/moderate",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		testimonialValidators.TestimonialID(),
		testimonialValidators.Moderate(),
		testimonialControllers.AdminModerateTestimonial)
}
