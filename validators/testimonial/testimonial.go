package testimonialValidator

import (
	"elearn/middleware"
	"elearn/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type CreateTestimonialRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ModerationRequest struct {
	Status string `json:"status"`
}

// Create validates a testimonial submission
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTestimonialRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}
		if len(reqData.Comment) < 10 {
			errors["comment"] = "Comment must be at least 10 characters long!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTestimonial", reqData)
		return c.Next()
	}
}

// TestimonialID validates the :id route parameter
func TestimonialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid testimonial ID!", nil)
		}

		c.Locals("testimonialID", id)
		return c.Next()
	}
}

// Moderate validates a moderation decision
func Moderate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ModerationRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch models.TestimonialStatus(reqData.Status) {
		case models.TestimonialApproved, models.TestimonialRejected:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be APPROVED or REJECTED!",
			})
		}

		c.Locals("validatedModeration", reqData)
		return c.Next()
	}
}
