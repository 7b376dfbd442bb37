package testimonialControllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	testimonialValidator "elearn/validators/testimonial"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateTestimonial submits a testimonial for moderation.
func CreateTestimonial(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTestimonial").(*testimonialValidator.CreateTestimonialRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	testimonial := models.Testimonial{
		UserID:  user.ID,
		Rating:  reqData.Rating,
		Comment: reqData.Comment,
		Status:  models.TestimonialPending,
	}

	if err := database.Database.Db.Create(&testimonial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit testimonial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Testimonial submitted successfully!", testimonial)
}

// ListTestimonials returns approved testimonials. Public route.
func ListTestimonials(c *fiber.Ctx) error {
	var testimonials []models.Testimonial
	if err := database.Database.Db.
		Where("status = ?", models.TestimonialApproved).
		Order("created_at desc").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name") // Only fetch name
		}).
		Find(&testimonials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch testimonials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonials fetched successfully!", testimonials)
}

// AdminModerateTestimonial approves or rejects a testimonial.
func AdminModerateTestimonial(c *fiber.Ctx) error {
	testimonialID := c.Locals("testimonialID").(int)

	reqData, ok := c.Locals("validatedModeration").(*testimonialValidator.ModerationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var testimonial models.Testimonial
	if err := database.Database.Db.Where("id = ?", testimonialID).First(&testimonial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Testimonial not found!", nil)
	}

	testimonial.Status = models.TestimonialStatus(reqData.Status)
	if err := database.Database.Db.Save(&testimonial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update testimonial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonial updated successfully!", testimonial)
}
