package supportControllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	supportValidator "elearn/validators/support"

	"github.com/gofiber/fiber/v2"
)

func CreateSupportTicket(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSupportTicket").(*supportValidator.CreateTicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticket := models.SupportTicket{
		UserID:  user.ID,
		Title:   reqData.Title,
		Message: reqData.Message,
		Status:  "OPEN",
	}
	if reqData.Category != nil {
		ticket.Category = *reqData.Category
	}

	if err := database.Database.Db.Create(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create support ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Support ticket created successfully!", ticket)
}

func TicketList(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var tickets []models.SupportTicket
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Order("created_at desc").
		Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", tickets)
}

// AdminCloseTicket marks a ticket resolved.
func AdminCloseTicket(c *fiber.Ctx) error {
	ticketID := c.Locals("ticketID").(int)

	var ticket models.SupportTicket
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", ticketID, false).First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	ticket.Status = "CLOSED"
	if err := database.Database.Db.Save(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to close ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket closed successfully!", ticket)
}
