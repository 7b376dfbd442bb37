package supportValidator

import (
	"elearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CreateTicketRequest struct {
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	Category *string `json:"category"`
}

// CreateTicket validates a support ticket submission
func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTicketRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if len(strings.TrimSpace(reqData.Message)) < 10 {
			errors["message"] = "Message must be at least 10 characters long!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSupportTicket", reqData)
		return c.Next()
	}
}

// TicketID validates the :id route parameter
func TicketID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket ID!", nil)
		}

		c.Locals("ticketID", id)
		return c.Next()
	}
}
