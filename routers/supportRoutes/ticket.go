package supportRoutes

import (
	supportControllers "elearn/controllers/support"
	"elearn/middleware"
	"elearn/models"
	supportValidators "elearn/validators/support"

	"github.com/gofiber/fiber/v2"
)

func SetupSupportRoutes(app *fiber.App) {
	group := app.Group("/support")

	group.Post("/ticket", middleware.JWTMiddleware, supportValidators.CreateTicket(), supportControllers.CreateSupportTicket)
	group.Get("/tickets", middleware.JWTMiddleware, supportControllers.TicketList)
	group.Patch("/ticket/:id/close",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		supportValidators.TicketID(),
		supportControllers.AdminCloseTicket)
}
