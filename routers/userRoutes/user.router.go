package userRoutes

import (
	userControllers "elearn/controllers/userControllers"
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userControllers.UpdateProfile)
}
