package authRoutes

import (
	authControllers "elearn/controllers/auth"
	"elearn/middleware"
	authValidators "elearn/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/login/google", authValidators.GoogleLogin(), authControllers.GoogleLogin)
	authGroup.Post("/send/otp", authValidators.SendOTP(), authControllers.SendOTP)
	authGroup.Patch("/verify/otp", authValidators.VerifyOTP(), authControllers.VerifyOTP)
	authGroup.Put("/change/login/password", authValidators.ChangePassword(), middleware.JWTMiddleware, authControllers.ChangeLoginPassword)
}
