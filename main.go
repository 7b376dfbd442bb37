package main

import (
	"elearn/config"
	"elearn/database"
	authRoutes "elearn/routers/authRoutes"
	courseRoutes "elearn/routers/courseRoutes"
	supportRoutes "elearn/routers/supportRoutes"
	testimonialRoutes "elearn/routers/testimonialRoutes"
	userRoutes "elearn/routers/userRoutes"
	"elearn/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded evidence and profile images
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	testimonialRoutes.SetupTestimonialRoutes(app)
	supportRoutes.SetupSupportRoutes(app)

	utils.InitializeEnrollmentScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
