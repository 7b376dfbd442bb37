package userControllers

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the authenticated user's profile.
func GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile updates name and profile image.
func UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var stored models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", user.ID, false).First(&stored).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if name := c.FormValue("name"); name != "" {
		stored.Name = name
	}

	if file, err := c.FormFile("profile_image"); err == nil && file != nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving profile image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store profile image!", nil)
		}
		stored.ProfileImage = utils.GetFileURL(path)
	}

	if err := database.Database.Db.Save(&stored).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	stored.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", stored)
}
