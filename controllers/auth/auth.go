package authController

import (
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/utils"
	authValidator "elearn/validators/auth"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := utils.NormalizeEmail(reqData.Email)

	// Check if email already exists
	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleStudent,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	result := database.Database.Db.
		Where("email = ? AND is_deleted = ?", utils.NormalizeEmail(reqData.Email), false).
		First(&user)
	if result.Error != nil {
		// Same message as a password mismatch, no account oracle
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// bcrypt compare is constant-time on the hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Update last login time
	user.LastLogin = time.Now()
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	// Sanitize user data
	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// GoogleLogin authenticates with a provider-issued ID token. The
// account must already exist locally; federated identity never creates
// one. The provider's verified flag is authoritative: login is refused
// for unverified addresses, and the local flag is corrected whenever
// the two disagree.
func GoogleLogin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGoogleLogin").(*authValidator.GoogleLoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	info, err := utils.VerifyGoogleToken(reqData.IDToken)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	var user models.User
	result := database.Database.Db.
		Where("email = ? AND is_deleted = ?", utils.NormalizeEmail(info.Email), false).
		First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Account not registered! Please sign up first.", nil)
	}

	// Sync the local flag with what the provider reports
	if user.IsEmailVerified != info.Verified() {
		user.IsEmailVerified = info.Verified()
		if err := database.Database.Db.Save(&user).Error; err != nil {
			log.Printf("Error syncing verified flag for user %d: %v", user.ID, err)
		}
	}

	if !info.Verified() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "EMAIL_NOT_VERIFIED", nil)
	}

	user.LastLogin = time.Now()
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func SendOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSendOTP").(*authValidator.SendOTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	email := utils.NormalizeEmail(reqData.Email)

	var user models.User
	result := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email!", nil)
	}
	if user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already verified!", nil)
	}

	otp := utils.GenerateOTP()
	expiresAt := time.Now().Add(5 * time.Minute)

	otpRecord := models.OTP{
		UserID:      user.ID,
		Email:       email,
		Code:        otp,
		ExpiresAt:   expiresAt,
		Description: "Email Verification OTP",
	}

	if err := utils.SendOTPEmail(otp, email); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to email!", nil)
	}

	if err := database.Database.Db.Create(&otpRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Create OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

func VerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyOTP").(*authValidator.VerifyOTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	email := utils.NormalizeEmail(reqData.Email)

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var otpRecord models.OTP
	if err := database.Database.Db.
		Where("email = ? AND code = ? AND is_used = ? AND is_deleted = ?", email, reqData.Code, false, false).
		Order("created_at desc").
		First(&otpRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP or OTP expired!", nil)
	}

	if time.Now().After(otpRecord.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP or OTP expired!", nil)
	}

	otpRecord.IsUsed = true
	user.IsEmailVerified = true

	if err := database.Database.Db.Save(&otpRecord).Error; err != nil {
		log.Printf("Error marking OTP used: %v", err)
	}
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully.", nil)
}

func ChangeLoginPassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedChangePassword").(*authValidator.ChangePasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Middleware strips the hash, reload it for the compare
	var stored models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", user.ID, false).First(&stored).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wrong Password", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := database.Database.Db.Model(&stored).Update("password", string(hashedPassword)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully.", nil)
}
