package middleware

import (
	"elearn/config"
	"elearn/database"
	"elearn/models"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// TokenValidity is how long an issued token remains valid. There is no
// server-side revocation; logout is a client-side token discard.
const TokenValidity = 7 * 24 * time.Hour

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(TokenValidity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// VerifyJWT parses and validates a token string, returning the subject
// user ID and role. Pure cryptographic check, no store access.
func VerifyJWT(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return 0, "", fmt.Errorf("invalid token payload")
	}

	// JWT numeric claims decode as float64
	userID := uint(claims["userId"].(float64))
	role, _ := claims["role"].(string)

	return userID, role, nil
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return authHeader[len("Bearer "):], true
}

// resolveUser loads the token's subject from the store with the secret
// cleared. A deleted or missing account is reported as an invalid
// token rather than a distinct error, to avoid leaking existence.
func resolveUser(userID uint) (*models.User, error) {
	var user models.User
	if err := database.Database.Db.
		Omit("password").
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error; err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Missing or invalid Authorization header",
		})
	}

	userID, _, err := VerifyJWT(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid or expired token",
		})
	}

	user, err := resolveUser(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid or expired token",
		})
	}

	c.Locals("userId", user.ID)
	c.Locals("user", user)

	return c.Next()
}

// OptionalJWTMiddleware resolves the caller's identity when a valid
// bearer token is present but never rejects: anonymous and bad-token
// requests proceed with no user in context. Used on public routes
// whose responses are shaped by the caller's entitlements.
func OptionalJWTMiddleware(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return c.Next()
	}

	userID, _, err := VerifyJWT(tokenString)
	if err != nil {
		return c.Next()
	}

	if user, err := resolveUser(userID); err == nil {
		c.Locals("userId", user.ID)
		c.Locals("user", user)
	}

	return c.Next()
}

// CurrentUser returns the user attached by JWTMiddleware or
// OptionalJWTMiddleware, or nil for an anonymous request.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
