package middleware

import (
	"elearn/config"
	"elearn/database"
	"elearn/models"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	database.Database = database.DbInstance{Db: db}
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	setupTest(t)

	token, err := GenerateJWT(42, "Jane", models.RoleStudent, "jane@example.com")
	require.NoError(t, err)

	userID, role, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, models.RoleStudent, role)
}

func TestVerifyJWTExpired(t *testing.T) {
	setupTest(t)

	claims := jwt.MapClaims{
		"userId": float64(42),
		"role":   models.RoleStudent,
		"iat":    time.Now().Add(-8 * 24 * time.Hour).Unix(),
		"exp":    time.Now().Add(-24 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)

	_, _, err = VerifyJWT(expired)
	assert.Error(t, err)
}

func TestVerifyJWTTampered(t *testing.T) {
	setupTest(t)

	token, err := GenerateJWT(42, "Jane", models.RoleStudent, "jane@example.com")
	require.NoError(t, err)

	_, _, err = VerifyJWT(token + "x")
	assert.Error(t, err)

	claims := jwt.MapClaims{
		"userId": float64(42),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, _, err = VerifyJWT(wrongKey)
	assert.Error(t, err)
}

func TestJWTMiddlewareRejectsBeforeHandler(t *testing.T) {
	setupTest(t)

	handlerRan := false
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		handlerRan = true
		return c.SendString("ok")
	})

	// No header
	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Garbage token
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	assert.False(t, handlerRan)
}

func TestJWTMiddlewareDeletedUserLooksLikeInvalidToken(t *testing.T) {
	setupTest(t)

	user := models.User{Name: "Ghost", Email: "ghost@example.com", Password: "x"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	require.NoError(t, database.Database.Db.Model(&user).Update("is_deleted", true).Error)

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	setupTest(t)

	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin}
	student := models.User{Name: "Student", Email: "student@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, database.Database.Db.Create(&admin).Error)
	require.NoError(t, database.Database.Db.Create(&student).Error)

	app := fiber.New()
	app.Get("/admin-only", JWTMiddleware, RequireRoles(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	adminToken, err := GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	studentToken, err := GenerateJWT(student.ID, student.Name, student.Role, student.Email)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestOptionalJWTMiddlewareAnonymous(t *testing.T) {
	setupTest(t)

	app := fiber.New()
	app.Get("/open", OptionalJWTMiddleware, func(c *fiber.Ctx) error {
		if CurrentUser(c) != nil {
			return c.SendString("identified")
		}
		return c.SendString("anonymous")
	})

	req := httptest.NewRequest("GET", "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Bad token degrades to anonymous, never rejects
	req = httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer junk")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
