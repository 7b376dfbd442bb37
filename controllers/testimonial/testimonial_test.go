package testimonialControllers

import (
	"bytes"
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	testimonialValidators "elearn/validators/testimonial"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestimonialTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Testimonial{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/testimonial/list", ListTestimonials)
	app.Post("/testimonial/",
		middleware.JWTMiddleware, middleware.RequireVerifiedEmail,
		testimonialValidators.Create(), CreateTestimonial)
	app.Patch("/testimonial/:id/moderate",
		middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin),
		testimonialValidators.TestimonialID(), testimonialValidators.Moderate(),
		AdminModerateTestimonial)

	return app
}

func createTestimonialUser(t *testing.T, name, email string, verified bool) (models.User, string) {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "hashed", Role: models.RoleStudent, IsEmailVerified: verified}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func doTestimonialRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}

	return resp.StatusCode, payload
}

func TestCreateTestimonialRequiresVerifiedEmail(t *testing.T) {
	app := setupTestimonialTest(t)

	_, unverifiedToken := createTestimonialUser(t, "Unverified", "unverified@example.com", false)
	_, verifiedToken := createTestimonialUser(t, "Verified", "verified@example.com", true)

	body := map[string]interface{}{"rating": 5, "comment": "Great platform, learned a lot."}

	// Unverified callers are rejected before the handler
	code, payload := doTestimonialRequest(t, app, "POST", "/testimonial/", unverifiedToken, body)
	require.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", payload["message"])

	var count int64
	database.Database.Db.Model(&models.Testimonial{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Verified callers get through
	code, _ = doTestimonialRequest(t, app, "POST", "/testimonial/", verifiedToken, body)
	assert.Equal(t, fiber.StatusCreated, code)

	// Anonymous callers never reach the gate
	code, _ = doTestimonialRequest(t, app, "POST", "/testimonial/", "", body)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestListTestimonialsHidesUserDetails(t *testing.T) {
	app := setupTestimonialTest(t)

	user, _ := createTestimonialUser(t, "Jane", "jane-secret@example.com", true)
	testimonial := models.Testimonial{
		UserID:  user.ID,
		Rating:  5,
		Comment: "Well worth the money.",
		Status:  models.TestimonialApproved,
	}
	require.NoError(t, database.Database.Db.Create(&testimonial).Error)

	code, payload := doTestimonialRequest(t, app, "GET", "/testimonial/list", "", nil)
	require.Equal(t, fiber.StatusOK, code)

	items := payload["data"].([]interface{})
	require.Len(t, items, 1)
	author := items[0].(map[string]interface{})["user"].(map[string]interface{})

	// Public list exposes the author's name and nothing else
	assert.Equal(t, "Jane", author["Name"])
	assert.Empty(t, author["Email"])
	assert.Empty(t, author["Role"])
	assert.Empty(t, author["approved_courses"])
	assert.NotContains(t, fmt.Sprint(payload), "jane-secret@example.com")
}

func TestListTestimonialsOnlyApproved(t *testing.T) {
	app := setupTestimonialTest(t)

	user, _ := createTestimonialUser(t, "Jane", "jane@example.com", true)
	for _, status := range []models.TestimonialStatus{models.TestimonialPending, models.TestimonialApproved, models.TestimonialRejected} {
		require.NoError(t, database.Database.Db.Create(&models.Testimonial{
			UserID: user.ID, Rating: 4, Comment: "Status " + string(status) + " entry.", Status: status,
		}).Error)
	}

	code, payload := doTestimonialRequest(t, app, "GET", "/testimonial/list", "", nil)
	require.Equal(t, fiber.StatusOK, code)

	items := payload["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, string(models.TestimonialApproved), items[0].(map[string]interface{})["status"])
}
