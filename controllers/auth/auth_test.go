package authController

import (
	"bytes"
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	authValidator "elearn/validators/auth"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:         "test-secret",
		SaltRound:      4,
		GoogleClientID: "client-123",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.OTP{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/signup", authValidator.Signup(), Signup)
	app.Post("/auth/login", authValidator.Login(), Login)
	app.Post("/auth/login/google", authValidator.GoogleLogin(), GoogleLogin)
	app.Post("/auth/send/otp", authValidator.SendOTP(), SendOTP)
	app.Post("/auth/verify/otp", authValidator.VerifyOTP(), VerifyOTP)

	return app
}

func postJSON(t *testing.T, app *fiber.App, target string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

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

func TestSignupAndLoginRoundtrip(t *testing.T) {
	app := setupAuthTest(t)

	code, _ := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Jane Doe",
		"email":    "Jane.Doe@Example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, fiber.StatusCreated, code)

	// The identity is case-normalized on the way in
	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "jane.doe@example.com").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)

	// Duplicate registration conflicts
	code, _ = postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Jane Doe",
		"email":    "jane.doe@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, fiber.StatusConflict, code)

	// Login with a differently-cased email resolves the same record
	code, payload := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "JANE.DOE@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, fiber.StatusOK, code)

	token := payload["data"].(map[string]interface{})["token"].(string)
	subjectID, role, err := middleware.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subjectID)
	assert.Equal(t, user.Role, role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), 4)
	require.NoError(t, err)
	user := models.User{Name: "Jane", Email: "jane@example.com", Password: string(hash)}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	// Wrong password and unknown account produce the same answer
	code, payload := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, code)
	wrongPassMsg := payload["message"]

	code, payload = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, wrongPassMsg, payload["message"])
}

// tokeninfoStub mimics the provider's tokeninfo endpoint.
func tokeninfoStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var info map[string]string
		switch r.URL.Query().Get("id_token") {
		case "good-token":
			info = map[string]string{
				"sub": "google-sub-1", "email": "jane@example.com",
				"email_verified": "true", "aud": "client-123",
			}
		case "unverified-token":
			info = map[string]string{
				"sub": "google-sub-1", "email": "jane@example.com",
				"email_verified": "false", "aud": "client-123",
			}
		case "wrong-audience":
			info = map[string]string{
				"sub": "google-sub-2", "email": "jane@example.com",
				"email_verified": "true", "aud": "someone-else",
			}
		default:
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(info)
	}))
}

func TestGoogleLogin(t *testing.T) {
	app := setupAuthTest(t)
	stub := tokeninfoStub(t)
	defer stub.Close()
	config.AppConfig.GoogleTokenInfo = stub.URL

	// Federated identity never creates an account
	code, _ := postJSON(t, app, "/auth/login/google", map[string]string{"id_token": "good-token"})
	assert.Equal(t, fiber.StatusUnauthorized, code)

	user := models.User{Name: "Jane", Email: "jane@example.com", Password: "x"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	// Provider rejects the token
	code, _ = postJSON(t, app, "/auth/login/google", map[string]string{"id_token": "bogus"})
	assert.Equal(t, fiber.StatusUnauthorized, code)

	// Audience mismatch is a provider-level failure
	code, _ = postJSON(t, app, "/auth/login/google", map[string]string{"id_token": "wrong-audience"})
	assert.Equal(t, fiber.StatusUnauthorized, code)

	// Verified federated login succeeds and syncs the local flag
	code, payload := postJSON(t, app, "/auth/login/google", map[string]string{"id_token": "good-token"})
	require.Equal(t, fiber.StatusOK, code)

	token := payload["data"].(map[string]interface{})["token"].(string)
	subjectID, _, err := middleware.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subjectID)

	var stored models.User
	require.NoError(t, database.Database.Db.First(&stored, user.ID).Error)
	assert.True(t, stored.IsEmailVerified)

	// An unverified provider report is a hard gate and corrects the flag
	code, payload = postJSON(t, app, "/auth/login/google", map[string]string{"id_token": "unverified-token"})
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", payload["message"])

	require.NoError(t, database.Database.Db.First(&stored, user.ID).Error)
	assert.False(t, stored.IsEmailVerified)
}

func TestOTPVerificationFlow(t *testing.T) {
	app := setupAuthTest(t)

	user := models.User{Name: "Jane", Email: "jane@example.com", Password: "hashed", Role: models.RoleStudent}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	// Request a code. No mail key is configured, so the send is a
	// logged no-op and the record still lands in the store.
	code, _ := postJSON(t, app, "/auth/send/otp", map[string]string{"email": "Jane@Example.com"})
	require.Equal(t, fiber.StatusOK, code)

	var otp models.OTP
	require.NoError(t, database.Database.Db.Where("email = ?", "jane@example.com").First(&otp).Error)
	require.Len(t, otp.Code, 6)

	// A wrong code does not verify
	wrongCode := "000000"
	if otp.Code == wrongCode {
		wrongCode = "000001"
	}
	code, _ = postJSON(t, app, "/auth/verify/otp", map[string]string{"email": "jane@example.com", "code": wrongCode})
	assert.Equal(t, fiber.StatusUnauthorized, code)

	var stored models.User
	require.NoError(t, database.Database.Db.First(&stored, user.ID).Error)
	assert.False(t, stored.IsEmailVerified)

	// The right code flips the flag
	code, _ = postJSON(t, app, "/auth/verify/otp", map[string]string{"email": "jane@example.com", "code": otp.Code})
	require.Equal(t, fiber.StatusOK, code)

	require.NoError(t, database.Database.Db.First(&stored, user.ID).Error)
	assert.True(t, stored.IsEmailVerified)

	// A used code cannot be replayed
	code, _ = postJSON(t, app, "/auth/verify/otp", map[string]string{"email": "jane@example.com", "code": otp.Code})
	assert.Equal(t, fiber.StatusUnauthorized, code)

	// Requesting another code for a verified address conflicts
	code, _ = postJSON(t, app, "/auth/send/otp", map[string]string{"email": "jane@example.com"})
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestVerifyOTPExpired(t *testing.T) {
	app := setupAuthTest(t)

	user := models.User{Name: "Jane", Email: "jane@example.com", Password: "hashed", Role: models.RoleStudent}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	expired := models.OTP{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, database.Database.Db.Create(&expired).Error)

	code, payload := postJSON(t, app, "/auth/verify/otp", map[string]string{"email": "jane@example.com", "code": "123456"})
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "Invalid OTP or OTP expired!", payload["message"])

	var stored models.User
	require.NoError(t, database.Database.Db.First(&stored, user.ID).Error)
	assert.False(t, stored.IsEmailVerified)
}
