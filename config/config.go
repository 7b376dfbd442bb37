package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	GoogleClientID   string
	GoogleTokenInfo  string // tokeninfo endpoint of the identity provider
	SendGridKey      string
	EmailSender      string
	AdminDigestEmail string // receives the daily pending-enrollment digest

	UploadDir string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		GoogleClientID:   getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleTokenInfo:  getEnv("GOOGLE_TOKENINFO_URL", "https://oauth2.googleapis.com/tokeninfo"),
		SendGridKey:      getEnv("SENDGRID_API_KEY", ""),
		EmailSender:      getEnv("EMAIL_SENDER", "no-reply@elearn.local"),
		AdminDigestEmail: getEnv("ADMIN_DIGEST_EMAIL", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google login will reject all tokens.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
