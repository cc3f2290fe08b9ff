package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// PlaceholderWebhookSecret disables webhook signature verification when left
// configured. Only for environments without a provisioned secret.
const PlaceholderWebhookSecret = "your-webhook-secret"

type Config struct {
	Port           string
	SurgeAccountID string
	SurgePhone     string
	SurgeAPIKey    string
	SurgeBaseURL   string
	WebhookSecret  string
	SigningKeyID   string
	SigningKey     string // JWK-shaped EC private key material
	AdminPassword  string
	AdminUserID    string
	AllowedOrigin  string // extra origin added to the fixed CORS allowlist
	TursoURL       string
	TursoToken     string
	DatabaseDSN    string // postgres DSN; empty means local sqlite
	DBPath         string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		SurgeAccountID: getEnv("SURGE_ACCOUNT_ID", ""),
		SurgePhone:     getEnv("SURGE_PHONE_NUMBER", ""),
		SurgeAPIKey:    getEnv("SURGE_API_KEY", ""),
		SurgeBaseURL:   getEnv("SURGE_BASE_URL", "https://api.surge.app"),
		WebhookSecret:  getEnv("SURGE_WEBHOOK_SECRET", PlaceholderWebhookSecret),
		SigningKeyID:   getEnv("SURGE_SIGNING_KEY_ID", ""),
		SigningKey:     getEnv("SURGE_SIGNING_KEY", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AdminUserID:    getEnv("ADMIN_USER_ID", ""),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", ""),
		TursoURL:       getEnv("TURSO_URL", ""),
		TursoToken:     getEnv("TURSO_TOKEN", ""),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		DBPath:         getEnv("DB_PATH", "./sakima.db"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
