package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	JWTSecret         string
	JWTAccessExpiry   time.Duration
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	SMTPSkipTLSVerify bool
	SenderAddress     string
	SenderName        string
	DefaultMaxRetries int
	DefaultCacheTTL   time.Duration
	GoogleProjectID   string
	PubSubTopic       string
	GoogleCredentials string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	cacheTTL := 10 * time.Minute
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			cacheTTL = parsed
		}
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", "host=localhost user=mailflow password=mailflow dbname=mailflow port=5432 sslmode=disable"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:   accessExpiry,
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SMTPSkipTLSVerify: getEnv("SMTP_SKIP_TLS_VERIFY", "") == "true",
		SenderAddress:     getEnv("SENDER_ADDRESS", "noreply@mailflow.local"),
		SenderName:        getEnv("SENDER_NAME", "Mailflow"),
		DefaultMaxRetries: getEnvInt("DEFAULT_MAX_RETRIES", 3),
		DefaultCacheTTL:   cacheTTL,
		GoogleProjectID:   getEnv("GOOGLE_PROJECT_ID", ""),
		PubSubTopic:       getEnv("PUBSUB_TOPIC", "mailflow-events"),
		GoogleCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
