package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBDriver   string // postgres | mysql | sqlite
	DBName     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBPort     string

	AdviceSweepSpec string // cron spec for the periodic advice reconciliation pass
	WebhookURL      string // optional change-notification endpoint
	WebhookTimeout  int    // seconds
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
		Port: getEnv("PORT", "3000"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBName:     getEnv("DB_NAME", "quill"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBPort:     getEnv("DB_PORT", "5432"),

		AdviceSweepSpec: getEnv("ADVICE_SWEEP_SPEC", "0 * * * *"),
		WebhookURL:      getEnv("WEBHOOK_URL", ""),
		WebhookTimeout:  getEnvInt("WEBHOOK_TIMEOUT", 10),
	}

	if AppConfig.WebhookURL == "" {
		log.Println("WEBHOOK_URL not set. Change notifications are disabled.")
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
