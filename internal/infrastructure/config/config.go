// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI           string
	MongoDB            string
	MongoUser          string
	MongoPassword      string
	LaunchesCollection string
	WebhooksCollection string

	// Provider
	SpaceXBaseURL string
	HTTPTimeout   time.Duration

	// Sync engine
	SyncInterval     time.Duration
	CacheTTL         time.Duration
	FetchConcurrency int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:           getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "spacex_data"),
		MongoUser:          getEnv("MONGO_USER", ""),
		MongoPassword:      getEnv("MONGO_PASSWORD", ""),
		LaunchesCollection: getEnv("MONGODB_LAUNCHES_COLLECTION", "launches"),
		WebhooksCollection: getEnv("MONGODB_WEBHOOKS_COLLECTION", "webhooks"),

		SpaceXBaseURL: getEnv("SPACEX_API_URL", "https://api.spacexdata.com/v4"),
		HTTPTimeout:   time.Duration(getEnvAsInt("HTTP_TIMEOUT", 10)) * time.Second,

		SyncInterval:     time.Duration(getEnvAsInt("DATA_SYNC_INTERVAL_MINUTES", 60)) * time.Minute,
		CacheTTL:         time.Duration(getEnvAsInt("CACHE_EXPIRY_MINUTES", 5)) * time.Minute,
		FetchConcurrency: getEnvAsInt("FETCH_CONCURRENCY", 8),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
