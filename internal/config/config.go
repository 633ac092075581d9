package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// FX policy
	FXPivotCurrency    string
	FXFallbackOneToOne bool
	FXProviderSource   string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		FXPivotCurrency:  getEnv("FX_PIVOT_CURRENCY", "AED"),
		FXProviderSource: getEnv("FX_PROVIDER_SOURCE", "provider"),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	// Falling back to a 1:1 rate on missing FX data is household policy, not
	// a technical necessity, so it is configurable.
	fallbackStr := getEnv("FX_FALLBACK_ONE_TO_ONE", "true")
	fallback, err := strconv.ParseBool(fallbackStr)
	if err != nil {
		log.Printf("Warning: invalid FX_FALLBACK_ONE_TO_ONE value '%s', falling back to true\n", fallbackStr)
		fallback = true
	}
	config.FXFallbackOneToOne = fallback

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
