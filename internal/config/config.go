package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vangoframework/pellines/internal/auth"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port        string
	BaseURL     string
	Environment string // development, staging, production

	// Database
	DatabaseURL string

	// Identity provider
	Provider            auth.ProviderConfig
	ClerkSecretKey      string
	ClerkPublishableKey string
	ClerkAPIURL         string
	SignInURL           string

	// Session
	SessionSecret string
	SessionMaxAge time.Duration

	// Weather
	OpenWeatherAPIKey string
	WeatherLocation   string
}

// Load reads configuration from environment variables.
// In development, it will also load from a .env file if present.
func Load() (*Config, error) {
	// Load .env file in development (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	databaseURL, err := requireEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}

	domain, err := requireEnv("CLERK_FRONTEND_API_URL")
	if err != nil {
		return nil, err
	}
	provider, err := auth.NewProviderConfig(domain)
	if err != nil {
		return nil, err
	}

	sessionSecret, err := requireEnv("SESSION_SECRET")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: databaseURL,

		Provider:            provider,
		ClerkSecretKey:      os.Getenv("CLERK_SECRET_KEY"),
		ClerkPublishableKey: os.Getenv("CLERK_PUBLISHABLE_KEY"),
		ClerkAPIURL:         getEnv("CLERK_API_URL", auth.DefaultClerkAPIURL),
		SignInURL:           getEnv("CLERK_SIGN_IN_URL", provider.Issuer()+"/sign-in"),

		SessionSecret: sessionSecret,
		SessionMaxAge: 7 * 24 * time.Hour, // 1 week

		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		WeatherLocation:   getEnv("WEATHER_LOCATION", "Pinto Los Pellines, Chile"),
	}

	// Validate session secret length (need 64 bytes for hash key + block key)
	if len(cfg.SessionSecret) < 64 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 64 characters, got %d", len(cfg.SessionSecret))
	}

	return cfg, nil
}

// LoadDatabaseURL reads only the database settings, for commands that do not serve HTTP.
func LoadDatabaseURL() (string, error) {
	_ = godotenv.Load()
	return requireEnv("DATABASE_URL")
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv returns the value of an environment variable or a fallback default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// requireEnv returns the value of an environment variable or an error if not set.
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}
