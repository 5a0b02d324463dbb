package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	MPSAPIURL      string
	CameraURL      string
	Port           string
	GoEnv          string
	SessionDBPath  string
	DashboardPoll  time.Duration
	OrdersPoll     time.Duration
	CameraPoll     time.Duration
	PiecesPageSize int
	AllowedOrigins []string
	LogLevel       string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In deployments the environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		MPSAPIURL:      getEnv("MPS_API_URL", "http://192.168.0.77:8000/"),
		CameraURL:      getEnv("CAMERA_URL", "http://192.168.0.77:4545/"),
		Port:           getEnv("PORT", "8080"),
		GoEnv:          getEnv("GO_ENV", "development"),
		SessionDBPath:  getEnv("SESSION_DB_PATH", "session.db"),
		DashboardPoll:  getDurationEnv("DASHBOARD_POLL_INTERVAL", 2*time.Second),
		OrdersPoll:     getDurationEnv("ORDERS_POLL_INTERVAL", 3*time.Second),
		CameraPoll:     getDurationEnv("CAMERA_POLL_INTERVAL", 5*time.Second),
		PiecesPageSize: getIntEnv("PIECES_PAGE_SIZE", 8),
		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "http://localhost:5173")},
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.MPSAPIURL == "" {
		return fmt.Errorf("MPS_API_URL is required")
	}
	if c.CameraURL == "" {
		return fmt.Errorf("CAMERA_URL is required")
	}
	if c.PiecesPageSize < 1 {
		return fmt.Errorf("PIECES_PAGE_SIZE must be at least 1")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// getIntEnv retrieves an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
