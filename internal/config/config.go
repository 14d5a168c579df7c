package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Store     StoreConfig
	App       AppConfig
	RateLimit RateLimitConfig
}

type StoreConfig struct {
	URI            string
	Database       string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// RateLimitConfig holds per-IP request throttling settings
type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

func Load() (*Config, error) {
	// .env is optional; deployments inject the environment directly
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "3003"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:8080"),
	}

	// Store configuration
	maxPool, err := strconv.ParseUint(getEnv("MONGODB_MAX_POOL_SIZE", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MONGODB_MAX_POOL_SIZE: %w", err)
	}

	connectTimeout, err := time.ParseDuration(getEnv("MONGODB_CONNECT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGODB_CONNECT_TIMEOUT: %w", err)
	}

	socketTimeout, err := time.ParseDuration(getEnv("MONGODB_SOCKET_TIMEOUT", "45s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGODB_SOCKET_TIMEOUT: %w", err)
	}

	config.Store = StoreConfig{
		URI:            getEnv("MONGODB_URI", ""),
		Database:       getEnv("MONGODB_DATABASE", "jtx-people"),
		MaxPoolSize:    maxPool,
		ConnectTimeout: connectTimeout,
		SocketTimeout:  socketTimeout,
	}

	// Rate limit configuration
	rateWindowMin, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	rateMax, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX: %w", err)
	}

	config.RateLimit = RateLimitConfig{
		Window: time.Duration(rateWindowMin) * time.Minute,
		Max:    rateMax,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Store.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.Store.MaxPoolSize == 0 {
		return fmt.Errorf("MONGODB_MAX_POOL_SIZE must be greater than zero")
	}
	if c.Store.ConnectTimeout <= 0 {
		return fmt.Errorf("MONGODB_CONNECT_TIMEOUT must be greater than zero")
	}
	if c.Store.SocketTimeout <= 0 {
		return fmt.Errorf("MONGODB_SOCKET_TIMEOUT must be greater than zero")
	}
	if c.RateLimit.Max <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be greater than zero")
	}
	return nil
}

// AllowedOrigins returns the CORS origin allow-list for local development
// plus the configured frontend.
func (c *Config) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:8080",
		"http://127.0.0.1:8080",
	}
	if c.App.FrontendURL != "" {
		origins = append(origins, c.App.FrontendURL)
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
