package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Environment
	Environment string
	LogLevel    string
	LogFormat   string

	// Server configuration
	HTTPPort        string
	MetricsPort     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Upstream PMS configuration
	PMSBaseURL   string
	PMSAPIKey    string
	PMSAPISecret string
	PMSTimeout   time.Duration

	// Cache configuration
	ResponseCacheTTL   time.Duration
	NodeCacheTTL       time.Duration
	CacheRedisAddr     string
	CacheRedisPassword string
	CacheRedisDB       int

	// Catalog defaults
	DefaultPageSize int
	FeaturedLimit   int
	SimilarLimit    int

	// Application metadata
	AppName    string
	AppVersion string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		MetricsPort:        getEnv("METRICS_PORT", "9090"),
		ReadTimeout:        getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:       getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:        getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		PMSBaseURL:         getEnv("PMS_BASE_URL", "https://pms.example.com/api"),
		PMSAPIKey:          getEnv("PMS_API_KEY", ""),
		PMSAPISecret:       getEnv("PMS_API_SECRET", ""),
		PMSTimeout:         getEnvDuration("PMS_TIMEOUT", 20*time.Second),
		ResponseCacheTTL:   getEnvDuration("RESPONSE_CACHE_TTL", 5*time.Minute),
		NodeCacheTTL:       getEnvDuration("NODE_CACHE_TTL", 5*time.Minute),
		CacheRedisAddr:     getEnv("CACHE_REDIS_ADDR", ""),
		CacheRedisPassword: getEnv("CACHE_REDIS_PASSWORD", ""),
		CacheRedisDB:       getEnvInt("CACHE_REDIS_DB", 0),
		DefaultPageSize:    getEnvInt("DEFAULT_PAGE_SIZE", 20),
		FeaturedLimit:      getEnvInt("FEATURED_LIMIT", 12),
		SimilarLimit:       getEnvInt("SIMILAR_LIMIT", 10),
		AppName:            "catalog-api",
		AppVersion:         getEnv("APP_VERSION", "dev"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.PMSAPIKey == "" || c.PMSAPISecret == "" {
			return fmt.Errorf("PMS_API_KEY and PMS_API_SECRET are required in production")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug/info/warn/error)", c.LogLevel)
	}

	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.HTTPPort
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return defaultVal
		}
		return i
	}
	return defaultVal
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return defaultVal
		}
		return d
	}
	return defaultVal
}
