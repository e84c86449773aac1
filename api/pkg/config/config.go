package config

import (
	"fmt"

	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Load loads configuration from environment variables with fallback to defaults
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
		fmt.Println("Continuing with environment variables...")
	}

	return FromEnv()
}

// FromEnv builds and validates the configuration from the current environment
func FromEnv() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("PORT", getEnvInt("SERVER_PORT", 3001)),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 120),
			GracefulStop: getEnvInt("SERVER_GRACEFUL_STOP", 30),
			Mode:         getEnv("GIN_MODE", "debug"),
			CORSOrigins:  getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Backend: BackendConfig{
			UseHosted: getEnvBool("USE_HOSTED_BACKEND", false),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Database:        getEnv("DB_NAME", "japan_trip_planner.db"),
			Username:        getEnv("DB_USERNAME", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
			SeedCatalog:     getEnvBool("DB_SEED_CATALOG", true),
		},
		Hosted: HostedConfig{
			URL:     strings.TrimRight(getEnv("HOSTED_URL", ""), "/"),
			APIKey:  getEnv("HOSTED_API_KEY", ""),
			Timeout: getEnvInt("HOSTED_TIMEOUT", 10),
		},
		Security: SecurityConfig{
			SessionSecret:       getEnv("SESSION_SECRET", "change-me-in-production"),
			SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "trip_planner_session"),
			SessionCookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
			SessionMaxAge:       getEnvInt("SESSION_MAX_AGE", 604800),
			DemoUserID:          getEnv("DEMO_USER_ID", "demo-user"),
			RateLimitEnabled:    getEnvBool("RATE_LIMIT_ENABLED", true),
			RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
			RateLimitBurstSize:  getEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/trip-planner.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 28),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Cache: CacheConfig{
			RedisURL:     getEnv("REDIS_URL", ""),
			TTL:          getEnvInt("CACHE_TTL", 600),
			WarmSchedule: getEnv("CACHE_WARM_SCHEDULE", "@every 30m"),
		},
		Planner: PlannerConfig{
			HistoryDepth:      getEnvInt("PLANNER_HISTORY_DEPTH", 10),
			GenerationDelayMS: getEnvInt("PLANNER_GENERATION_DELAY_MS", 0),
			WorkspaceTTL:      getEnvInt("PLANNER_WORKSPACE_TTL", 120),
			SweepSchedule:     getEnv("PLANNER_SWEEP_SCHEDULE", "@every 5m"),
		},
	}

	// Validate required fields
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// validateConfig validates required configuration fields
func validateConfig(config *Config) error {
	if config.Backend.UseHosted {
		if config.Hosted.URL == "" {
			return fmt.Errorf("HOSTED_URL is required when USE_HOSTED_BACKEND is set")
		}
		if config.Hosted.APIKey == "" {
			return fmt.Errorf("HOSTED_API_KEY is required when USE_HOSTED_BACKEND is set")
		}
	} else {
		switch config.Database.Driver {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("unsupported DB_DRIVER %q", config.Database.Driver)
		}
	}

	if config.Security.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	if config.Security.DemoUserID == "" {
		return fmt.Errorf("DEMO_USER_ID must not be empty")
	}

	if config.Planner.HistoryDepth < 2 {
		return fmt.Errorf("PLANNER_HISTORY_DEPTH must be at least 2: Given: %v", config.Planner.HistoryDepth)
	}

	if config.Planner.GenerationDelayMS < 0 {
		return fmt.Errorf("PLANNER_GENERATION_DELAY_MS must not be negative")
	}

	switch config.Logging.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("unsupported LOG_OUTPUT %q", config.Logging.Output)
	}

	if config.Cache.Enabled() && config.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when REDIS_URL is set")
	}

	return nil
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	switch c.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
	case "sqlite":
		return c.Database
	default:
		return ""
	}
}

// GetServerAddr returns the server address string
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions for environment variable parsing
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
