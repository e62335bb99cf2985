package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tair/starwars-blog/pkg/database"
)

// Config holds the service configuration, read from the environment.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string

	HTTPPort           string
	GRPCPort           string
	HTTPRequestTimeout time.Duration
	ShutdownTimeout    time.Duration

	Database database.Config

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	FavoritesCacheTTL time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration
	TrustedProxies    []string

	KafkaBrokers []string

	JaegerEndpoint string

	JWTSecret         string
	DefaultUserID     uint
	HealthCheckPeriod time.Duration

	SeedData bool
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "starwars-blog"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		HTTPPort:           getEnv("HTTP_PORT", getEnv("PORT", "3000")),
		GRPCPort:           getEnv("GRPC_PORT", "9090"),
		HTTPRequestTimeout: getEnvDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		Database: database.Config{
			URL:        getEnv("DATABASE_URL", ""),
			Host:       getEnv("DB_HOST", ""),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "starwars"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "/tmp/test.db"),
		},

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		FavoritesCacheTTL: getEnvDuration("FAVORITES_CACHE_TTL", 5*time.Minute),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		TrustedProxies:    splitAndTrim(getEnv("TRUSTED_PROXIES", "")),

		KafkaBrokers: splitAndTrim(getEnv("KAFKA_BROKERS", "")),

		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),

		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		DefaultUserID:     uint(getEnvInt("AUTH_DEFAULT_USER_ID", 0)),
		HealthCheckPeriod: getEnvDuration("HEALTH_CHECK_PERIOD", 10*time.Second),

		SeedData: getEnvBool("SEED_DATA", false),
	}
}

// IsDevelopment reports whether console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i >= 0 {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := make([]string, 0, 4)
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
