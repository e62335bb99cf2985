package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tair/starwars-blog/pkg/database"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "PORT", "DATABASE_URL", "DB_HOST", "REDIS_ADDR",
		"KAFKA_BROKERS", "AUTH_DEFAULT_USER_ID", "SEED_DATA", "FAVORITES_CACHE_TTL",
		"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver())
	assert.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
	assert.Empty(t, cfg.RedisAddr)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Zero(t, cfg.DefaultUserID)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, 5*time.Minute, cfg.FavoritesCacheTTL)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Nil(t, cfg.TrustedProxies)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8000")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/blog")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("AUTH_DEFAULT_USER_ID", "1")
	t.Setenv("SEED_DATA", "true")
	t.Setenv("FAVORITES_CACHE_TTL", "30s")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "10s")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.1")

	cfg := Load()

	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver())
	assert.Equal(t, "postgresql://u:p@db/blog", cfg.Database.DSN())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, uint(1), cfg.DefaultUserID)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 30*time.Second, cfg.FavoritesCacheTTL)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, 10*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.TrustedProxies)
	assert.False(t, cfg.IsDevelopment())
}

func TestTypedHelpersFallBack(t *testing.T) {
	tests := []struct {
		name  string
		value string
		check func(t *testing.T)
	}{
		{
			name:  "invalid int",
			value: "many",
			check: func(t *testing.T) { assert.Equal(t, 4, getEnvInt("CFG_TEST_VALUE", 4)) },
		},
		{
			name:  "negative int",
			value: "-3",
			check: func(t *testing.T) { assert.Equal(t, 4, getEnvInt("CFG_TEST_VALUE", 4)) },
		},
		{
			name:  "invalid bool",
			value: "maybe",
			check: func(t *testing.T) { assert.True(t, getEnvBool("CFG_TEST_VALUE", true)) },
		},
		{
			name:  "invalid duration",
			value: "soon",
			check: func(t *testing.T) { assert.Equal(t, time.Second, getEnvDuration("CFG_TEST_VALUE", time.Second)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CFG_TEST_VALUE", tt.value)
			tt.check(t)
		})
	}
}
