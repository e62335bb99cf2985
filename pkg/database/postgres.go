package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/starwars-blog/pkg/logger"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database configuration
type Config struct {
	// URL is a full connection string (DATABASE_URL). It wins over the
	// discrete Host/Port/... fields.
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// SQLitePath is used when neither URL nor Host is set.
	SQLitePath string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Driver reports which backend the configuration selects.
func (c Config) Driver() string {
	if c.URL != "" || c.Host != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// DSN builds the lib/pq connection string.
func (c Config) DSN() string {
	if c.URL != "" {
		return NormalizeURL(c.URL)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// NormalizeURL rewrites the legacy postgres:// scheme some hosting
// providers still hand out.
func NormalizeURL(url string) string {
	if strings.HasPrefix(url, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}
	return url
}

// NewPostgresConnection creates a new PostgreSQL connection
func NewPostgresConnection(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().
		Str("driver", DriverPostgres).
		Int("max_open_conns", maxOpen).
		Msg("Successfully connected to PostgreSQL database")
	return db, nil
}

// NewGormConnection opens a GORM handle for the configured driver.
// PostgreSQL goes through the lib/pq pool built by NewPostgresConnection.
func NewGormConnection(cfg Config) (*gorm.DB, error) {
	if cfg.Driver() == DriverSQLite {
		return NewSQLiteConnection(cfg.SQLitePath)
	}

	sqlDB, err := NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return db, nil
}

// NewSQLiteConnection opens (or creates) a SQLite database file.
// SQLite allows a single writer, so the pool is pinned to one connection.
func NewSQLiteConnection(path string) (*gorm.DB, error) {
	if path == "" {
		path = "/tmp/test.db"
	}
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logger.Logger.Info().
		Str("driver", DriverSQLite).
		Str("path", path).
		Msg("Successfully opened SQLite database")
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(gormWriter{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// gormWriter sends gorm's slow query and error lines to zerolog.
// Lookups that find nothing are expected and never reach it.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	logger.Logger.Warn().
		Str("component", "gorm").
		Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
