package database

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/starwars-blog/pkg/logger"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped gorm duplicated key", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "lib/pq unique violation", err: &pq.Error{Code: "23505"}, want: true},
		{name: "lib/pq foreign key violation", err: &pq.Error{Code: "23503"}, want: false},
		{name: "pgx unique violation", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "pgx other error", err: &pgconn.PgError{Code: "42P01"}, want: false},
		{name: "sqlite message", err: errors.New("constraint failed: UNIQUE constraint failed: favorites.user_id (2067)"), want: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsUniqueViolationFromSQLite(t *testing.T) {
	type row struct {
		ID   uint   `gorm:"primaryKey"`
		Name string `gorm:"uniqueIndex"`
	}

	db, err := NewSQLiteConnection(filepath.Join(t.TempDir(), "unique.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))

	require.NoError(t, db.Create(&row{Name: "tatooine"}).Error)
	err = db.Create(&row{Name: "tatooine"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestConfigDriverAndDSN(t *testing.T) {
	t.Run("sqlite when nothing is configured", func(t *testing.T) {
		cfg := Config{SQLitePath: "/tmp/x.db"}
		assert.Equal(t, DriverSQLite, cfg.Driver())
	})

	t.Run("postgres from url", func(t *testing.T) {
		cfg := Config{URL: "postgres://u:p@db:5432/blog"}
		assert.Equal(t, DriverPostgres, cfg.Driver())
		assert.Equal(t, "postgresql://u:p@db:5432/blog", cfg.DSN())
	})

	t.Run("postgres from discrete fields", func(t *testing.T) {
		cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "blog", SSLMode: "disable"}
		assert.Equal(t, DriverPostgres, cfg.Driver())
		assert.Equal(t, "host=db port=5432 user=u password=p dbname=blog sslmode=disable", cfg.DSN())
	})
}

func TestGormLogsThroughZerolog(t *testing.T) {
	type row struct {
		ID   uint `gorm:"primaryKey"`
		Name string
	}

	var buf bytes.Buffer
	previous := logger.Logger
	logger.Logger = zerolog.New(&buf)
	t.Cleanup(func() { logger.Logger = previous })

	db, err := NewSQLiteConnection(filepath.Join(t.TempDir(), "logging.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	buf.Reset()

	err = db.First(&row{}, 42).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	var rows []row
	err = db.Raw("SELECT * FROM missing_table").Scan(&rows).Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"component":"gorm"`)
	assert.Contains(t, buf.String(), "missing_table")
}
