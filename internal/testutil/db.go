// Package testutil builds throwaway SQLite databases for package tests.
package testutil

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogdomain "github.com/tair/starwars-blog/internal/catalog/domain"
	favoritesdomain "github.com/tair/starwars-blog/internal/favorites/domain"
	userdomain "github.com/tair/starwars-blog/internal/user/domain"
	"github.com/tair/starwars-blog/pkg/database"
)

// NewDB opens a migrated SQLite database under t.TempDir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Planet{},
		&catalogdomain.Character{},
		&catalogdomain.Starship{},
		&userdomain.User{},
		&favoritesdomain.Favorites{},
		&favoritesdomain.FavoriteEntry{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts an active user with the given id.
func CreateUser(t *testing.T, db *gorm.DB, id uint) *userdomain.User {
	t.Helper()

	user := &userdomain.User{
		ID:       id,
		Email:    "user" + strconv.FormatUint(uint64(id), 10) + "@blog.test",
		Username: "user" + strconv.FormatUint(uint64(id), 10),
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePlanet inserts a planet with the given id and name.
func CreatePlanet(t *testing.T, db *gorm.DB, id uint, name string) catalogdomain.Planet {
	t.Helper()

	planet := catalogdomain.Planet{ID: id, Name: name, Climate: "temperate"}
	require.NoError(t, db.Create(&planet).Error)
	return planet
}

// CreateCharacter inserts a character with the given id and name.
func CreateCharacter(t *testing.T, db *gorm.DB, id uint, name string) catalogdomain.Character {
	t.Helper()

	character := catalogdomain.Character{ID: id, Name: name, Gender: "n/a"}
	require.NoError(t, db.Create(&character).Error)
	return character
}

// CreateStarship inserts a starship with the given id and name.
func CreateStarship(t *testing.T, db *gorm.DB, id uint, name string) catalogdomain.Starship {
	t.Helper()

	starship := catalogdomain.Starship{ID: id, Name: name, Model: name}
	require.NoError(t, db.Create(&starship).Error)
	return starship
}

// NumberAsUint reads an id out of a serialized entity, whether it came
// straight from Serialize or back through a JSON round trip.
func NumberAsUint(v interface{}) uint {
	switch n := v.(type) {
	case uint:
		return n
	case int:
		return uint(n)
	case int64:
		return uint(n)
	case float64:
		return uint(n)
	}
	return 0
}
