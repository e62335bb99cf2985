package domain

import (
	"time"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
)

// Favorites is the per-user collection of favorite catalog entities.
// A user owns at most one, created on the first add.
type Favorites struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time       `json:"created_at"`
	Entries   []FavoriteEntry `json:"-" gorm:"foreignKey:FavoritesID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Favorites) TableName() string {
	return "favorites"
}

// FavoriteEntry links a Favorites collection to one catalog entity.
type FavoriteEntry struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	FavoritesID uint         `json:"favorites_id" gorm:"not null;uniqueIndex:idx_favorite_entries_unique,priority:1"`
	Kind        catalog.Kind `json:"kind" gorm:"type:varchar(16);not null;uniqueIndex:idx_favorite_entries_unique,priority:2;index:idx_favorite_entries_entity,priority:1"`
	EntityID    uint         `json:"entity_id" gorm:"not null;uniqueIndex:idx_favorite_entries_unique,priority:3;index:idx_favorite_entries_entity,priority:2"`
	CreatedAt   time.Time    `json:"created_at"`
}

// TableName specifies the table name
func (FavoriteEntry) TableName() string {
	return "favorite_entries"
}
