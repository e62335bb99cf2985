package domain

import (
	"context"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
)

// FavoritesRepository defines the contract for favorites persistence.
// It holds no business rules.
type FavoritesRepository interface {
	// Transaction runs fn with a repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(repo FavoritesRepository) error) error

	GetOrCreateFavorites(ctx context.Context, userID uint) (*Favorites, error)
	FindFavorites(ctx context.Context, userID uint) (*Favorites, error)
	FindEntry(ctx context.Context, favoritesID uint, kind catalog.Kind, entityID uint) (*FavoriteEntry, error)
	InsertEntry(ctx context.Context, favoritesID uint, kind catalog.Kind, entityID uint) (*FavoriteEntry, error)
	DeleteEntry(ctx context.Context, entry *FavoriteEntry) error
	ListEntries(ctx context.Context, favoritesID uint, kind catalog.Kind) ([]FavoriteEntry, error)
	DeleteEntriesForEntity(ctx context.Context, kind catalog.Kind, entityID uint) (int64, error)
	CountEntries(ctx context.Context) (int64, error)
}

// ViewCache stores assembled favorites views. Get returns a nil view on a
// miss, together with the user's write version. Set must be given the version
// read before the view was built and drops the view when a write invalidated
// the user since then.
type ViewCache interface {
	Get(ctx context.Context, userID uint) (*FavoritesView, int64, error)
	Set(ctx context.Context, view *FavoritesView, version int64) error
	Invalidate(ctx context.Context, userID uint) error
	InvalidateAll(ctx context.Context) error
}

// EventPublisher announces changes to a user's favorites.
type EventPublisher interface {
	PublishFavoriteAdded(ctx context.Context, userID uint, kind string, entityID uint) error
	PublishFavoriteRemoved(ctx context.Context, userID uint, kind string, entityID uint) error
}
