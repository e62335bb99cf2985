package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	"github.com/tair/starwars-blog/pkg/database"
)

// GormFavoritesRepository implements FavoritesRepository interface using GORM
type GormFavoritesRepository struct {
	db *gorm.DB
}

// NewGormFavoritesRepository creates a new GORM favorites repository
func NewGormFavoritesRepository(db *gorm.DB) *GormFavoritesRepository {
	return &GormFavoritesRepository{db: db}
}

// Transaction runs fn against a repository bound to one database transaction
func (r *GormFavoritesRepository) Transaction(ctx context.Context, fn func(repo domain.FavoritesRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormFavoritesRepository{db: tx})
	})
}

// GetOrCreateFavorites returns the user's favorites, creating them if needed.
// Concurrent callers race on the unique user_id index, never on a read-then-write.
func (r *GormFavoritesRepository) GetOrCreateFavorites(ctx context.Context, userID uint) (*domain.Favorites, error) {
	db := r.db.WithContext(ctx)

	created := domain.Favorites{UserID: userID}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&created).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create favorites: %w", err)
	}

	var favorites domain.Favorites
	if err := db.Where("user_id = ?", userID).Order("id").First(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return &favorites, nil
}

// FindFavorites retrieves the user's favorites without creating them
func (r *GormFavoritesRepository) FindFavorites(ctx context.Context, userID uint) (*domain.Favorites, error) {
	var favorites domain.Favorites
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").First(&favorites).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrFavoritesNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}
	return &favorites, nil
}

// FindEntry retrieves a single favorite entry
func (r *GormFavoritesRepository) FindEntry(ctx context.Context, favoritesID uint, kind catalog.Kind, entityID uint) (*domain.FavoriteEntry, error) {
	var entry domain.FavoriteEntry
	err := r.db.WithContext(ctx).
		Where("favorites_id = ? AND kind = ? AND entity_id = ?", favoritesID, kind, entityID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %d", domain.ErrFavoriteNotFound, kind, entityID)
		}
		return nil, fmt.Errorf("failed to find favorite entry: %w", err)
	}
	return &entry, nil
}

// InsertEntry stores a new favorite entry. A duplicate surfaces as ErrConflict.
func (r *GormFavoritesRepository) InsertEntry(ctx context.Context, favoritesID uint, kind catalog.Kind, entityID uint) (*domain.FavoriteEntry, error) {
	entry := &domain.FavoriteEntry{
		FavoritesID: favoritesID,
		Kind:        kind,
		EntityID:    entityID,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s %d", domain.ErrConflict, kind, entityID)
		}
		return nil, fmt.Errorf("failed to insert favorite entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes a favorite entry. Deleting a missing entry is not an error.
func (r *GormFavoritesRepository) DeleteEntry(ctx context.Context, entry *domain.FavoriteEntry) error {
	if err := r.db.WithContext(ctx).Delete(&domain.FavoriteEntry{}, entry.ID).Error; err != nil {
		return fmt.Errorf("failed to delete favorite entry: %w", err)
	}
	return nil
}

// ListEntries retrieves the entries of one kind in a favorites collection
func (r *GormFavoritesRepository) ListEntries(ctx context.Context, favoritesID uint, kind catalog.Kind) ([]domain.FavoriteEntry, error) {
	var entries []domain.FavoriteEntry
	err := r.db.WithContext(ctx).
		Where("favorites_id = ? AND kind = ?", favoritesID, kind).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite entries: %w", err)
	}
	return entries, nil
}

// DeleteEntriesForEntity removes every entry referencing a catalog entity
func (r *GormFavoritesRepository) DeleteEntriesForEntity(ctx context.Context, kind catalog.Kind, entityID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("kind = ? AND entity_id = ?", kind, entityID).
		Delete(&domain.FavoriteEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete favorite entries: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountEntries returns the total number of favorite entries
func (r *GormFavoritesRepository) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.FavoriteEntry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count favorite entries: %w", err)
	}
	return count, nil
}

// AutoMigrate runs database migrations
func (r *GormFavoritesRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorites{}, &domain.FavoriteEntry{})
}
