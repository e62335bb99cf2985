package command

import (
	"context"
	"errors"
	"fmt"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	user "github.com/tair/starwars-blog/internal/user/domain"
)

// AddFavoriteCommand represents the command to add a catalog entity to a user's favorites
type AddFavoriteCommand struct {
	UserID   uint
	Kind     catalog.Kind
	EntityID uint
}

// AddFavoriteHandler handles add favorite command
type AddFavoriteHandler struct {
	repo      domain.FavoritesRepository
	users     user.UserRepository
	catalog   catalog.CatalogRepository
	cache     domain.ViewCache
	publisher domain.EventPublisher
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(
	repo domain.FavoritesRepository,
	users user.UserRepository,
	catalogRepo catalog.CatalogRepository,
	cache domain.ViewCache,
	publisher domain.EventPublisher,
) *AddFavoriteHandler {
	return &AddFavoriteHandler{
		repo:      repo,
		users:     users,
		catalog:   catalogRepo,
		cache:     cache,
		publisher: publisher,
	}
}

// Handle executes the add favorite command and returns the added entity
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (catalog.Entity, error) {
	if !cmd.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidKind, cmd.Kind)
	}

	if err := ensureUser(ctx, h.users, cmd.UserID); err != nil {
		return nil, err
	}

	if cmd.EntityID == 0 {
		return nil, fmt.Errorf("%w: %s 0", catalog.ErrEntityNotFound, cmd.Kind)
	}
	entity, err := h.catalog.GetEntity(ctx, cmd.Kind, cmd.EntityID)
	if err != nil {
		return nil, err
	}

	err = h.repo.Transaction(ctx, func(tx domain.FavoritesRepository) error {
		favorites, err := tx.GetOrCreateFavorites(ctx, cmd.UserID)
		if err != nil {
			return err
		}

		_, err = tx.FindEntry(ctx, favorites.ID, cmd.Kind, cmd.EntityID)
		if err == nil {
			return fmt.Errorf("%w: %s %d", domain.ErrDuplicateFavorite, cmd.Kind, cmd.EntityID)
		}
		if !errors.Is(err, domain.ErrFavoriteNotFound) {
			return err
		}

		if _, err := tx.InsertEntry(ctx, favorites.ID, cmd.Kind, cmd.EntityID); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return fmt.Errorf("%w: %s %d", domain.ErrDuplicateFavorite, cmd.Kind, cmd.EntityID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateView(ctx, h.cache, cmd.UserID)
	if err := h.publisher.PublishFavoriteAdded(ctx, cmd.UserID, cmd.Kind.String(), cmd.EntityID); err != nil {
		logPublishFailure(ctx, err, "favorite.added", cmd.UserID)
	}

	return entity, nil
}
