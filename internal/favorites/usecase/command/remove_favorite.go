package command

import (
	"context"
	"errors"
	"fmt"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	user "github.com/tair/starwars-blog/internal/user/domain"
)

// RemoveFavoriteCommand represents the command to remove a catalog entity from a user's favorites
type RemoveFavoriteCommand struct {
	UserID   uint
	Kind     catalog.Kind
	EntityID uint
}

// RemoveFavoriteHandler handles remove favorite command
type RemoveFavoriteHandler struct {
	repo      domain.FavoritesRepository
	users     user.UserRepository
	cache     domain.ViewCache
	publisher domain.EventPublisher
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(
	repo domain.FavoritesRepository,
	users user.UserRepository,
	cache domain.ViewCache,
	publisher domain.EventPublisher,
) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{
		repo:      repo,
		users:     users,
		cache:     cache,
		publisher: publisher,
	}
}

// Handle executes the remove favorite command
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	if !cmd.Kind.Valid() {
		return fmt.Errorf("%w: %q", catalog.ErrInvalidKind, cmd.Kind)
	}

	if err := ensureUser(ctx, h.users, cmd.UserID); err != nil {
		return err
	}

	err := h.repo.Transaction(ctx, func(tx domain.FavoritesRepository) error {
		favorites, err := tx.FindFavorites(ctx, cmd.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrFavoritesNotFound) {
				return fmt.Errorf("%w: %s %d", domain.ErrFavoriteNotFound, cmd.Kind, cmd.EntityID)
			}
			return err
		}

		entry, err := tx.FindEntry(ctx, favorites.ID, cmd.Kind, cmd.EntityID)
		if err != nil {
			return err
		}
		return tx.DeleteEntry(ctx, entry)
	})
	if err != nil {
		return err
	}

	invalidateView(ctx, h.cache, cmd.UserID)
	if err := h.publisher.PublishFavoriteRemoved(ctx, cmd.UserID, cmd.Kind.String(), cmd.EntityID); err != nil {
		logPublishFailure(ctx, err, "favorite.removed", cmd.UserID)
	}

	return nil
}
