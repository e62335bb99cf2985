package command

import (
	"context"
	"fmt"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	"github.com/tair/starwars-blog/pkg/logger"
)

// PurgeEntityCommand removes a deleted catalog entity from every user's favorites
type PurgeEntityCommand struct {
	Kind     catalog.Kind
	EntityID uint
}

// PurgeEntityHandler handles purge entity command
type PurgeEntityHandler struct {
	repo  domain.FavoritesRepository
	cache domain.ViewCache
}

// NewPurgeEntityHandler creates a new purge entity handler
func NewPurgeEntityHandler(repo domain.FavoritesRepository, cache domain.ViewCache) *PurgeEntityHandler {
	return &PurgeEntityHandler{repo: repo, cache: cache}
}

// Handle executes the purge and returns the number of entries removed
func (h *PurgeEntityHandler) Handle(ctx context.Context, cmd PurgeEntityCommand) (int64, error) {
	if !cmd.Kind.Valid() {
		return 0, fmt.Errorf("%w: %q", catalog.ErrInvalidKind, cmd.Kind)
	}
	if cmd.EntityID == 0 {
		return 0, fmt.Errorf("invalid entity id")
	}

	deleted, err := h.repo.DeleteEntriesForEntity(ctx, cmd.Kind, cmd.EntityID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge %s %d: %w", cmd.Kind, cmd.EntityID, err)
	}

	if deleted > 0 {
		if err := h.cache.InvalidateAll(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to invalidate favorites views after purge")
		}
	}

	logger.Info(ctx).
		Str("kind", cmd.Kind.String()).
		Uint("entity_id", cmd.EntityID).
		Int64("deleted", deleted).
		Msg("Purged favorites of removed catalog entity")

	return deleted, nil
}
