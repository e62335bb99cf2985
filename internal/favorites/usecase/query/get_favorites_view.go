package query

import (
	"context"
	"errors"
	"fmt"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	user "github.com/tair/starwars-blog/internal/user/domain"
	"github.com/tair/starwars-blog/pkg/logger"
)

// GetFavoritesViewQuery represents the query to get a user's favorites
type GetFavoritesViewQuery struct {
	UserID uint
}

// GetFavoritesViewHandler handles get favorites view query
type GetFavoritesViewHandler struct {
	repo    domain.FavoritesRepository
	users   user.UserRepository
	catalog catalog.CatalogRepository
	cache   domain.ViewCache
}

// NewGetFavoritesViewHandler creates a new get favorites view handler
func NewGetFavoritesViewHandler(
	repo domain.FavoritesRepository,
	users user.UserRepository,
	catalogRepo catalog.CatalogRepository,
	cache domain.ViewCache,
) *GetFavoritesViewHandler {
	return &GetFavoritesViewHandler{
		repo:    repo,
		users:   users,
		catalog: catalogRepo,
		cache:   cache,
	}
}

// Handle executes the get favorites view query.
// A user without favorites gets an empty view. Entries whose catalog entity
// no longer exists are left out of the view.
func (h *GetFavoritesViewHandler) Handle(ctx context.Context, q GetFavoritesViewQuery) (*domain.FavoritesView, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("%w: 0", user.ErrUserNotFound)
	}
	if _, err := h.users.FindByID(ctx, q.UserID); err != nil {
		return nil, err
	}

	// version is read before the database so a concurrent write wins over this view
	cached, version, err := h.cache.Get(ctx, q.UserID)
	if err != nil {
		logger.Warn(ctx).Err(err).Uint("user_id", q.UserID).Msg("Favorites view cache unavailable")
	} else if cached != nil {
		return cached, nil
	}

	view, err := h.assemble(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	if err := h.cache.Set(ctx, view, version); err != nil {
		logger.Warn(ctx).Err(err).Uint("user_id", q.UserID).Msg("Failed to cache favorites view")
	}
	return view, nil
}

func (h *GetFavoritesViewHandler) assemble(ctx context.Context, userID uint) (*domain.FavoritesView, error) {
	view := domain.NewFavoritesView(userID)

	favorites, err := h.repo.FindFavorites(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrFavoritesNotFound) {
			return view, nil
		}
		return nil, err
	}

	skipped := 0
	for _, kind := range catalog.Kinds {
		entries, err := h.repo.ListEntries(ctx, favorites.ID, kind)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			continue
		}

		ids := make([]uint, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.EntityID)
		}

		entities, err := h.catalog.FindByIDs(ctx, kind, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s favorites: %w", kind, err)
		}

		for _, entry := range entries {
			entity, ok := entities[entry.EntityID]
			if !ok {
				skipped++
				continue
			}
			view.Add(entity)
		}
	}

	if skipped > 0 {
		logger.Warn(ctx).
			Uint("user_id", userID).
			Int("skipped", skipped).
			Msg("Favorites reference catalog entities that no longer exist")
	}
	return view, nil
}
