package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/favorites/domain"
)

var tracer = otel.Tracer("favorites-repository")

// TracingFavoritesRepository wraps a FavoritesRepository with tracing
type TracingFavoritesRepository struct {
	next domain.FavoritesRepository
}

// NewTracingFavoritesRepository creates a new repository with tracing
func NewTracingFavoritesRepository(next domain.FavoritesRepository) *TracingFavoritesRepository {
	return &TracingFavoritesRepository{next: next}
}

// Transaction with tracing. The transaction-bound repository is traced too.
func (r *TracingFavoritesRepository) Transaction(ctx context.Context, fn func(repo domain.FavoritesRepository) error) error {
	ctx, span := tracer.Start(ctx, "repository.Transaction")
	defer span.End()

	err := r.next.Transaction(ctx, func(repo domain.FavoritesRepository) error {
		return fn(&TracingFavoritesRepository{next: repo})
	})
	recordError(span, err)
	return err
}

// GetOrCreateFavorites with tracing
func (r *TracingFavoritesRepository) GetOrCreateFavorites(ctx context.Context, userID uint) (*domain.Favorites, error) {
	ctx, span := tracer.Start(ctx, "repository.GetOrCreateFavorites",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	defer span.End()

	favorites, err := r.next.GetOrCreateFavorites(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("favorites.id", int(favorites.ID)))
	return favorites, nil
}

// FindFavorites with tracing
func (r *TracingFavoritesRepository) FindFavorites(ctx context.Context, userID uint) (*domain.Favorites, error) {
	ctx, span := tracer.Start(ctx, "repository.FindFavorites",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	defer span.End()

	favorites, err := r.next.FindFavorites(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("favorites.id", int(favorites.ID)))
	return favorites, nil
}

// FindEntry with tracing
func (r *TracingFavoritesRepository) FindEntry(ctx context.Context, favoritesID uint, kind catalog.Kind, entityID uint) (*domain.FavoriteEntry, error) {
	ctx, span := tracer.Start(ctx, "repository.FindEntry", entryAttributes(favoritesID, kind, entityID))
	defer span.End()

	entry, err := r.next.FindEntry(ctx, favoritesID, kind, entityID)
	recordError(span, err)
	return entry, err
}

// InsertEntry with tracing
func (r *TracingFavoritesRepository) InsertEntry(ctx context.Context, favoritesID uint, kind catalog.Kind, entityID uint) (*domain.FavoriteEntry, error) {
	ctx, span := tracer.Start(ctx, "repository.InsertEntry", entryAttributes(favoritesID, kind, entityID))
	defer span.End()

	entry, err := r.next.InsertEntry(ctx, favoritesID, kind, entityID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("entry.id", int(entry.ID)))
	return entry, nil
}

// DeleteEntry with tracing
func (r *TracingFavoritesRepository) DeleteEntry(ctx context.Context, entry *domain.FavoriteEntry) error {
	ctx, span := tracer.Start(ctx, "repository.DeleteEntry",
		trace.WithAttributes(attribute.Int("entry.id", int(entry.ID))),
	)
	defer span.End()

	err := r.next.DeleteEntry(ctx, entry)
	recordError(span, err)
	return err
}

// ListEntries with tracing
func (r *TracingFavoritesRepository) ListEntries(ctx context.Context, favoritesID uint, kind catalog.Kind) ([]domain.FavoriteEntry, error) {
	ctx, span := tracer.Start(ctx, "repository.ListEntries",
		trace.WithAttributes(
			attribute.Int("favorites.id", int(favoritesID)),
			attribute.String("catalog.kind", kind.String()),
		),
	)
	defer span.End()

	entries, err := r.next.ListEntries(ctx, favoritesID, kind)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(entries)))
	return entries, nil
}

// DeleteEntriesForEntity with tracing
func (r *TracingFavoritesRepository) DeleteEntriesForEntity(ctx context.Context, kind catalog.Kind, entityID uint) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.DeleteEntriesForEntity",
		trace.WithAttributes(
			attribute.String("catalog.kind", kind.String()),
			attribute.Int("catalog.id", int(entityID)),
		),
	)
	defer span.End()

	deleted, err := r.next.DeleteEntriesForEntity(ctx, kind, entityID)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.deleted", deleted))
	return deleted, nil
}

// CountEntries with tracing
func (r *TracingFavoritesRepository) CountEntries(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.CountEntries")
	defer span.End()

	count, err := r.next.CountEntries(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func entryAttributes(favoritesID uint, kind catalog.Kind, entityID uint) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.Int("favorites.id", int(favoritesID)),
		attribute.String("catalog.kind", kind.String()),
		attribute.Int("catalog.id", int(entityID)),
	)
}

// recordError marks the span failed. Not-found and conflict outcomes are
// expected business results and leave the span status untouched.
func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	if errors.Is(err, domain.ErrFavoriteNotFound) ||
		errors.Is(err, domain.ErrFavoritesNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrDuplicateFavorite) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
