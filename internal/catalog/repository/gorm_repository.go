package repository

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/starwars-blog/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// entityModel is satisfied by the three catalog tables.
type entityModel interface {
	domain.Planet | domain.Character | domain.Starship
	domain.Entity
}

// GormCatalogRepository implements CatalogRepository interface using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetEntity retrieves a single entity of the given kind
func (r *GormCatalogRepository) GetEntity(ctx context.Context, kind domain.Kind, id uint) (domain.Entity, error) {
	ctx, span := tracer.Start(ctx, "repository.GetEntity",
		trace.WithAttributes(
			attribute.String("catalog.kind", kind.String()),
			attribute.Int("catalog.id", int(id)),
		),
	)
	defer span.End()

	var (
		entity domain.Entity
		err    error
	)
	switch kind {
	case domain.KindPlanet:
		entity, err = first[domain.Planet](r.db.WithContext(ctx), id)
	case domain.KindCharacter:
		entity, err = first[domain.Character](r.db.WithContext(ctx), id)
	case domain.KindStarship:
		entity, err = first[domain.Starship](r.db.WithContext(ctx), id)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrEntityNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}
	return entity, nil
}

// ListEntities retrieves every entity of the given kind ordered by id
func (r *GormCatalogRepository) ListEntities(ctx context.Context, kind domain.Kind) ([]domain.Entity, error) {
	ctx, span := tracer.Start(ctx, "repository.ListEntities",
		trace.WithAttributes(attribute.String("catalog.kind", kind.String())),
	)
	defer span.End()

	var (
		entities []domain.Entity
		err      error
	)
	switch kind {
	case domain.KindPlanet:
		entities, err = findAll[domain.Planet](r.db.WithContext(ctx))
	case domain.KindCharacter:
		entities, err = findAll[domain.Character](r.db.WithContext(ctx))
	case domain.KindStarship:
		entities, err = findAll[domain.Starship](r.db.WithContext(ctx))
	default:
		err = fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(entities)))
	return entities, nil
}

// FindByIDs resolves a batch of ids of one kind
func (r *GormCatalogRepository) FindByIDs(ctx context.Context, kind domain.Kind, ids []uint) (map[uint]domain.Entity, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByIDs",
		trace.WithAttributes(
			attribute.String("catalog.kind", kind.String()),
			attribute.Int("query.ids", len(ids)),
		),
	)
	defer span.End()

	if len(ids) == 0 {
		return map[uint]domain.Entity{}, nil
	}

	var (
		found map[uint]domain.Entity
		err   error
	)
	switch kind {
	case domain.KindPlanet:
		found, err = findByIDs[domain.Planet](r.db.WithContext(ctx), ids)
	case domain.KindCharacter:
		found, err = findByIDs[domain.Character](r.db.WithContext(ctx), ids)
	case domain.KindStarship:
		found, err = findByIDs[domain.Starship](r.db.WithContext(ctx), ids)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(found)))
	return found, nil
}

// AutoMigrate runs database migrations
func (r *GormCatalogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Planet{}, &domain.Character{}, &domain.Starship{})
}

func first[T entityModel](db *gorm.DB, id uint) (domain.Entity, error) {
	var row T
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %d", domain.ErrEntityNotFound, row.EntityKind(), id)
		}
		return nil, fmt.Errorf("failed to find %s: %w", row.EntityKind(), err)
	}
	return row, nil
}

func findAll[T entityModel](db *gorm.DB) ([]domain.Entity, error) {
	var rows []T
	if err := db.Order("id").Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("failed to list %s: %w", zero.EntityKind(), err)
	}

	entities := make([]domain.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, row)
	}
	return entities, nil
}

func findByIDs[T entityModel](db *gorm.DB, ids []uint) (map[uint]domain.Entity, error) {
	var rows []T
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("failed to find %s batch: %w", zero.EntityKind(), err)
	}

	found := make(map[uint]domain.Entity, len(rows))
	for _, row := range rows {
		found[row.EntityID()] = row
	}
	return found, nil
}
