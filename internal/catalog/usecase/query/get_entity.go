package query

import (
	"context"
	"fmt"

	"github.com/tair/starwars-blog/internal/catalog/domain"
)

// GetEntityQuery represents the query to get a catalog entity by kind and ID
type GetEntityQuery struct {
	Kind domain.Kind
	ID   uint
}

// GetEntityHandler handles get entity query
type GetEntityHandler struct {
	repo domain.CatalogRepository
}

// NewGetEntityHandler creates a new get entity handler
func NewGetEntityHandler(repo domain.CatalogRepository) *GetEntityHandler {
	return &GetEntityHandler{repo: repo}
}

// Handle executes the get entity query
func (h *GetEntityHandler) Handle(ctx context.Context, q GetEntityQuery) (domain.Entity, error) {
	if !q.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, q.Kind)
	}
	if q.ID == 0 {
		return nil, fmt.Errorf("%w: %s 0", domain.ErrEntityNotFound, q.Kind)
	}
	return h.repo.GetEntity(ctx, q.Kind, q.ID)
}
