package query

import (
	"context"
	"fmt"

	"github.com/tair/starwars-blog/internal/catalog/domain"
)

// ListEntitiesQuery represents the query to list every entity of a kind
type ListEntitiesQuery struct {
	Kind domain.Kind
}

// ListEntitiesHandler handles list entities query
type ListEntitiesHandler struct {
	repo domain.CatalogRepository
}

// NewListEntitiesHandler creates a new list entities handler
func NewListEntitiesHandler(repo domain.CatalogRepository) *ListEntitiesHandler {
	return &ListEntitiesHandler{repo: repo}
}

// Handle executes the list entities query and returns public representations
func (h *ListEntitiesHandler) Handle(ctx context.Context, q ListEntitiesQuery) ([]map[string]interface{}, error) {
	if !q.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, q.Kind)
	}

	entities, err := h.repo.ListEntities(ctx, q.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", q.Kind, err)
	}

	items := make([]map[string]interface{}, 0, len(entities))
	for _, entity := range entities {
		items = append(items, entity.Serialize())
	}
	return items, nil
}
