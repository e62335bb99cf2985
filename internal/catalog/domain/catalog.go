package domain

import (
	"context"
	"errors"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrInvalidKind    = errors.New("invalid catalog kind")
)

// Entity is a read-only catalog record: a planet, a character or a starship.
type Entity interface {
	EntityID() uint
	EntityKind() Kind
	// Serialize returns the public, flat representation of the entity.
	Serialize() map[string]interface{}
}

// CatalogRepository defines the contract for catalog data access
type CatalogRepository interface {
	GetEntity(ctx context.Context, kind Kind, id uint) (Entity, error)
	ListEntities(ctx context.Context, kind Kind) ([]Entity, error)
	// FindByIDs resolves ids in one query. Ids with no matching entity are absent from the map.
	FindByIDs(ctx context.Context, kind Kind, ids []uint) (map[uint]Entity, error)
	Seed(ctx context.Context) error
}
