package kafka

import "time"

// FavoriteEvent is published whenever a user adds or removes a favorite
type FavoriteEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id"`
	Kind      string    `json:"kind"`
	EntityID  uint      `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogEntityRemovedEvent announces that a catalog entity was deleted upstream
type CatalogEntityRemovedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Kind      string    `json:"kind"`
	EntityID  uint      `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoriteAdded        = "favorite.added"
	EventTypeFavoriteRemoved      = "favorite.removed"
	EventTypeCatalogEntityRemoved = "catalog.entity_removed"
)

// Kafka topics
const (
	TopicFavoriteEvents       = "favorite-events"
	TopicCatalogEntityRemoved = "catalog-entity-removed"
)

// ConsumerGroupFavorites is the consumer group of the favorites service
const ConsumerGroupFavorites = "favorites-service"
