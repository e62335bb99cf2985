// Package events feeds catalog events consumed from Kafka into the favorites commands.
package events

import (
	"context"
	"fmt"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/favorites/usecase/command"
	"github.com/tair/starwars-blog/kafka"
)

// NewCatalogEntityRemovedHandler purges favorites that point at a removed catalog entity
func NewCatalogEntityRemovedHandler(purge *command.PurgeEntityHandler) kafka.EventHandler {
	return func(ctx context.Context, event kafka.CatalogEntityRemovedEvent) error {
		kind, err := catalog.ParseKind(event.Kind)
		if err != nil {
			return err
		}

		if _, err := purge.Handle(ctx, command.PurgeEntityCommand{Kind: kind, EntityID: event.EntityID}); err != nil {
			return fmt.Errorf("failed to purge favorites: %w", err)
		}
		return nil
	}
}

// Register wires the favorites handlers into a consumer
func Register(consumer *kafka.Consumer, purge *command.PurgeEntityHandler) {
	consumer.RegisterHandler(kafka.EventTypeCatalogEntityRemoved, NewCatalogEntityRemovedHandler(purge))
}
