package command

import (
	"context"
	"fmt"

	"github.com/tair/starwars-blog/internal/favorites/domain"
	user "github.com/tair/starwars-blog/internal/user/domain"
	"github.com/tair/starwars-blog/pkg/logger"
)

func ensureUser(ctx context.Context, users user.UserRepository, userID uint) error {
	if userID == 0 {
		return fmt.Errorf("%w: 0", user.ErrUserNotFound)
	}
	if _, err := users.FindByID(ctx, userID); err != nil {
		return err
	}
	return nil
}

// invalidateView drops the user's cached view. Failures are only logged.
func invalidateView(ctx context.Context, cache domain.ViewCache, userID uint) {
	if err := cache.Invalidate(ctx, userID); err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("user_id", userID).
			Msg("Failed to invalidate favorites view")
	}
}

func logPublishFailure(ctx context.Context, err error, eventType string, userID uint) {
	logger.Error(ctx).
		Err(err).
		Str("event_type", eventType).
		Uint("user_id", userID).
		Msg("Failed to publish favorite event")
}
