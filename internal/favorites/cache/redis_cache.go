package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/starwars-blog/internal/favorites/domain"
	"github.com/tair/starwars-blog/pkg/logger"
)

const (
	keyPrefix     = "favorites:view:"
	versionSuffix = ":v"
)

// RedisViewCache keeps assembled favorites views in Redis. Every user has a
// write version next to the view; Invalidate bumps it and Set only stores a
// view built at the current version.
type RedisViewCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisViewCache creates a new Redis backed view cache
func NewRedisViewCache(client redis.UniversalClient, ttl time.Duration) *RedisViewCache {
	return &RedisViewCache{client: client, ttl: ttl}
}

func viewKey(userID uint) string {
	return keyPrefix + strconv.FormatUint(uint64(userID), 10)
}

func versionKey(userID uint) string {
	return viewKey(userID) + versionSuffix
}

// Get returns the cached view, or nil on a miss, and the user's write version
func (c *RedisViewCache) Get(ctx context.Context, userID uint) (*domain.FavoritesView, int64, error) {
	values, err := c.client.MGet(ctx, viewKey(userID), versionKey(userID)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read cached view: %w", err)
	}

	version, err := parseVersion(values[1])
	if err != nil {
		return nil, 0, err
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, version, nil
	}

	var view domain.FavoritesView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, version, fmt.Errorf("failed to decode cached view: %w", err)
	}

	logger.Debug(ctx).Uint("user_id", userID).Msg("Favorites view cache hit")
	return &view, version, nil
}

// Set stores the view for the cache TTL unless the user was invalidated
// after version was read. A dropped view is not an error.
func (c *RedisViewCache) Set(ctx context.Context, view *domain.FavoritesView, version int64) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}

	vkey := versionKey(view.UserID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		currentVersion, err := parseVersion(current)
		if err != nil {
			return err
		}
		if currentVersion != version {
			return errStaleView
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, viewKey(view.UserID), raw, c.ttl)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStaleView), errors.Is(err, redis.TxFailedErr):
		logger.Debug(ctx).Uint("user_id", view.UserID).Msg("Favorites changed while the view was built, not caching it")
		return nil
	default:
		return fmt.Errorf("failed to cache view: %w", err)
	}
}

// Invalidate drops the cached view of one user and bumps its version
func (c *RedisViewCache) Invalidate(ctx context.Context, userID uint) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(userID))
		pipe.Del(ctx, viewKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate view: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached view and bumps every known version
func (c *RedisViewCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()

	var views, versions []string
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasSuffix(key, versionSuffix) {
			versions = append(versions, key)
		} else {
			views = append(views, key)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached views: %w", err)
	}
	if len(views) == 0 && len(versions) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range versions {
			pipe.Incr(ctx, key)
		}
		if len(views) > 0 {
			pipe.Del(ctx, views...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate views: %w", err)
	}

	logger.Info(ctx).Int("count", len(views)).Msg("Favorites view cache invalidated")
	return nil
}

var errStaleView = errors.New("favorites view is stale")

func parseVersion(value interface{}) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case string:
		if v == "" {
			return 0, nil
		}
		version, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid view version %q: %w", v, err)
		}
		return version, nil
	default:
		return 0, fmt.Errorf("unexpected view version type %T", value)
	}
}

// NoopViewCache is used when no Redis is configured. Every Get is a miss.
type NoopViewCache struct{}

func (NoopViewCache) Get(context.Context, uint) (*domain.FavoritesView, int64, error) {
	return nil, 0, nil
}
func (NoopViewCache) Set(context.Context, *domain.FavoritesView, int64) error { return nil }
func (NoopViewCache) Invalidate(context.Context, uint) error                  { return nil }
func (NoopViewCache) InvalidateAll(context.Context) error                     { return nil }
