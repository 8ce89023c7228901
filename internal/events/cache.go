package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ms-events/internal/models"

	"github.com/go-redis/redis/v8"
)

const viewKeyPrefix = "event_view:"

// RedisViewCache keeps rendered event views in Redis for a short TTL. The TTL
// bounds how stale the derived past/cancelable flags can get; writes to an
// event invalidate its entry immediately.
type RedisViewCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisViewCache(client *redis.Client, ttl time.Duration) *RedisViewCache {
	return &RedisViewCache{Client: client, TTL: ttl}
}

func viewKey(id string) string {
	return viewKeyPrefix + id
}

// GetView retrieves a cached view, returning (nil, nil) on a miss.
func (c *RedisViewCache) GetView(id string) (*models.EventView, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	viewJSON, err := c.Client.Get(context.Background(), viewKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get view from Redis: %w", err)
	}

	var view models.EventView
	if err := json.Unmarshal([]byte(viewJSON), &view); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached view: %w", err)
	}

	return &view, nil
}

// SetView stores a rendered view with the configured TTL.
func (c *RedisViewCache) SetView(view *models.EventView) error {
	if c.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	viewJSON, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}

	if err := c.Client.Set(context.Background(), viewKey(view.ID), viewJSON, c.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store view in Redis: %w", err)
	}

	return nil
}

// Invalidate drops the cached view for an event.
func (c *RedisViewCache) Invalidate(id string) error {
	if c.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return c.Client.Del(context.Background(), viewKey(id)).Err()
}
