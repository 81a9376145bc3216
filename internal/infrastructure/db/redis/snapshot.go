package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/perfhub/performance-system/internal/core/ports"
)

const snapshotKey = "stats:snapshot"

const defaultSnapshotTTL = 30 * time.Second

// SnapshotCache stores the global dashboard snapshot as a JSON blob with a
// short TTL, so a stale entry expires on its own even if the refresher stalls.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a SnapshotCache wrapping the given Redis client.
// If ttl <= 0, defaultSnapshotTTL is used.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (c *SnapshotCache) Get(ctx context.Context) (*ports.DashboardSnapshot, error) {
	raw, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot get: %w", err)
	}

	var snap ports.DashboardSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	return &snap, nil
}

// Set stores the snapshot, replacing any previous entry.
func (c *SnapshotCache) Set(ctx context.Context, snap *ports.DashboardSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot set: %w", err)
	}
	return nil
}
