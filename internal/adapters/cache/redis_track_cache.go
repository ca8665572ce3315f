package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/platform/obs"
)

// RedisTrackCache is a Redis-backed cache for complete daily position
// tracks. A finished day's track never changes, so entries only expire to
// bound memory, not for correctness.
type RedisTrackCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTrackCache(client *redis.Client, ttl time.Duration) *RedisTrackCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisTrackCache{client: client, ttl: ttl}
}

// Fetch the cached track for a device and UTC day.
func (c *RedisTrackCache) GetTrack(ctx context.Context, deviceID string, day time.Time) (_ []domain.Position, _ bool, err error) {
	defer obs.Time(ctx, "track.cache.GetTrack")(&err)

	if c.client == nil {
		return nil, false, errors.New("track cache: client is nil")
	}
	if deviceID == "" {
		return nil, false, errors.New("get track cache: deviceID must not be empty")
	}

	raw, err := c.client.Get(ctx, trackKey(deviceID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get track cache: %w", err)
	}

	var positions []domain.Position
	if err := json.Unmarshal(raw, &positions); err != nil {
		return nil, false, fmt.Errorf("get track cache: decode entry: %w", err)
	}

	return positions, true, nil
}

// Store a complete daily track.
func (c *RedisTrackCache) PutTrack(ctx context.Context, deviceID string, day time.Time, positions []domain.Position) (err error) {
	defer obs.Time(ctx, "track.cache.PutTrack")(&err)

	if c.client == nil {
		return errors.New("track cache: client is nil")
	}
	if deviceID == "" {
		return errors.New("put track cache: deviceID must not be empty")
	}
	if len(positions) == 0 {
		return nil
	}

	raw, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("put track cache: encode entry: %w", err)
	}

	if err := c.client.Set(ctx, trackKey(deviceID, day), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put track cache: %w", err)
	}

	return nil
}

func trackKey(deviceID string, day time.Time) string {
	return "track:" + deviceID + ":" + day.UTC().Format("2006-01-02")
}
