package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"tour-planning-service/internal/domain"
)

func testCache(t *testing.T) *RedisTrackCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisTrackCache(client, time.Hour)
}

func TestTrackCacheRoundTrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	track := []domain.Position{
		{DeviceID: "7", FixTime: day.Add(8 * time.Hour), Latitude: 52.52, Longitude: 13.405, SpeedKmh: 30, Address: "Alexanderplatz"},
		{DeviceID: "7", FixTime: day.Add(9 * time.Hour), Latitude: 52.53, Longitude: 13.42, SpeedKmh: 45},
	}

	if err := c.PutTrack(ctx, "7", day, track); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, hit, err := c.GetTrack(ctx, "7", day)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].Address != "Alexanderplatz" || !got[1].FixTime.Equal(day.Add(9*time.Hour)) {
		t.Fatalf("unexpected cached track: %+v", got)
	}
}

func TestTrackCacheMiss(t *testing.T) {
	c := testCache(t)

	_, hit, err := c.GetTrack(context.Background(), "7", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss")
	}
}

// Entries are keyed per device and per day; neighbors never collide.
func TestTrackCacheKeyIsolation(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	track := []domain.Position{{DeviceID: "7", FixTime: day}, {DeviceID: "7", FixTime: day.Add(time.Hour)}}
	if err := c.PutTrack(ctx, "7", day, track); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, hit, _ := c.GetTrack(ctx, "8", day); hit {
		t.Fatal("device 8 must not see device 7's track")
	}
	if _, hit, _ := c.GetTrack(ctx, "7", day.Add(24*time.Hour)); hit {
		t.Fatal("next day must not see the previous day's track")
	}
}
