package ports

import (
	"context"
	"time"

	"tour-planning-service/internal/domain"
)

// TrackCache stores complete daily position tracks. Only past days are ever
// cached: a finished day's track is immutable, today's is still growing.
type TrackCache interface {
	// GetTrack returns the cached track for a device and UTC day.
	// The bool reports whether the entry exists.
	GetTrack(ctx context.Context, deviceID string, day time.Time) ([]domain.Position, bool, error)

	// PutTrack stores a complete daily track.
	PutTrack(ctx context.Context, deviceID string, day time.Time, positions []domain.Position) error
}
