package ports

import (
	"context"
	"time"

	"tour-planning-service/internal/domain"
)

// Device is one registered vehicle tracker.
type Device struct {
	ID         string
	Name       string
	Status     string
	LastUpdate time.Time
}

// PositionSource is the boundary to the GPS telemetry provider.
// Read-only: no operation mutates the telemetry source.
type PositionSource interface {
	// Positions returns the ordered samples for one device between from and
	// to (inclusive). limit <= 0 means provider default.
	Positions(ctx context.Context, deviceID string, from, to time.Time, limit int) ([]domain.Position, error)

	// Devices returns all registered trackers.
	Devices(ctx context.Context) ([]Device, error)

	// LatestPositions returns the most recent sample per device.
	LatestPositions(ctx context.Context) ([]domain.Position, error)
}
