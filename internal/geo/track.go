package geo

import (
	"errors"

	"tour-planning-service/internal/domain"
)

// ErrInsufficientData is returned when fewer than two positions are supplied.
// Callers are expected to pre-check and surface a "not enough data" result
// rather than propagate this to end users.
var ErrInsufficientData = errors.New("geo: at least two positions are required")

// TrackStatistics aggregates an ordered position sequence for one vehicle.
//
// Total distance is the sum of pairwise great-circle distances over
// consecutive samples, not the straight-line endpoint distance. Total time is
// the wall-clock delta between the first and last sample. Average speed is
// guarded against a zero time delta.
func TrackStatistics(positions []domain.Position) (domain.TrackStatistics, error) {
	if len(positions) < 2 {
		return domain.TrackStatistics{}, ErrInsufficientData
	}

	var totalMeters float64
	var maxSpeed float64

	for i := 1; i < len(positions); i++ {
		totalMeters += Distance(positions[i-1].Coordinates(), positions[i].Coordinates())
	}
	for _, p := range positions {
		if p.SpeedKmh > maxSpeed {
			maxSpeed = p.SpeedKmh
		}
	}

	totalTime := positions[len(positions)-1].FixTime.Sub(positions[0].FixTime)

	averageSpeed := 0.0
	if totalTime > 0 {
		averageSpeed = (totalMeters / 1000) / totalTime.Hours()
	}

	stops := DetectStops(positions, DefaultStopSpeedKmh, DefaultMinStopDuration)

	return domain.TrackStatistics{
		TotalDistanceMeters: totalMeters,
		TotalTime:           totalTime,
		MaxSpeedKmh:         maxSpeed,
		AverageSpeedKmh:     averageSpeed,
		StopCount:           len(stops),
	}, nil
}
