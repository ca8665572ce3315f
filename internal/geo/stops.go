package geo

import (
	"time"

	"tour-planning-service/internal/domain"
)

const (
	// DefaultStopSpeedKmh is the instantaneous speed below which a vehicle
	// is considered stationary.
	DefaultStopSpeedKmh = 5.0

	// DefaultMinStopDuration filters out brief decelerations (traffic
	// lights) from operational stops.
	DefaultMinStopDuration = 5 * time.Minute
)

// DetectStops segments a position sequence into stop events.
//
// A candidate stop begins at the first sample whose speed drops below the
// threshold and ends at the last contiguous such sample before speed rises
// again. Candidates are then filtered: only runs whose bounding-timestamp
// delta exceeds minDuration are retained. The two stages keep a red-light
// dwell from being reported as an operational stop.
func DetectStops(positions []domain.Position, speedThresholdKmh float64, minDuration time.Duration) []domain.StopEvent {
	stops := []domain.StopEvent{}

	runStart := -1
	for i, p := range positions {
		if p.SpeedKmh < speedThresholdKmh {
			if runStart < 0 {
				runStart = i
			}
			continue
		}

		if runStart >= 0 {
			stops = appendQualified(stops, positions[runStart], positions[i-1], minDuration)
			runStart = -1
		}
	}
	if runStart >= 0 {
		stops = appendQualified(stops, positions[runStart], positions[len(positions)-1], minDuration)
	}

	return stops
}

func appendQualified(stops []domain.StopEvent, start, end domain.Position, minDuration time.Duration) []domain.StopEvent {
	d := end.FixTime.Sub(start.FixTime)
	if d <= minDuration {
		return stops
	}

	return append(stops, domain.StopEvent{
		Start:    start,
		End:      end,
		Duration: d,
	})
}
