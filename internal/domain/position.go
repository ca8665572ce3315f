package domain

import "time"

// Position is a single telemetry sample reported by a vehicle tracker.
type Position struct {
	DeviceID   string
	FixTime    time.Time
	Latitude   float64
	Longitude  float64
	SpeedKmh   float64
	Address    string // reverse-geocoded by the provider, may be empty
	Attributes map[string]any
}

// Coordinates of the sample.
func (p Position) Coordinates() Coordinates {
	return Coordinates{Lat: p.Latitude, Lon: p.Longitude}
}

// StopEvent is a contiguous run of near-zero speed samples that lasted longer
// than the minimum stop duration. Duration is computed from the timestamps of
// the bounding positions, never estimated from sample count.
type StopEvent struct {
	Start    Position
	End      Position
	Duration time.Duration
}

// TrackStatistics aggregates an ordered position sequence.
type TrackStatistics struct {
	TotalDistanceMeters float64
	TotalTime           time.Duration
	MaxSpeedKmh         float64
	AverageSpeedKmh     float64
	StopCount           int
}

// DailyRoute is a vehicle's reconstructed movement history for one UTC day.
type DailyRoute struct {
	DeviceID   string
	Date       time.Time
	Positions  []Position
	Statistics TrackStatistics
	Stops      []StopEvent
	Start      Position
	End        Position
}

// TruckStatus is the live state of one tracked vehicle.
type TruckStatus struct {
	DeviceID     string
	Name         string
	Online       bool
	LastUpdate   time.Time
	LastPosition *Position
}
