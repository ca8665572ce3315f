package geo

import (
	"errors"
	"testing"
	"time"

	"tour-planning-service/internal/domain"
)

func pos(t time.Time, lat, lon, speed float64) domain.Position {
	return domain.Position{
		DeviceID:  "truck-1",
		FixTime:   t,
		Latitude:  lat,
		Longitude: lon,
		SpeedKmh:  speed,
	}
}

func TestTrackStatisticsInsufficientData(t *testing.T) {
	_, err := TrackStatistics([]domain.Position{pos(time.Now(), 52.5, 13.4, 10)})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestTrackStatisticsAggregates(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	track := []domain.Position{
		pos(start, 52.5200, 13.4050, 30),
		pos(start.Add(30*time.Minute), 52.5300, 13.4200, 45),
		pos(start.Add(time.Hour), 52.5400, 13.4350, 20),
	}

	stats, err := TrackStatistics(track)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalTime != time.Hour {
		t.Fatalf("total time = %v, want 1h", stats.TotalTime)
	}
	if stats.MaxSpeedKmh != 45 {
		t.Fatalf("max speed = %f, want 45", stats.MaxSpeedKmh)
	}
	if stats.TotalDistanceMeters <= 0 {
		t.Fatalf("total distance = %f, want > 0", stats.TotalDistanceMeters)
	}

	wantAvg := (stats.TotalDistanceMeters / 1000) / 1.0
	if diff := stats.AverageSpeedKmh - wantAvg; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("average speed = %f, want %f", stats.AverageSpeedKmh, wantAvg)
	}
}

// Path length never undercuts the straight-line endpoint distance.
func TestTrackStatisticsPathNotShorterThanEndpoints(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	track := []domain.Position{
		pos(start, 52.5200, 13.4050, 30),
		pos(start.Add(10*time.Minute), 52.5500, 13.3800, 40), // detour
		pos(start.Add(20*time.Minute), 52.5300, 13.4200, 35),
	}

	stats, err := TrackStatistics(track)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	endpoint := Distance(track[0].Coordinates(), track[2].Coordinates())
	if stats.TotalDistanceMeters < endpoint {
		t.Fatalf("path %f m shorter than endpoint distance %f m", stats.TotalDistanceMeters, endpoint)
	}
}

func TestTrackStatisticsZeroTimeDelta(t *testing.T) {
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	track := []domain.Position{
		pos(at, 52.5200, 13.4050, 30),
		pos(at, 52.5300, 13.4200, 40),
	}

	stats, err := TrackStatistics(track)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.AverageSpeedKmh != 0 {
		t.Fatalf("average speed = %f, want 0 when total time is 0", stats.AverageSpeedKmh)
	}
}
