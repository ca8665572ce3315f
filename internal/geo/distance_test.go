package geo

import (
	"math"
	"testing"

	"tour-planning-service/internal/domain"
)

func TestDistanceSymmetry(t *testing.T) {
	a := domain.Coordinates{Lat: 52.52, Lon: 13.405}  // Berlin
	b := domain.Coordinates{Lat: 48.1351, Lon: 11.582} // Munich

	ab := Distance(a, b)
	ba := Distance(b, a)

	if ab != ba {
		t.Fatalf("distance not symmetric: a->b=%f b->a=%f", ab, ba)
	}
}

func TestDistanceIdentity(t *testing.T) {
	a := domain.Coordinates{Lat: 52.52, Lon: 13.405}

	if d := Distance(a, a); math.Abs(d) > 1e-9 {
		t.Fatalf("distance(a,a) = %f, want ~0", d)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Berlin to Munich is roughly 504 km great-circle.
	a := domain.Coordinates{Lat: 52.52, Lon: 13.405}
	b := domain.Coordinates{Lat: 48.1351, Lon: 11.582}

	d := Distance(a, b)
	if d < 500_000 || d > 510_000 {
		t.Fatalf("distance = %f m, want ~504 km", d)
	}
}
