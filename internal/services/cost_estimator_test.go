package services

import (
	"math"
	"testing"
)

func TestFuelCost(t *testing.T) {
	e := NewCostEstimator(CostConfig{LitersPer100Km: 25, FuelPricePerLiter: 1.50})

	// 100 km x 25 L/100km x 1.50/L = 37.50
	got := e.FuelCost(100_000)
	if math.Abs(got-37.50) > 1e-9 {
		t.Fatalf("fuel cost = %f, want 37.50", got)
	}
}

func TestFuelCostZeroDistance(t *testing.T) {
	e := NewCostEstimator(DefaultCostConfig())

	if got := e.FuelCost(0); got != 0 {
		t.Fatalf("fuel cost = %f, want 0", got)
	}
}
