package services

import (
	"testing"

	"tour-planning-service/internal/domain"
)

func TestPickupDurationLinearFormula(t *testing.T) {
	e := NewDurationEstimator(DefaultDurationConfig())

	job := &domain.MovingJob{Inventory: domain.Inventory{TotalItems: 10, Floors: 2}}

	// 1800 + 10*60 + 1*600
	if got := e.PickupDuration(job); got != 3000 {
		t.Fatalf("pickup duration = %d, want 3000", got)
	}
}

func TestPickupDurationCap(t *testing.T) {
	e := NewDurationEstimator(DefaultDurationConfig())

	// 1800 + 70*60 + 2*600 lands exactly on the 7200s ceiling.
	atCap := &domain.MovingJob{Inventory: domain.Inventory{TotalItems: 70, Floors: 3}}
	if got := e.PickupDuration(atCap); got != 7200 {
		t.Fatalf("pickup duration = %d, want exactly 7200", got)
	}

	// One more item must not exceed the cap.
	overCap := &domain.MovingJob{Inventory: domain.Inventory{TotalItems: 71, Floors: 3}}
	if got := e.PickupDuration(overCap); got != 7200 {
		t.Fatalf("pickup duration = %d, want capped at 7200", got)
	}
}

func TestPickupDurationGroundFloorHasNoSurcharge(t *testing.T) {
	e := NewDurationEstimator(DefaultDurationConfig())

	job := &domain.MovingJob{Inventory: domain.Inventory{TotalItems: 0, Floors: 1}}
	if got := e.PickupDuration(job); got != 1800 {
		t.Fatalf("pickup duration = %d, want base 1800", got)
	}
}

func TestDeliveryDurationMultiplier(t *testing.T) {
	e := NewDurationEstimator(DefaultDurationConfig())

	job := &domain.MovingJob{Inventory: domain.Inventory{TotalItems: 10, Floors: 1}}

	// pickup = 2400, delivery = 2400 * 1.3
	if got := e.DeliveryDuration(job); got != 3120 {
		t.Fatalf("delivery duration = %d, want 3120", got)
	}
}
