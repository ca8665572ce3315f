package services

import (
	"math"

	"tour-planning-service/internal/domain"
)

// DurationConfig parameterizes service-time estimation. Injected at
// construction so operators can tune loading economics without code changes.
type DurationConfig struct {
	BaseSeconds          int
	SecondsPerItem       int
	SecondsPerExtraFloor int
	CapSeconds           int
	DeliveryFactor       float64
}

func DefaultDurationConfig() DurationConfig {
	return DurationConfig{
		BaseSeconds:          1800,
		SecondsPerItem:       60,
		SecondsPerExtraFloor: 600,
		CapSeconds:           7200,
		DeliveryFactor:       1.3,
	}
}

// DurationEstimator maps a job's declared inventory size and floor count to
// an estimated on-site service duration.
type DurationEstimator struct {
	cfg DurationConfig
}

func NewDurationEstimator(cfg DurationConfig) *DurationEstimator {
	return &DurationEstimator{cfg: cfg}
}

// PickupDuration estimates loading time in seconds: a base allowance plus a
// per-item and per-extra-floor surcharge, capped at the configured ceiling.
func (e *DurationEstimator) PickupDuration(job *domain.MovingJob) int {
	seconds := e.cfg.BaseSeconds
	seconds += job.Inventory.TotalItems * e.cfg.SecondsPerItem

	if job.Inventory.Floors > 1 {
		seconds += (job.Inventory.Floors - 1) * e.cfg.SecondsPerExtraFloor
	}

	if seconds > e.cfg.CapSeconds {
		return e.cfg.CapSeconds
	}
	return seconds
}

// DeliveryDuration estimates unloading time. Unloading is empirically slower
// than loading (unpacking, placement), expressed as a fixed multiplier on the
// pickup estimate to keep the two in sync.
func (e *DurationEstimator) DeliveryDuration(job *domain.MovingJob) int {
	return int(math.Round(float64(e.PickupDuration(job)) * e.cfg.DeliveryFactor))
}
