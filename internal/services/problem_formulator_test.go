package services

import (
	"testing"
	"time"

	"tour-planning-service/internal/domain"
)

func testFormulator() *ProblemFormulator {
	return NewProblemFormulator(
		NewDurationEstimator(DefaultDurationConfig()),
		DefaultTruckSpec(),
		DefaultWorkingHours(),
	)
}

func moveJob(id string, priority int) *domain.MovingJob {
	return &domain.MovingJob{
		ID:       id,
		Kind:     domain.JobKindPickupDelivery,
		Pickup:   domain.Leg{Address: "Alexanderplatz 1", Location: domain.Coordinates{Lat: 52.5219, Lon: 13.4132}},
		Delivery: domain.Leg{Address: "Marienplatz 1", Location: domain.Coordinates{Lat: 48.1374, Lon: 11.5755}},
		Priority: priority,
		Inventory: domain.Inventory{
			TotalItems: 20,
			Floors:     2,
		},
	}
}

func serviceJob(id string) *domain.MovingJob {
	return &domain.MovingJob{
		ID:       id,
		Kind:     domain.JobKindService,
		Pickup:   domain.Leg{Address: "Torstr. 5", Location: domain.Coordinates{Lat: 52.53, Lon: 13.40}},
		Priority: 3,
	}
}

func TestBuildFleetProblemEmitsPairedTasks(t *testing.T) {
	f := testFormulator()
	depot := domain.Coordinates{Lat: 52.52, Lon: 13.405}
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	problem, err := f.BuildFleetProblem(
		[]*domain.MovingJob{moveJob("job-1", 1), serviceJob("job-2")},
		depot,
		OptimizeOptions{VehicleCount: 3, Day: day},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(problem.Vehicles) != 3 {
		t.Fatalf("vehicles = %d, want 3", len(problem.Vehicles))
	}
	if len(problem.Shipments) != 1 {
		t.Fatalf("shipments = %d, want 1", len(problem.Shipments))
	}
	if len(problem.Services) != 1 {
		t.Fatalf("services = %d, want 1", len(problem.Services))
	}

	sh := problem.Shipments[0]
	if sh.ID != "job-1" {
		t.Fatalf("shipment id = %q, want job-1", sh.ID)
	}
	if sh.Size[0] != 1 {
		t.Fatalf("shipment size = %d, want default demand 1", sh.Size[0])
	}

	// pickup 1800 + 20*60 + 600 = 3600, delivery 3600 * 1.3
	if sh.Pickup.Duration != 3600 {
		t.Fatalf("pickup duration = %d, want 3600", sh.Pickup.Duration)
	}
	if sh.Delivery.Duration != 4680 {
		t.Fatalf("delivery duration = %d, want 4680", sh.Delivery.Duration)
	}

	// Default windows span the configured 10-hour operating day.
	tw := sh.Pickup.TimeWindows[0]
	if got := tw.Latest - tw.Earliest; got != 10*3600 {
		t.Fatalf("default window = %ds, want 10h", got)
	}

	for _, v := range problem.Vehicles {
		if v.StartAddress.Lat != depot.Lat || v.StartAddress.Lon != depot.Lon {
			t.Fatalf("vehicle %s not anchored at depot", v.ID)
		}
		if !v.ReturnToDepot {
			t.Fatalf("vehicle %s must return to depot", v.ID)
		}
	}
}

func TestBuildFleetProblemRespectsDeclaredWindow(t *testing.T) {
	f := testFormulator()

	job := moveJob("job-1", 2)
	earliest := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	latest := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	job.Pickup.TimeWindow = &domain.TimeWindow{Earliest: earliest, Latest: latest}

	problem, err := f.BuildFleetProblem([]*domain.MovingJob{job}, domain.Coordinates{Lat: 52.52, Lon: 13.405}, OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tw := problem.Shipments[0].Pickup.TimeWindows[0]
	if tw.Earliest != earliest.Unix() || tw.Latest != latest.Unix() {
		t.Fatalf("window = [%d,%d], want declared [%d,%d]", tw.Earliest, tw.Latest, earliest.Unix(), latest.Unix())
	}
}

// A job with zero demand and no window still becomes a service task rather
// than being rejected.
func TestBuildFleetProblemZeroDemandServiceJob(t *testing.T) {
	f := testFormulator()

	job := serviceJob("inspection-1")
	job.Demand = 0

	problem, err := f.BuildFleetProblem([]*domain.MovingJob{job}, domain.Coordinates{Lat: 52.52, Lon: 13.405}, OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(problem.Services) != 1 || len(problem.Shipments) != 0 {
		t.Fatalf("services=%d shipments=%d, want 1/0", len(problem.Services), len(problem.Shipments))
	}
	if len(problem.Services[0].TimeWindows) != 1 {
		t.Fatalf("service task must carry the default window")
	}
}

func TestBuildSingleRouteProblem(t *testing.T) {
	f := testFormulator()

	problem, err := f.BuildSingleRouteProblem(
		[]*domain.MovingJob{moveJob("job-1", 1), moveJob("job-2", 2)},
		domain.Coordinates{Lat: 52.52, Lon: 13.405},
		OptimizeOptions{VehicleCount: 5}, // ignored in single-route mode
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(problem.Vehicles) != 1 {
		t.Fatalf("vehicles = %d, want 1 in single-route mode", len(problem.Vehicles))
	}

	v := problem.Vehicles[0]
	if v.MaxDistance != 0 {
		t.Fatalf("max distance = %d, want unconstrained", v.MaxDistance)
	}
	if v.MaxDrivingTime != 24*3600 {
		t.Fatalf("max driving time = %d, want 24h shift", v.MaxDrivingTime)
	}
}

func TestBuildFleetProblemRejectsEmptyJobs(t *testing.T) {
	f := testFormulator()

	if _, err := f.BuildFleetProblem(nil, domain.Coordinates{}, OptimizeOptions{}); err == nil {
		t.Fatal("expected error for empty job list")
	}
}

// Every task ID is traceable back to exactly one job ID.
func TestBuildFleetProblemTaskIDsTraceable(t *testing.T) {
	f := testFormulator()

	jobs := []*domain.MovingJob{moveJob("a", 1), moveJob("b", 2), serviceJob("c")}
	problem, err := f.BuildFleetProblem(jobs, domain.Coordinates{Lat: 52.52, Lon: 13.405}, OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	known := map[string]bool{"a": true, "b": true, "c": true}
	seen := map[string]bool{}

	for _, s := range problem.Shipments {
		if !known[s.ID] || seen[s.ID] {
			t.Fatalf("shipment id %q not traceable to exactly one job", s.ID)
		}
		seen[s.ID] = true
	}
	for _, s := range problem.Services {
		if !known[s.ID] || seen[s.ID] {
			t.Fatalf("service id %q not traceable to exactly one job", s.ID)
		}
		seen[s.ID] = true
	}
	if len(seen) != len(jobs) {
		t.Fatalf("tasks cover %d jobs, want %d", len(seen), len(jobs))
	}
}
