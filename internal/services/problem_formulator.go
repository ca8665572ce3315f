package services

import (
	"errors"
	"fmt"
	"time"

	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/ports"
)

// TruckSpec describes the fleet's vehicle type. Dimensional limits and daily
// bounds are business constraints, not solver internals, and come from
// configuration.
type TruckSpec struct {
	HeightMeters      float64
	WidthMeters       float64
	LengthMeters      float64
	GrossWeightKg     float64
	CapacityUnits     int
	MaxDailyDistanceM int
	MaxShiftSeconds   int
	SkillTag          string
	Profile           string
	CostPerMeter      float64
	CostPerSecond     float64
}

func DefaultTruckSpec() TruckSpec {
	return TruckSpec{
		HeightMeters:      3.5,
		WidthMeters:       2.5,
		LengthMeters:      8.0,
		GrossWeightKg:     7500,
		CapacityUnits:     10,
		MaxDailyDistanceM: 500_000,
		MaxShiftSeconds:   12 * 3600,
		SkillTag:          "moving_truck",
		Profile:           "truck",
		CostPerMeter:      0.0005,
		CostPerSecond:     0.008,
	}
}

// WorkingHours anchors default task time windows: a 10-hour operating day
// unless a job declares its own window.
type WorkingHours struct {
	StartHour int
	EndHour   int
}

func DefaultWorkingHours() WorkingHours { return WorkingHours{StartHour: 8, EndHour: 18} }

// OptimizeOptions tunes one optimization run.
type OptimizeOptions struct {
	// VehicleCount is the number of routes to produce. Defaults to 1.
	VehicleCount int
	// Day anchors shift and time-window boundaries. Zero means today (UTC).
	Day time.Time
	// DefaultDemand is the capacity units consumed by a pickup/delivery job
	// that declares none. Defaults to 1.
	DefaultDemand int
}

const singleRouteShiftSeconds = 24 * 3600

// ProblemFormulator builds solver problem descriptions from moving jobs.
type ProblemFormulator struct {
	durations *DurationEstimator
	truck     TruckSpec
	hours     WorkingHours
}

func NewProblemFormulator(durations *DurationEstimator, truck TruckSpec, hours WorkingHours) *ProblemFormulator {
	return &ProblemFormulator{durations: durations, truck: truck, hours: hours}
}

// BuildFleetProblem formulates the "optimize everything" problem: N vehicles
// of the configured type anchored at the depot, one task (or task pair) per
// job, and objectives that minimize vehicle count and travel time.
func (f *ProblemFormulator) BuildFleetProblem(jobs []*domain.MovingJob, depot domain.Coordinates, opts OptimizeOptions) (*ports.Problem, error) {
	vehicleCount := opts.VehicleCount
	if vehicleCount < 1 {
		vehicleCount = 1
	}

	return f.build(jobs, depot, opts, vehicleCount, f.truck.MaxDailyDistanceM, f.truck.MaxShiftSeconds)
}

// BuildSingleRouteProblem formulates the "sequence one route" problem: the
// caller has already grouped the jobs and only wants ordering, so the fleet
// is one vehicle with a loose 24-hour shift and no distance limit.
func (f *ProblemFormulator) BuildSingleRouteProblem(jobs []*domain.MovingJob, depot domain.Coordinates, opts OptimizeOptions) (*ports.Problem, error) {
	return f.build(jobs, depot, opts, 1, 0, singleRouteShiftSeconds)
}

func (f *ProblemFormulator) build(
	jobs []*domain.MovingJob,
	depot domain.Coordinates,
	opts OptimizeOptions,
	vehicleCount int,
	maxDistance int,
	maxShiftSeconds int,
) (*ports.Problem, error) {
	if len(jobs) == 0 {
		return nil, errors.New("build problem: job list must not be empty")
	}

	day := opts.Day
	if day.IsZero() {
		day = time.Now().UTC()
	}
	day = day.UTC().Truncate(24 * time.Hour)

	defaultDemand := opts.DefaultDemand
	if defaultDemand < 1 {
		defaultDemand = 1
	}

	shiftStart := day.Add(time.Duration(f.hours.StartHour) * time.Hour)
	shiftEnd := shiftStart.Add(time.Duration(maxShiftSeconds) * time.Second)
	defaultWindow := ports.SolverTimeWindow{
		Earliest: shiftStart.Unix(),
		Latest:   day.Add(time.Duration(f.hours.EndHour) * time.Hour).Unix(),
	}

	depotAddress := ports.Address{LocationID: "depot", Lat: depot.Lat, Lon: depot.Lon}

	problem := &ports.Problem{
		VehicleTypes: []ports.VehicleType{{
			ID:            f.truck.SkillTag,
			Profile:       f.truck.Profile,
			Capacity:      []int{f.truck.CapacityUnits},
			CostPerMeter:  f.truck.CostPerMeter,
			CostPerSecond: f.truck.CostPerSecond,
		}},
		Objectives: []ports.Objective{
			{Type: "min", Value: "vehicles"},
			{Type: "min", Value: "transport_time"},
		},
	}

	for i := 0; i < vehicleCount; i++ {
		problem.Vehicles = append(problem.Vehicles, ports.Vehicle{
			ID:             fmt.Sprintf("truck-%d", i+1),
			TypeID:         f.truck.SkillTag,
			StartAddress:   depotAddress,
			EarliestStart:  shiftStart.Unix(),
			LatestEnd:      shiftEnd.Unix(),
			MaxDistance:    maxDistance,
			MaxDrivingTime: maxShiftSeconds,
			ReturnToDepot:  true,
			Skills:         []string{f.truck.SkillTag},
		})
	}

	for _, job := range jobs {
		if job.ID == "" {
			return nil, errors.New("build problem: job without ID")
		}

		switch job.Kind {
		case domain.JobKindPickupDelivery:
			demand := job.Demand
			if demand <= 0 {
				demand = defaultDemand
			}

			problem.Shipments = append(problem.Shipments, ports.Shipment{
				ID:   job.ID,
				Name: job.Pickup.Address,
				Pickup: ports.ShipmentStop{
					Address:     legAddress(job.ID+"-pickup", job.Pickup),
					Duration:    int64(f.durations.PickupDuration(job)),
					TimeWindows: windowsFor(job.Pickup, defaultWindow),
				},
				Delivery: ports.ShipmentStop{
					Address:     legAddress(job.ID+"-delivery", job.Delivery),
					Duration:    int64(f.durations.DeliveryDuration(job)),
					TimeWindows: windowsFor(job.Delivery, defaultWindow),
				},
				Size:     []int{demand},
				Priority: job.Priority,
			})

		case domain.JobKindService:
			// Service stops (inspection, estimate) are sequenced and
			// accounted for in duration but never consume capacity.
			problem.Services = append(problem.Services, ports.Service{
				ID:          job.ID,
				Name:        job.Pickup.Address,
				Address:     legAddress(job.ID+"-service", job.Pickup),
				Duration:    int64(f.durations.PickupDuration(job)),
				TimeWindows: windowsFor(job.Pickup, defaultWindow),
				Priority:    job.Priority,
			})

		default:
			return nil, fmt.Errorf("build problem: job %s has unknown kind %q", job.ID, job.Kind)
		}
	}

	return problem, nil
}

func legAddress(locationID string, leg domain.Leg) ports.Address {
	return ports.Address{
		LocationID: locationID,
		Lat:        leg.Location.Lat,
		Lon:        leg.Location.Lon,
	}
}

func windowsFor(leg domain.Leg, fallback ports.SolverTimeWindow) []ports.SolverTimeWindow {
	if leg.TimeWindow == nil {
		return []ports.SolverTimeWindow{fallback}
	}
	return []ports.SolverTimeWindow{{
		Earliest: leg.TimeWindow.Earliest.Unix(),
		Latest:   leg.TimeWindow.Latest.Unix(),
	}}
}
