package domain

import "time"

// TourStop is a single visit within a reconciled tour.
type TourStop struct {
	JobID    string
	Activity string // pickup, delivery or service
	ArriveAt time.Time
	DepartAt time.Time
}

// ReconciledTour is the domain-facing result of mapping one solver route back
// onto the original moving jobs. Jobs appear in visit order, each exactly once.
// Distance and duration come from solver-reported statistics, never recomputed.
type ReconciledTour struct {
	Vehicle           string
	Jobs              []*MovingJob
	Stops             []TourStop
	DistanceMeters    int
	DurationSeconds   int
	EstimatedFuelCost float64

	// Unoptimized marks a tour emitted in input order because no solver
	// activity could be mapped back to a known job ID.
	Unoptimized bool
}

// UnassignedReason classifies why the solver left a job out of every route.
type UnassignedReason string

const (
	// The job's time window cannot be met. The most common
	// operator-actionable cause, surfaced distinctly in the UI.
	UnassignedReasonTimeWindow UnassignedReason = "time_window"
	// Capacity, skill or distance conflicts, or an unexplained rejection.
	UnassignedReasonOther UnassignedReason = "other"
)

// UnassignedJob is a job the solver could not place into any route.
type UnassignedJob struct {
	JobID  string
	Reason UnassignedReason
	Detail string // solver's free-text explanation, verbatim
}

// FleetSummary aggregates a full optimization result.
type FleetSummary struct {
	TourCount            int
	TotalDistanceMeters  int
	TotalDurationSeconds int
	TotalFuelCost        float64
	UnassignedCount      int
}
