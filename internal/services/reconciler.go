package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/ports"
)

// ErrSolverDegenerate marks a solution with zero tours and no explanation.
// Recovered by the caller via FallbackPartition, logged as a warning.
var ErrSolverDegenerate = errors.New("solver returned no tours and no unassigned explanation")

// Reconciler maps solver solutions back onto the original moving jobs.
type Reconciler struct {
	costs *CostEstimator
}

func NewReconciler(costs *CostEstimator) *Reconciler {
	return &Reconciler{costs: costs}
}

// Reconcile converts each solver route into a domain tour by resolving every
// activity's task reference back to an original job ID. A stop whose ID maps
// to no known job is dropped with a warning rather than corrupting order.
//
// If not a single activity across the whole solution maps, the result
// degrades to one tour holding every original job in input order: a naming or
// format mismatch yields "unoptimized but complete", never "silently empty".
// A solution whose unassigned list names every job is an explained answer,
// not a mapping failure, and passes through untouched.
func (r *Reconciler) Reconcile(solution *ports.Solution, originalJobs []*domain.MovingJob) []domain.ReconciledTour {
	byID := make(map[string]*domain.MovingJob, len(originalJobs))
	for _, job := range originalJobs {
		byID[job.ID] = job
	}

	tours := make([]domain.ReconciledTour, 0, len(solution.Routes))
	mapped := 0

	for _, route := range solution.Routes {
		tour := domain.ReconciledTour{
			Vehicle:           route.VehicleID,
			DistanceMeters:    route.Distance,
			DurationSeconds:   int(route.TransportTime),
			EstimatedFuelCost: r.costs.FuelCost(float64(route.Distance)),
		}

		seen := make(map[string]struct{})
		for _, act := range route.Activities {
			if act.Type == ports.ActivityStart || act.Type == ports.ActivityEnd {
				continue
			}

			job, ok := byID[act.ID]
			if !ok {
				log.Warn().
					Str("vehicle", route.VehicleID).
					Str("activity_id", act.ID).
					Str("activity_type", act.Type).
					Msg("Dropping solver stop that maps to no known job")
				continue
			}

			tour.Stops = append(tour.Stops, domain.TourStop{
				JobID:    job.ID,
				Activity: activityLabel(act.Type),
				ArriveAt: time.Unix(act.ArrTime, 0).UTC(),
				DepartAt: time.Unix(act.EndTime, 0).UTC(),
			})

			// A shipment contributes two activities; the job joins the
			// tour order at its first one.
			if _, dup := seen[job.ID]; !dup {
				seen[job.ID] = struct{}{}
				tour.Jobs = append(tour.Jobs, job)
				mapped++
			}
		}

		tours = append(tours, tour)
	}

	if mapped == 0 && len(solution.Routes) > 0 && len(originalJobs) > 0 && !allUnassigned(solution, originalJobs) {
		return r.inputOrderFallback(solution, originalJobs)
	}

	return tours
}

// allUnassigned reports whether the solver's unassigned list accounts for
// every original job.
func allUnassigned(solution *ports.Solution, jobs []*domain.MovingJob) bool {
	named := make(map[string]struct{}, len(solution.Unassigned.Services)+len(solution.Unassigned.Shipments))
	for _, id := range solution.Unassigned.Services {
		named[id] = struct{}{}
	}
	for _, id := range solution.Unassigned.Shipments {
		named[id] = struct{}{}
	}

	for _, job := range jobs {
		if _, ok := named[job.ID]; !ok {
			return false
		}
	}
	return true
}

// inputOrderFallback emits one tour holding the original jobs unreordered.
// Distinct from FallbackPartition: this path handles a malformed-but-200
// solution, not a failed solver call.
func (r *Reconciler) inputOrderFallback(solution *ports.Solution, originalJobs []*domain.MovingJob) []domain.ReconciledTour {
	log.Warn().
		Int("routes", len(solution.Routes)).
		Int("jobs", len(originalJobs)).
		Msg("No solver activity mapped to a known job; emitting tour in input order")

	return []domain.ReconciledTour{{
		Vehicle:           solution.Routes[0].VehicleID,
		Jobs:              originalJobs,
		DistanceMeters:    solution.Distance,
		DurationSeconds:   int(solution.Time),
		EstimatedFuelCost: r.costs.FuelCost(float64(solution.Distance)),
		Unoptimized:       true,
	}}
}

// ClassifyUnassigned reads the solver's per-job rejection reasons and flags
// time-window conflicts, the most common operator-actionable cause.
func (r *Reconciler) ClassifyUnassigned(solution *ports.Solution) []domain.UnassignedJob {
	details := make(map[string]ports.UnassignedDetail, len(solution.Unassigned.Details))
	for _, d := range solution.Unassigned.Details {
		details[d.ID] = d
	}

	ids := make([]string, 0, len(solution.Unassigned.Services)+len(solution.Unassigned.Shipments))
	ids = append(ids, solution.Unassigned.Services...)
	ids = append(ids, solution.Unassigned.Shipments...)

	out := make([]domain.UnassignedJob, 0, len(ids))
	for _, id := range ids {
		u := domain.UnassignedJob{JobID: id, Reason: domain.UnassignedReasonOther}
		if d, ok := details[id]; ok {
			u.Detail = d.Reason
			if isTimeWindowReason(d.Reason) {
				u.Reason = domain.UnassignedReasonTimeWindow
			}
		}
		out = append(out, u)
	}

	return out
}

func isTimeWindowReason(reason string) bool {
	s := strings.ToLower(reason)
	return strings.Contains(s, "time window") || strings.Contains(s, "time_window")
}

func activityLabel(activityType string) string {
	switch activityType {
	case ports.ActivityPickup:
		return "pickup"
	case ports.ActivityDeliver:
		return "delivery"
	case ports.ActivityService:
		return "service"
	default:
		return activityType
	}
}

// FallbackPartition deterministically buckets jobs across the available
// route slots when the solver call itself failed: highest-priority jobs fill
// the first slot, the rest round-robin over the remaining ones. A solver
// outage degrades to a usable manual-dispatch starting point, and every input
// job lands in exactly one tour.
func (r *Reconciler) FallbackPartition(jobs []*domain.MovingJob, slots int) []domain.ReconciledTour {
	if len(jobs) == 0 {
		return []domain.ReconciledTour{}
	}
	if slots < 1 {
		slots = 1
	}

	ordered := make([]*domain.MovingJob, len(jobs))
	copy(ordered, jobs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].ID < ordered[j].ID
	})

	tours := make([]domain.ReconciledTour, slots)
	for i := range tours {
		tours[i].Vehicle = fmt.Sprintf("fallback-%d", i+1)
	}

	if slots == 1 {
		tours[0].Jobs = ordered
		return tours
	}

	// Urgent bucket first, everything else spread over the remaining slots.
	rest := 0
	for _, job := range ordered {
		if job.Priority == 1 {
			tours[0].Jobs = append(tours[0].Jobs, job)
			continue
		}
		tours[1+rest%(slots-1)].Jobs = append(tours[1+rest%(slots-1)].Jobs, job)
		rest++
	}

	// Drop empty slots so callers never render vacant tours.
	out := tours[:0]
	for _, tr := range tours {
		if len(tr.Jobs) > 0 {
			out = append(out, tr)
		}
	}
	return out
}
