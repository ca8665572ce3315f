package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/geo"
	"tour-planning-service/internal/ports"
)

// ErrInsufficientRouteData is returned when a device reported fewer than two
// positions for the requested day. Recovered at the boundary as a
// "not enough data" result, never shown as a failure.
var ErrInsufficientRouteData = errors.New("not enough telemetry data for the requested day")

const defaultHistoryLimit = 5000

// TourPlanner is the orchestration surface over problem formulation, solver
// submission, solution reconciliation and telemetry route reconstruction.
// It is the single boundary where typed failures become operator-facing
// results; lower layers only return values or raise.
type TourPlanner struct {
	solver     ports.RouteSolver
	telemetry  ports.PositionSource
	tracks     ports.TrackCache // optional, nil disables caching
	formulator *ProblemFormulator
	reconciler *Reconciler

	historyLimit int
	now          func() time.Time
}

func NewTourPlanner(
	solver ports.RouteSolver,
	telemetry ports.PositionSource,
	tracks ports.TrackCache,
	formulator *ProblemFormulator,
	reconciler *Reconciler,
) *TourPlanner {
	return &TourPlanner{
		solver:       solver,
		telemetry:    telemetry,
		tracks:       tracks,
		formulator:   formulator,
		reconciler:   reconciler,
		historyLimit: defaultHistoryLimit,
		now:          time.Now,
	}
}

// OptimizeResult is the outcome of a fleet optimization run. Degraded marks
// tours produced by the priority fallback after a solver failure.
type OptimizeResult struct {
	Tours      []domain.ReconciledTour
	Unassigned []domain.UnassignedJob
	Summary    domain.FleetSummary
	Degraded   bool
	Warning    string
}

// OptimizeTours assigns and sequences every job across the fleet.
//
// An empty job list short-circuits to an empty successful result without a
// solver call. A solver failure or degenerate solution degrades to the
// deterministic priority partition instead of a hard failure.
func (p *TourPlanner) OptimizeTours(ctx context.Context, jobs []*domain.MovingJob, depot domain.Coordinates, opts OptimizeOptions) (*OptimizeResult, error) {
	if len(jobs) == 0 {
		return &OptimizeResult{
			Tours:      []domain.ReconciledTour{},
			Unassigned: []domain.UnassignedJob{},
		}, nil
	}

	problem, err := p.formulator.BuildFleetProblem(jobs, depot, opts)
	if err != nil {
		return nil, fmt.Errorf("optimize tours: %w", err)
	}

	solution, err := p.solver.Solve(ctx, problem)
	if err != nil {
		logSolverFailure(err)
		return p.degradedResult(jobs, len(problem.Vehicles), err), nil
	}

	if isDegenerate(solution) {
		log.Warn().Int("jobs", len(jobs)).Msg("Solver returned zero tours with no explanation")
		return p.degradedResult(jobs, len(problem.Vehicles), ErrSolverDegenerate), nil
	}

	tours := p.reconciler.Reconcile(solution, jobs)
	unassigned := p.reconciler.ClassifyUnassigned(solution)

	return &OptimizeResult{
		Tours:      tours,
		Unassigned: unassigned,
		Summary:    summarize(tours, unassigned),
	}, nil
}

func (p *TourPlanner) degradedResult(jobs []*domain.MovingJob, slots int, cause error) *OptimizeResult {
	tours := p.reconciler.FallbackPartition(jobs, slots)
	return &OptimizeResult{
		Tours:      tours,
		Unassigned: []domain.UnassignedJob{},
		Summary:    summarize(tours, nil),
		Degraded:   true,
		Warning:    OperatorMessage(cause),
	}
}

// CalculateRoute sequences an already-grouped set of jobs into one route.
// Unlike OptimizeTours there is no fallback here: the caller asked for a
// sequencing answer and gets a distinguishable failure instead of a guess.
func (p *TourPlanner) CalculateRoute(ctx context.Context, jobs []*domain.MovingJob, depot domain.Coordinates, opts OptimizeOptions) (*domain.ReconciledTour, error) {
	problem, err := p.formulator.BuildSingleRouteProblem(jobs, depot, opts)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	solution, err := p.solver.Solve(ctx, problem)
	if err != nil {
		logSolverFailure(err)
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	tours := p.reconciler.Reconcile(solution, jobs)
	if len(tours) == 0 {
		return nil, fmt.Errorf("calculate route: %w", ErrSolverDegenerate)
	}

	return &tours[0], nil
}

// RouteRequest is one branch of a multi-route calculation.
type RouteRequest struct {
	Jobs    []*domain.MovingJob
	Depot   domain.Coordinates
	Options OptimizeOptions
}

// RouteResult carries one branch's tour or its error. Partial success across
// branches is expected.
type RouteResult struct {
	Index int
	Tour  *domain.ReconciledTour
	Err   error
}

// CalculateRoutes fans out independent single-route calculations and joins on
// completion. A failing branch is captured in its own result and never
// cancels its siblings.
func (p *TourPlanner) CalculateRoutes(ctx context.Context, requests []RouteRequest) []RouteResult {
	workers := pool.NewWithResults[RouteResult]().WithMaxGoroutines(4)

	for i, req := range requests {
		i, req := i, req
		workers.Go(func() RouteResult {
			tour, err := p.CalculateRoute(ctx, req.Jobs, req.Depot, req.Options)
			return RouteResult{Index: i, Tour: tour, Err: err}
		})
	}

	results := workers.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].Index < results[b].Index })
	return results
}

// PointToPointRoute estimates the truck travel leg between two coordinates by
// submitting a minimal one-shipment problem.
func (p *TourPlanner) PointToPointRoute(ctx context.Context, from, to domain.Coordinates) (*domain.ReconciledTour, error) {
	job := &domain.MovingJob{
		ID:       "point-to-point",
		Kind:     domain.JobKindPickupDelivery,
		Pickup:   domain.Leg{Address: "origin", Location: from},
		Delivery: domain.Leg{Address: "destination", Location: to},
		Priority: 1,
		Demand:   1,
	}

	tour, err := p.CalculateRoute(ctx, []*domain.MovingJob{job}, from, OptimizeOptions{})
	if err != nil {
		return nil, fmt.Errorf("point to point route: %w", err)
	}
	return tour, nil
}

// TruckStatus joins the telemetry provider's device registry with the latest
// position per device.
func (p *TourPlanner) TruckStatus(ctx context.Context) ([]domain.TruckStatus, error) {
	devices, err := p.telemetry.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("truck status: %w", err)
	}

	latest, err := p.telemetry.LatestPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("truck status: %w", err)
	}

	byDevice := make(map[string]domain.Position, len(latest))
	for _, pos := range latest {
		byDevice[pos.DeviceID] = pos
	}

	statuses := make([]domain.TruckStatus, 0, len(devices))
	for _, d := range devices {
		s := domain.TruckStatus{
			DeviceID:   d.ID,
			Name:       d.Name,
			Online:     d.Status == "online",
			LastUpdate: d.LastUpdate,
		}
		if pos, ok := byDevice[d.ID]; ok {
			pos := pos
			s.LastPosition = &pos
		}
		statuses = append(statuses, s)
	}

	return statuses, nil
}

// TruckHistoryResult reports a reconstructed daily route, or that the device
// did not report enough positions to build one.
type TruckHistoryResult struct {
	Route         *domain.DailyRoute
	NotEnoughData bool
	PositionCount int
}

// TruckHistory reconstructs a vehicle's movement for one UTC day: endpoints,
// aggregate statistics and qualified stop events. Past days are served
// through the track cache when one is configured; today's track is always
// fetched live because it is still growing.
func (p *TourPlanner) TruckHistory(ctx context.Context, deviceID string, date time.Time) (*TruckHistoryResult, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	from := day
	to := day.Add(24*time.Hour - time.Second)

	finishedDay := day.Add(24 * time.Hour).Before(p.now().UTC())

	var positions []domain.Position
	cached := false

	if p.tracks != nil && finishedDay {
		track, hit, err := p.tracks.GetTrack(ctx, deviceID, day)
		if err != nil {
			log.Warn().Err(err).Str("device", deviceID).Msg("Track cache read failed")
		} else if hit {
			positions = track
			cached = true
		}
	}

	if !cached {
		var err error
		positions, err = p.telemetry.Positions(ctx, deviceID, from, to, p.historyLimit)
		if err != nil {
			return nil, fmt.Errorf("truck history: %w", err)
		}

		if p.tracks != nil && finishedDay && len(positions) > 0 {
			if err := p.tracks.PutTrack(ctx, deviceID, day, positions); err != nil {
				log.Warn().Err(err).Str("device", deviceID).Msg("Track cache write failed")
			}
		}
	}

	if len(positions) < 2 {
		return &TruckHistoryResult{NotEnoughData: true, PositionCount: len(positions)}, nil
	}

	stats, err := geo.TrackStatistics(positions)
	if err != nil {
		// Length was pre-checked; anything else is a programming error.
		return nil, fmt.Errorf("truck history: %w", err)
	}

	return &TruckHistoryResult{
		PositionCount: len(positions),
		Route: &domain.DailyRoute{
			DeviceID:   deviceID,
			Date:       day,
			Positions:  positions,
			Statistics: stats,
			Stops:      geo.DetectStops(positions, geo.DefaultStopSpeedKmh, geo.DefaultMinStopDuration),
			Start:      positions[0],
			End:        positions[len(positions)-1],
		},
	}, nil
}

// IntegrationCheck is one branch of the integration self-test.
type IntegrationCheck struct {
	System string
	OK     bool
	Detail string
	Error  string
}

// TestIntegrations probes the solver and the telemetry provider concurrently.
// Each branch captures its own failure; partial success (routing works,
// tracking unconfigured) is an expected outcome.
func (p *TourPlanner) TestIntegrations(ctx context.Context, depot domain.Coordinates) []IntegrationCheck {
	workers := pool.NewWithResults[IntegrationCheck]()

	workers.Go(func() IntegrationCheck {
		probe := &domain.MovingJob{
			ID:       "integration-probe",
			Kind:     domain.JobKindService,
			Pickup:   domain.Leg{Address: "depot", Location: depot},
			Priority: 5,
		}

		_, err := p.CalculateRoute(ctx, []*domain.MovingJob{probe}, depot, OptimizeOptions{})
		if err != nil {
			return IntegrationCheck{System: ports.SystemSolver, Error: OperatorMessage(err)}
		}
		return IntegrationCheck{System: ports.SystemSolver, OK: true, Detail: "probe route solved"}
	})

	workers.Go(func() IntegrationCheck {
		devices, err := p.telemetry.Devices(ctx)
		if err != nil {
			return IntegrationCheck{System: ports.SystemTelemetry, Error: OperatorMessage(err)}
		}
		return IntegrationCheck{
			System: ports.SystemTelemetry,
			OK:     true,
			Detail: fmt.Sprintf("%d devices registered", len(devices)),
		}
	})

	checks := workers.Wait()
	sort.Slice(checks, func(a, b int) bool { return checks[a].System < checks[b].System })
	return checks
}

func summarize(tours []domain.ReconciledTour, unassigned []domain.UnassignedJob) domain.FleetSummary {
	s := domain.FleetSummary{
		TourCount:       len(tours),
		UnassignedCount: len(unassigned),
	}
	for _, t := range tours {
		s.TotalDistanceMeters += t.DistanceMeters
		s.TotalDurationSeconds += t.DurationSeconds
		s.TotalFuelCost += t.EstimatedFuelCost
	}
	return s
}

func isDegenerate(solution *ports.Solution) bool {
	return len(solution.Routes) == 0 &&
		len(solution.Unassigned.Services) == 0 &&
		len(solution.Unassigned.Shipments) == 0 &&
		len(solution.Unassigned.Details) == 0
}

func logSolverFailure(err error) {
	var auth *ports.AuthError
	if errors.As(err, &auth) {
		// Operational misconfiguration, not a transient condition.
		log.Error().Err(err).Msg("Solver rejected the configured credentials")
		return
	}
	log.Warn().Err(err).Msg("Solver call failed")
}

// OperatorMessage renders a typed failure as the human-readable string
// surfaced in {success:false} envelopes. It always names the external system
// that failed so operators can tell "fleet optimization is down" from
// "tracking is unconfigured".
func OperatorMessage(err error) string {
	var auth *ports.AuthError
	if errors.As(err, &auth) {
		return fmt.Sprintf("the %s rejected the configured credentials; check the API key", systemLabel(auth.System))
	}

	var validation *ports.ValidationError
	if errors.As(err, &validation) {
		msg := fmt.Sprintf("the %s rejected the request", systemLabel(validation.System))
		if len(validation.Causes) > 0 {
			msg += ": " + validation.Causes[0].Message
		}
		return msg
	}

	var transport *ports.TransportError
	if errors.As(err, &transport) {
		return fmt.Sprintf("could not reach the %s; try again later", systemLabel(transport.System))
	}

	if errors.Is(err, ErrSolverDegenerate) {
		return "the route optimization service returned an unusable result; tours were partitioned by priority"
	}

	if errors.Is(err, ErrInsufficientRouteData) {
		return "not enough tracking data recorded for the requested day"
	}

	return err.Error()
}

func systemLabel(system string) string {
	switch system {
	case ports.SystemSolver:
		return "route optimization service"
	case ports.SystemTelemetry:
		return "vehicle tracking service"
	default:
		return system
	}
}
