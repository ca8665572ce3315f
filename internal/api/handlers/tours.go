package handlers

import (
	"net/http"

	"tour-planning-service/internal/api/dto"
	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/ports"
	"tour-planning-service/internal/services"
)

type TourHandler struct {
	Planner             *services.TourPlanner
	Repo                ports.JobRepository
	DefaultDepot        domain.Coordinates
	DefaultVehicleCount int
}

// Optimize runs a full fleet optimization over the selected jobs. An empty
// job_ids list means "everything currently staged".
func (h *TourHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	jobs, ok := h.loadJobs(w, r, req.JobIDs, true)
	if !ok {
		return
	}

	opts := services.OptimizeOptions{VehicleCount: req.VehicleCount}
	if opts.VehicleCount < 1 {
		opts.VehicleCount = h.DefaultVehicleCount
	}
	if req.Day != nil {
		opts.Day = *req.Day
	}

	result, err := h.Planner.OptimizeTours(r.Context(), jobs, h.depotOr(req.Depot), opts)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, optimizeResponse(result))
}

// CalculateRoute sequences one pre-grouped set of jobs into a single route.
func (h *TourHandler) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateRouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	jobs, ok := h.loadJobs(w, r, req.JobIDs, false)
	if !ok {
		return
	}

	tour, err := h.Planner.CalculateRoute(r.Context(), jobs, h.depotOr(req.Depot), services.OptimizeOptions{})
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CalculateRouteResponse{Success: true, Tour: tourResponse(*tour)})
}

// CalculateRoutes runs several independent single-route calculations in one
// request. Branches succeed or fail individually.
func (h *TourHandler) CalculateRoutes(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateRoutesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Routes) == 0 {
		writeError(w, r, http.StatusBadRequest, "routes must not be empty")
		return
	}

	requests := make([]services.RouteRequest, 0, len(req.Routes))
	for _, branch := range req.Routes {
		jobs, ok := h.loadJobs(w, r, branch.JobIDs, false)
		if !ok {
			return
		}
		requests = append(requests, services.RouteRequest{
			Jobs:  jobs,
			Depot: h.depotOr(branch.Depot),
		})
	}

	results := h.Planner.CalculateRoutes(r.Context(), requests)

	res := dto.CalculateRoutesResponse{Success: true, Routes: make([]dto.RouteBranchResponse, 0, len(results))}
	for _, result := range results {
		branch := dto.RouteBranchResponse{Success: result.Err == nil}
		if result.Err != nil {
			branch.Error = services.OperatorMessage(result.Err)
		} else {
			tour := tourResponse(*result.Tour)
			branch.Tour = &tour
		}
		res.Routes = append(res.Routes, branch)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// PointToPoint estimates the truck travel leg between two coordinates.
func (h *TourHandler) PointToPoint(w http.ResponseWriter, r *http.Request) {
	var req dto.PointToPointRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tour, err := h.Planner.PointToPointRoute(r.Context(), toCoordinates(req.From), toCoordinates(req.To))
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CalculateRouteResponse{Success: true, Tour: tourResponse(*tour)})
}

// loadJobs resolves job IDs against the repository. With allowAll set, an
// empty ID list loads every staged job instead of failing.
func (h *TourHandler) loadJobs(w http.ResponseWriter, r *http.Request, ids []string, allowAll bool) ([]*domain.MovingJob, bool) {
	if len(ids) == 0 {
		if !allowAll {
			writeError(w, r, http.StatusBadRequest, "job_ids must not be empty")
			return nil, false
		}

		jobs, err := h.Repo.ListJobs(r.Context())
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "could not load jobs")
			return nil, false
		}
		return jobs, true
	}

	jobs, err := h.Repo.GetJobs(r.Context(), ids)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not load jobs")
		return nil, false
	}
	if len(jobs) != len(ids) {
		writeError(w, r, http.StatusBadRequest, "one or more job_ids are unknown")
		return nil, false
	}
	return jobs, true
}

func (h *TourHandler) depotOr(c dto.CoordinatesDTO) domain.Coordinates {
	if c.Lat == 0 && c.Lng == 0 {
		return h.DefaultDepot
	}
	return toCoordinates(c)
}

func optimizeResponse(result *services.OptimizeResult) dto.OptimizeResponse {
	res := dto.OptimizeResponse{
		Success:    true,
		Tours:      make([]dto.TourResponse, 0, len(result.Tours)),
		Unassigned: make([]dto.UnassignedJobResponse, 0, len(result.Unassigned)),
		Summary: dto.FleetSummaryResponse{
			TourCount:            result.Summary.TourCount,
			TotalDistanceMeters:  result.Summary.TotalDistanceMeters,
			TotalDurationSeconds: result.Summary.TotalDurationSeconds,
			TotalFuelCost:        result.Summary.TotalFuelCost,
			UnassignedCount:      result.Summary.UnassignedCount,
		},
		Degraded: result.Degraded,
		Warning:  result.Warning,
	}

	for _, t := range result.Tours {
		res.Tours = append(res.Tours, tourResponse(t))
	}
	for _, u := range result.Unassigned {
		res.Unassigned = append(res.Unassigned, dto.UnassignedJobResponse{
			JobID:  u.JobID,
			Reason: string(u.Reason),
			Detail: u.Detail,
		})
	}

	return res
}
