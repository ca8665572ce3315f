package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"tour-planning-service/internal/api/dto"
	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/ports"
)

type JobHandler struct {
	Repo ports.JobRepository
}

// List returns every staged job, highest priority first.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Repo.ListJobs(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not load jobs")
		return
	}

	res := dto.ListJobsResponse{Success: true, Jobs: make([]dto.JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		res.Jobs = append(res.Jobs, jobResponse(j))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Create stages one job for later optimization runs. Used by the CRM sync and
// by the simulation tooling; an omitted ID gets a generated one.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	job, msg := jobFromRequest(req)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	if err := h.Repo.SaveJob(r.Context(), job); err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not save job")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreateJobResponse{Success: true, Job: jobResponse(job)})
}

func jobFromRequest(req dto.JobRequest) (*domain.MovingJob, string) {
	kind := domain.JobKind(req.Kind)
	if kind != domain.JobKindPickupDelivery && kind != domain.JobKindService {
		return nil, "kind must be pickup_delivery or service"
	}

	if strings.TrimSpace(req.Pickup.Address) == "" {
		return nil, "pickup address is required"
	}
	if kind == domain.JobKindPickupDelivery && (req.Delivery == nil || strings.TrimSpace(req.Delivery.Address) == "") {
		return nil, "delivery address is required for pickup_delivery jobs"
	}

	priority := req.Priority
	if priority == 0 {
		priority = 3
	}
	if priority < 1 || priority > 5 {
		return nil, "priority must be between 1 and 5"
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	job := &domain.MovingJob{
		ID:       id,
		Kind:     kind,
		Pickup:   legFromDTO(req.Pickup),
		Priority: priority,
		Inventory: domain.Inventory{
			TotalItems: req.TotalItems,
			Floors:     req.Floors,
		},
		Demand: req.Demand,
	}
	if req.Delivery != nil {
		job.Delivery = legFromDTO(*req.Delivery)
	}

	return job, ""
}

func legFromDTO(l dto.LegDTO) domain.Leg {
	leg := domain.Leg{
		Address:  l.Address,
		Location: toCoordinates(l.Location),
	}
	if l.Earliest != nil && l.Latest != nil {
		leg.TimeWindow = &domain.TimeWindow{Earliest: *l.Earliest, Latest: *l.Latest}
	}
	return leg
}

func jobResponse(j *domain.MovingJob) dto.JobResponse {
	res := dto.JobResponse{
		ID:         j.ID,
		Kind:       string(j.Kind),
		Pickup:     legToDTO(j.Pickup),
		Priority:   j.Priority,
		TotalItems: j.Inventory.TotalItems,
		Floors:     j.Inventory.Floors,
		Demand:     j.Demand,
	}
	if j.Kind == domain.JobKindPickupDelivery {
		delivery := legToDTO(j.Delivery)
		res.Delivery = &delivery
	}
	return res
}

func legToDTO(l domain.Leg) dto.LegDTO {
	d := dto.LegDTO{
		Address:  l.Address,
		Location: dto.CoordinatesDTO{Lat: l.Location.Lat, Lng: l.Location.Lon},
	}
	if l.TimeWindow != nil {
		earliest, latest := l.TimeWindow.Earliest, l.TimeWindow.Latest
		d.Earliest = &earliest
		d.Latest = &latest
	}
	return d
}
