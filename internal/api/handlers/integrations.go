package handlers

import (
	"net/http"

	"tour-planning-service/internal/api/dto"
	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/services"
)

type IntegrationHandler struct {
	Planner *services.TourPlanner
	Depot   domain.Coordinates
}

// Test probes both external systems and reports each outcome separately, so
// operators can tell which integration is broken after a config change.
func (h *IntegrationHandler) Test(w http.ResponseWriter, r *http.Request) {
	checks := h.Planner.TestIntegrations(r.Context(), h.Depot)

	res := dto.TestIntegrationsResponse{Success: true, Checks: make([]dto.IntegrationCheckResponse, 0, len(checks))}
	for _, c := range checks {
		if !c.OK {
			res.Success = false
		}
		res.Checks = append(res.Checks, dto.IntegrationCheckResponse{
			System: c.System,
			OK:     c.OK,
			Detail: c.Detail,
			Error:  c.Error,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
