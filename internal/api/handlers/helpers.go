package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"tour-planning-service/internal/api/dto"
	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/ports"
	"tour-planning-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Response encoding failed")
	}
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorEnvelope{Success: false, Error: msg})
}

// writeFailure translates a typed upstream failure into an operator-facing
// envelope. Upstream rejections surface as 502 because the caller's request
// was fine; only a validation rejection of the formulated problem maps to 422.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var auth *ports.AuthError
	var validation *ports.ValidationError
	var transport *ports.TransportError

	switch {
	case errors.As(err, &auth), errors.As(err, &transport):
		status = http.StatusBadGateway
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrSolverDegenerate):
		status = http.StatusBadGateway
	}

	writeError(w, r, status, services.OperatorMessage(err))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func toCoordinates(c dto.CoordinatesDTO) domain.Coordinates {
	return domain.Coordinates{Lat: c.Lat, Lon: c.Lng}
}

func tourResponse(t domain.ReconciledTour) dto.TourResponse {
	jobIDs := make([]string, 0, len(t.Jobs))
	for _, j := range t.Jobs {
		jobIDs = append(jobIDs, j.ID)
	}

	stops := make([]dto.TourStopResponse, 0, len(t.Stops))
	for _, s := range t.Stops {
		stops = append(stops, dto.TourStopResponse{
			JobID:    s.JobID,
			Activity: s.Activity,
			ArriveAt: s.ArriveAt,
			DepartAt: s.DepartAt,
		})
	}

	return dto.TourResponse{
		Vehicle:           t.Vehicle,
		JobIDs:            jobIDs,
		Stops:             stops,
		DistanceMeters:    t.DistanceMeters,
		DurationSeconds:   t.DurationSeconds,
		EstimatedFuelCost: t.EstimatedFuelCost,
		Unoptimized:       t.Unoptimized,
	}
}

func positionResponse(p domain.Position) dto.PositionResponse {
	return dto.PositionResponse{
		FixTime:  p.FixTime,
		Lat:      p.Latitude,
		Lng:      p.Longitude,
		SpeedKmh: p.SpeedKmh,
		Address:  p.Address,
	}
}
