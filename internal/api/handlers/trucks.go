package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tour-planning-service/internal/api/dto"
	"tour-planning-service/internal/services"
)

type TruckHandler struct {
	Planner *services.TourPlanner
}

// Status lists every registered truck with its latest known position.
func (h *TruckHandler) Status(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Planner.TruckStatus(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	res := dto.ListTruckStatusResponse{Success: true, Trucks: make([]dto.TruckStatusResponse, 0, len(statuses))}
	for _, s := range statuses {
		truck := dto.TruckStatusResponse{
			DeviceID:   s.DeviceID,
			Name:       s.Name,
			Online:     s.Online,
			LastUpdate: s.LastUpdate,
		}
		if s.LastPosition != nil {
			pos := positionResponse(*s.LastPosition)
			truck.LastPosition = &pos
		}
		res.Trucks = append(res.Trucks, truck)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// History reconstructs one truck's movement for a single day, identified by a
// ?date=YYYY-MM-DD query parameter.
func (h *TruckHandler) History(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "deviceID")
	if deviceID == "" {
		writeError(w, r, http.StatusBadRequest, "device id is required")
		return
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "date query parameter is required")
		return
	}
	day, ok := parseDay(raw)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	result, err := h.Planner.TruckHistory(r.Context(), deviceID, day)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	res := dto.TruckHistoryResponse{
		Success:       true,
		DeviceID:      deviceID,
		Date:          day.Format("2006-01-02"),
		NotEnoughData: result.NotEnoughData,
		PositionCount: result.PositionCount,
	}

	if route := result.Route; route != nil {
		res.Positions = make([]dto.PositionResponse, 0, len(route.Positions))
		for _, p := range route.Positions {
			res.Positions = append(res.Positions, positionResponse(p))
		}

		res.Stops = make([]dto.StopEventResponse, 0, len(route.Stops))
		for _, s := range route.Stops {
			res.Stops = append(res.Stops, dto.StopEventResponse{
				Address:         s.Start.Address,
				Lat:             s.Start.Latitude,
				Lng:             s.Start.Longitude,
				ArrivedAt:       s.Start.FixTime,
				DepartedAt:      s.End.FixTime,
				DurationSeconds: int(s.Duration.Seconds()),
			})
		}

		res.Statistics = &dto.TrackStatisticsResponse{
			TotalDistanceMeters: route.Statistics.TotalDistanceMeters,
			TotalTimeSeconds:    int(route.Statistics.TotalTime.Seconds()),
			MaxSpeedKmh:         route.Statistics.MaxSpeedKmh,
			AverageSpeedKmh:     route.Statistics.AverageSpeedKmh,
			StopCount:           route.Statistics.StopCount,
		}

		start := positionResponse(route.Start)
		end := positionResponse(route.End)
		res.Start = &start
		res.End = &end
	}

	writeJSON(w, r, http.StatusOK, res)
}

// parseDay accepts a YYYY-MM-DD date string.
func parseDay(raw string) (time.Time, bool) {
	day, err := time.Parse("2006-01-02", raw)
	return day, err == nil
}
