package dto

import "time"

type OptimizeRequest struct {
	JobIDs       []string       `json:"job_ids"`
	Depot        CoordinatesDTO `json:"depot"`
	VehicleCount int            `json:"vehicle_count"`
	Day          *time.Time     `json:"day"`
}

type TourStopResponse struct {
	JobID    string    `json:"job_id"`
	Activity string    `json:"activity"`
	ArriveAt time.Time `json:"arrive_at"`
	DepartAt time.Time `json:"depart_at"`
}

type TourResponse struct {
	Vehicle           string             `json:"vehicle"`
	JobIDs            []string           `json:"job_ids"`
	Stops             []TourStopResponse `json:"stops"`
	DistanceMeters    int                `json:"distance_meters"`
	DurationSeconds   int                `json:"duration_seconds"`
	EstimatedFuelCost float64            `json:"estimated_fuel_cost"`
	Unoptimized       bool               `json:"unoptimized,omitempty"`
}

type UnassignedJobResponse struct {
	JobID  string `json:"job_id"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

type FleetSummaryResponse struct {
	TourCount            int     `json:"tour_count"`
	TotalDistanceMeters  int     `json:"total_distance_meters"`
	TotalDurationSeconds int     `json:"total_duration_seconds"`
	TotalFuelCost        float64 `json:"total_fuel_cost"`
	UnassignedCount      int     `json:"unassigned_count"`
}

type OptimizeResponse struct {
	Success    bool                    `json:"success"`
	Tours      []TourResponse          `json:"tours"`
	Unassigned []UnassignedJobResponse `json:"unassigned"`
	Summary    FleetSummaryResponse    `json:"summary"`
	Degraded   bool                    `json:"degraded,omitempty"`
	Warning    string                  `json:"warning,omitempty"`
}

type CalculateRouteRequest struct {
	JobIDs []string       `json:"job_ids"`
	Depot  CoordinatesDTO `json:"depot"`
}

type CalculateRouteResponse struct {
	Success bool         `json:"success"`
	Tour    TourResponse `json:"tour"`
}

type CalculateRoutesRequest struct {
	Routes []CalculateRouteRequest `json:"routes"`
}

type RouteBranchResponse struct {
	Success bool          `json:"success"`
	Tour    *TourResponse `json:"tour,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type CalculateRoutesResponse struct {
	Success bool                  `json:"success"`
	Routes  []RouteBranchResponse `json:"routes"`
}

type PointToPointRequest struct {
	From CoordinatesDTO `json:"from"`
	To   CoordinatesDTO `json:"to"`
}
