package dto

import "time"

type PositionResponse struct {
	FixTime   time.Time `json:"fix_time"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	SpeedKmh  float64   `json:"speed_kmh"`
	Address   string    `json:"address,omitempty"`
}

type TruckStatusResponse struct {
	DeviceID     string            `json:"device_id"`
	Name         string            `json:"name"`
	Online       bool              `json:"online"`
	LastUpdate   time.Time         `json:"last_update"`
	LastPosition *PositionResponse `json:"last_position,omitempty"`
}

type ListTruckStatusResponse struct {
	Success bool                  `json:"success"`
	Trucks  []TruckStatusResponse `json:"trucks"`
}

type StopEventResponse struct {
	Address         string    `json:"address,omitempty"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	ArrivedAt       time.Time `json:"arrived_at"`
	DepartedAt      time.Time `json:"departed_at"`
	DurationSeconds int       `json:"duration_seconds"`
}

type TrackStatisticsResponse struct {
	TotalDistanceMeters float64 `json:"total_distance_meters"`
	TotalTimeSeconds    int     `json:"total_time_seconds"`
	MaxSpeedKmh         float64 `json:"max_speed_kmh"`
	AverageSpeedKmh     float64 `json:"average_speed_kmh"`
	StopCount           int     `json:"stop_count"`
}

type TruckHistoryResponse struct {
	Success       bool                     `json:"success"`
	DeviceID      string                   `json:"device_id"`
	Date          string                   `json:"date"`
	NotEnoughData bool                     `json:"not_enough_data,omitempty"`
	PositionCount int                      `json:"position_count"`
	Positions     []PositionResponse       `json:"positions,omitempty"`
	Statistics    *TrackStatisticsResponse `json:"statistics,omitempty"`
	Stops         []StopEventResponse      `json:"stops,omitempty"`
	Start         *PositionResponse        `json:"start,omitempty"`
	End           *PositionResponse        `json:"end,omitempty"`
}

type IntegrationCheckResponse struct {
	System string `json:"system"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

type TestIntegrationsResponse struct {
	Success bool                       `json:"success"`
	Checks  []IntegrationCheckResponse `json:"checks"`
}
