package dto

import "time"

type CoordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LegDTO struct {
	Address  string         `json:"address"`
	Location CoordinatesDTO `json:"location"`
	Earliest *time.Time     `json:"earliest,omitempty"`
	Latest   *time.Time     `json:"latest,omitempty"`
}

type JobRequest struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Pickup     LegDTO  `json:"pickup"`
	Delivery   *LegDTO `json:"delivery,omitempty"`
	Priority   int     `json:"priority"`
	TotalItems int     `json:"total_items"`
	Floors     int     `json:"floors"`
	Demand     int     `json:"demand"`
}

type JobResponse struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Pickup     LegDTO  `json:"pickup"`
	Delivery   *LegDTO `json:"delivery,omitempty"`
	Priority   int     `json:"priority"`
	TotalItems int     `json:"total_items"`
	Floors     int     `json:"floors"`
	Demand     int     `json:"demand"`
}

type ListJobsResponse struct {
	Success bool          `json:"success"`
	Jobs    []JobResponse `json:"jobs"`
}

type CreateJobResponse struct {
	Success bool        `json:"success"`
	Job     JobResponse `json:"job"`
}
