package ports

import "context"

// Wire model of the external vehicle-routing solver. The solver is a black
// box: this service only formulates problems and reconciles solutions.

// Problem is a complete vehicle-routing problem description.
// Every task (service or shipment) ID is traceable back to exactly one
// MovingJob ID. The vehicle count equals the number of routes the caller
// intends to produce.
type Problem struct {
	Vehicles     []Vehicle     `json:"vehicles"`
	VehicleTypes []VehicleType `json:"vehicle_types"`
	Services     []Service     `json:"services,omitempty"`
	Shipments    []Shipment    `json:"shipments,omitempty"`
	Objectives   []Objective   `json:"objectives,omitempty"`
}

type Vehicle struct {
	ID             string   `json:"vehicle_id"`
	TypeID         string   `json:"type_id"`
	StartAddress   Address  `json:"start_address"`
	EarliestStart  int64    `json:"earliest_start"`
	LatestEnd      int64    `json:"latest_end"`
	MaxDistance    int      `json:"max_distance,omitempty"`
	MaxDrivingTime int      `json:"max_driving_time,omitempty"`
	ReturnToDepot  bool     `json:"return_to_depot"`
	Skills         []string `json:"skills,omitempty"`
}

type VehicleType struct {
	ID            string  `json:"type_id"`
	Profile       string  `json:"profile"`
	Capacity      []int   `json:"capacity"`
	CostPerMeter  float64 `json:"cost_per_meter,omitempty"`
	CostPerSecond float64 `json:"cost_per_second,omitempty"`
}

type Address struct {
	LocationID string  `json:"location_id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

type SolverTimeWindow struct {
	Earliest int64 `json:"earliest"`
	Latest   int64 `json:"latest"`
}

// Service is a single-visit task (inspection, estimate). It participates in
// sequencing and duration accounting but never consumes vehicle capacity.
type Service struct {
	ID          string             `json:"id"`
	Name        string             `json:"name,omitempty"`
	Address     Address            `json:"address"`
	Duration    int64              `json:"duration"`
	TimeWindows []SolverTimeWindow `json:"time_windows,omitempty"`
	Priority    int                `json:"priority,omitempty"`
}

// Shipment is a paired pickup/delivery task derived from one moving job.
type Shipment struct {
	ID       string       `json:"id"`
	Name     string       `json:"name,omitempty"`
	Pickup   ShipmentStop `json:"pickup"`
	Delivery ShipmentStop `json:"delivery"`
	Size     []int        `json:"size"`
	Priority int          `json:"priority,omitempty"`
}

type ShipmentStop struct {
	Address     Address            `json:"address"`
	Duration    int64              `json:"duration"`
	TimeWindows []SolverTimeWindow `json:"time_windows,omitempty"`
}

type Objective struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Solution is the solver's answer: zero or more routes plus an unassigned
// list with per-job reasons. Produced once per submission, consumed
// immediately, never persisted.
type Solution struct {
	Costs        float64    `json:"costs"`
	Distance     int        `json:"distance"`
	Time         int64      `json:"time"`
	NoVehicles   int        `json:"no_vehicles"`
	NoUnassigned int        `json:"no_unassigned"`
	Routes       []Route    `json:"routes"`
	Unassigned   Unassigned `json:"unassigned"`
}

type Route struct {
	VehicleID      string     `json:"vehicle_id"`
	Distance       int        `json:"distance"`
	TransportTime  int64      `json:"transport_time"`
	CompletionTime int64      `json:"completion_time"`
	Activities     []Activity `json:"activities"`
}

// Activity types reported by the solver.
const (
	ActivityStart   = "start"
	ActivityEnd     = "end"
	ActivityService = "service"
	ActivityPickup  = "pickupShipment"
	ActivityDeliver = "deliverShipment"
)

type Activity struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"` // task ID, equals the originating job ID
	LocationID string `json:"location_id,omitempty"`
	ArrTime    int64  `json:"arr_time,omitempty"`
	EndTime    int64  `json:"end_time,omitempty"`
	LoadAfter  []int  `json:"load_after,omitempty"`
}

type Unassigned struct {
	Services  []string           `json:"services,omitempty"`
	Shipments []string           `json:"shipments,omitempty"`
	Details   []UnassignedDetail `json:"details,omitempty"`
}

type UnassignedDetail struct {
	ID     string `json:"id"`
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

// RouteSolver submits a formulated problem to the external optimizer.
//
// Implementations must not retry automatically: submissions are not
// idempotent from the solver's perspective, so retry policy belongs to the
// caller.
type RouteSolver interface {
	Solve(ctx context.Context, problem *Problem) (*Solution, error)
}
