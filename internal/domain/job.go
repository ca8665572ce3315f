package domain

import "time"

// JobKind is the coarse classification of a moving job.
//
// A pickup_delivery job has two legs (load at the origin, unload at the
// destination). A service job has a single visit with no cargo movement,
// e.g. an on-site inspection or estimate.
type JobKind string

const (
	JobKindPickupDelivery JobKind = "pickup_delivery"
	JobKindService        JobKind = "service"
)

// TimeWindow bounds the permissible arrival at a leg's location.
type TimeWindow struct {
	Earliest time.Time
	Latest   time.Time
}

// Leg is one serviced location of a moving job.
// A nil TimeWindow means the leg accepts the default operating-day window.
type Leg struct {
	Address    string
	Location   Coordinates
	TimeWindow *TimeWindow
}

// Inventory size hints declared during intake. Linear proxies for loading
// effort; a full inventory walkthrough is not required before scheduling.
type Inventory struct {
	TotalItems int
	Floors     int
}

// MovingJob is a single unit of work created from CRM-derived or simulated
// input. It is immutable once submitted to optimization: the optimizer only
// ever references jobs by ID.
//
// For JobKindService the Pickup leg is the serviced location and Delivery is
// the zero value.
type MovingJob struct {
	ID        string
	Kind      JobKind
	Pickup    Leg
	Delivery  Leg
	Priority  int // 1 (highest) .. 5
	Inventory Inventory
	Demand    int // abstract capacity units; 0 means "use the default"
}
