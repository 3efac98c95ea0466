package models

// Segment is one sellable origin->destination sub-range of a trip's stop
// sequence. Segments are overlapping views onto one shared seat pool, not
// independent inventories. Invariant: 0 <= AvailableSeats <= trip capacity.
type Segment struct {
	Index          int    `json:"index"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	AvailableSeats int    `json:"availableSeats"`
}

// SegmentDef describes a segment to expose when publishing a trip. Which
// segments a trip sells is the scheduler's choice.
type SegmentDef struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// TripRecord is one scheduled vehicle run along a route, holding the shared
// capacity pool and the segment list.
type TripRecord struct {
	ID          int64     `json:"id"`
	RouteID     int64     `json:"routeId"`
	TripDate    string    `json:"tripDate"`
	TripTime    string    `json:"tripTime"`
	VehicleCode string    `json:"vehicleCode"`
	Capacity    int       `json:"capacity"`
	Status      string    `json:"status"`
	Segments    []Segment `json:"segments,omitempty"`
}
