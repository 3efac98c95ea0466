package models

// Booking ties a reservation to one trip segment. SeatCount seats were
// reserved on segment SegmentIndex of trip TripRecordID.
type Booking struct {
	ID             int64  `json:"id"`
	TripRecordID   int64  `json:"tripRecordId"`
	SegmentIndex   int    `json:"segmentIndex"`
	SeatCount      int    `json:"seatCount"`
	PassengerName  string `json:"passengerName"`
	PassengerPhone string `json:"passengerPhone"`
	RouteFrom      string `json:"routeFrom"`
	RouteTo        string `json:"routeTo"`
	TripDate       string `json:"tripDate"`
	TripTime       string `json:"tripTime"`
	PricePerSeat   int64  `json:"pricePerSeat"`
	Total          int64  `json:"total"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// Booking status values.
const (
	BookingStatusActive    = "active"
	BookingStatusCancelled = "cancelled"
)
