package models

type Vehicle struct {
	ID          int64  `json:"id"`
	VehicleCode string `json:"vehicleCode"`
	PlateNumber string `json:"plateNumber"`
	Seats       int    `json:"seats"`
	Color       string `json:"color,omitempty"`
	LastService string `json:"lastService,omitempty"`
}

type VehiclePayload struct {
	VehicleCode string `json:"vehicleCode"`
	PlateNumber string `json:"plateNumber"`
	Seats       int    `json:"seats"`
	Color       string `json:"color"`
	LastService string `json:"lastService"`
}
