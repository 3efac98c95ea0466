package models

import (
	"busops/internal/domain"
)

// Route is an ordered run of stops: origin, intermediate stops, destination.
// Stop sequences are immutable once a trip has been published against them.
type Route struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Origin      string   `json:"origin"`
	Stops       []string `json:"stops"`
	Destination string   `json:"destination"`
}

// StopSequence returns the canonical ordered stop list
// [origin, ...stops, destination].
func (r Route) StopSequence() []string {
	seq := make([]string, 0, len(r.Stops)+2)
	seq = append(seq, r.Origin)
	seq = append(seq, r.Stops...)
	seq = append(seq, r.Destination)
	return seq
}

// Validate checks the route invariants: at least two entries and no stop
// repeated within one route's sequence.
func (r Route) Validate() error {
	seq := r.StopSequence()
	if len(seq) < 2 {
		return domain.ValidationError{Field: "stops", Msg: "rute minimal punya 2 stop"}
	}
	seen := make(map[string]bool, len(seq))
	for _, s := range seq {
		if s == "" {
			return domain.ValidationError{Field: "stops", Msg: "nama stop tidak boleh kosong"}
		}
		if seen[s] {
			return domain.ValidationError{Field: "stops", Msg: "stop " + s + " duplikat dalam rute"}
		}
		seen[s] = true
	}
	return nil
}
