package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "busops/internal/config"
	"busops/internal/domain"
	"busops/internal/domain/models"
	"busops/internal/repositories"
	"busops/internal/utils"
)

// TripService publishes trips from routes. Which sub-segments a trip exposes
// for sale is decided here by the scheduler's input, never by the inventory
// engine.
type TripService struct {
	TripRepo  repositories.TripRepository
	RouteRepo repositories.RouteRepository
	DB        *sql.DB
	RequestID string
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) trips() repositories.TripRepository {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepository{DB: s.db()}
}

func (s TripService) routes() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.db()}
}

type PublishTripInput struct {
	RouteID     int64
	TripDate    string
	TripTime    string
	VehicleCode string
	Capacity    int
	Segments    []models.SegmentDef
}

// PublishTrip creates a trip record from a route with every exposed segment
// at full capacity. Segment endpoints must resolve against the route's stop
// sequence and point forward along it.
func (s TripService) PublishTrip(in PublishTripInput) (int64, error) {
	route, err := s.routes().GetByID(in.RouteID)
	if err != nil {
		return 0, err
	}

	if _, err := utils.ParseDate(in.TripDate); err != nil {
		return 0, domain.ValidationError{Field: "trip_date", Msg: "format date tidak valid (YYYY-MM-DD)"}
	}
	hhmm, err := utils.NormalizeTimeStr(in.TripTime)
	if err != nil {
		return 0, domain.ValidationError{Field: "trip_time", Msg: err.Error()}
	}

	capacity := in.Capacity
	if capacity <= 0 && strings.TrimSpace(in.VehicleCode) != "" {
		capacity, err = s.vehicleSeats(in.VehicleCode)
		if err != nil {
			return 0, err
		}
	}
	if capacity <= 0 {
		return 0, domain.ValidationError{Field: "capacity", Msg: "kapasitas harus lebih dari 0"}
	}

	if len(in.Segments) == 0 {
		return 0, domain.ValidationError{Field: "segments", Msg: "minimal 1 segment yang dijual"}
	}

	stops := route.StopSequence()
	segments := make([]models.Segment, 0, len(in.Segments))
	for i, def := range in.Segments {
		origin := utils.NormalizeSpace(def.Origin)
		destination := utils.NormalizeSpace(def.Destination)

		start, ok := domain.ResolvePosition(stops, origin)
		if !ok {
			return 0, domain.ValidationError{Field: "segments", Msg: fmt.Sprintf("stop %q tidak ada di rute", origin)}
		}
		end, ok := domain.ResolvePosition(stops, destination)
		if !ok {
			return 0, domain.ValidationError{Field: "segments", Msg: fmt.Sprintf("stop %q tidak ada di rute", destination)}
		}
		if _, err := domain.NewSegmentSpan(start, end); err != nil {
			return 0, domain.ValidationError{Field: "segments", Msg: fmt.Sprintf("segment %s -> %s mundur terhadap arah rute", origin, destination)}
		}

		segments = append(segments, models.Segment{
			Index:          i,
			Origin:         origin,
			Destination:    destination,
			AvailableSeats: capacity,
		})
	}

	recordID, err := s.trips().CreateTripRecord(models.TripRecord{
		RouteID:     route.ID,
		TripDate:    strings.TrimSpace(in.TripDate),
		TripTime:    hhmm,
		VehicleCode: strings.TrimSpace(in.VehicleCode),
		Capacity:    capacity,
		Status:      "published",
		Segments:    segments,
	})
	if err != nil {
		return 0, err
	}

	utils.LogEvent(s.RequestID, "trips", "publish",
		fmt.Sprintf("record_id=%d route_id=%d segments=%d capacity=%d", recordID, route.ID, len(segments), capacity))
	return recordID, nil
}

func (s TripService) vehicleSeats(vehicleCode string) (int, error) {
	var seats sql.NullInt64
	err := s.db().QueryRow(`
		SELECT seats FROM vehicles WHERE vehicle_code = ?
	`, strings.TrimSpace(vehicleCode)).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "vehicle", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	if !seats.Valid || seats.Int64 <= 0 {
		return 0, domain.ValidationError{Field: "vehicle_code", Msg: "kendaraan belum punya jumlah kursi"}
	}
	return int(seats.Int64), nil
}
