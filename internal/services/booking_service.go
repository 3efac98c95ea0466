package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "busops/internal/config"
	"busops/internal/domain"
	"busops/internal/domain/models"
	"busops/internal/repositories"
	"busops/internal/utils"
)

// BookingService is the reservation collaborator on top of the inventory
// engine: it validates availability, records the booking, then adjusts seat
// counts. Pricing lives here, not in the engine.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	TripRepo    repositories.TripRepository
	Inventory   *InventoryService
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) trips() repositories.TripRepository {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepository{DB: s.db()}
}

func (s BookingService) inventory() InventoryService {
	if s.Inventory != nil {
		return *s.Inventory
	}
	return InventoryService{DB: s.db(), RequestID: s.RequestID}
}

type CreateBookingInput struct {
	TripKey        string
	SeatCount      int
	PassengerName  string
	PassengerPhone string
}

// CreateBooking runs the reservation flow: validate availability, persist the
// booking, then reserve the seats through the adjustment engine.
func (s BookingService) CreateBooking(in CreateBookingInput) (models.Booking, error) {
	var out models.Booking

	name := utils.NormalizeSpace(in.PassengerName)
	if name == "" {
		return out, domain.ValidationError{Field: "passenger_name", Msg: "nama pemesan wajib diisi"}
	}
	phone := strings.TrimSpace(in.PassengerPhone)
	if phone == "" {
		return out, domain.ValidationError{Field: "passenger_phone", Msg: "no HP pemesan wajib diisi"}
	}

	inv := s.inventory()
	if err := inv.ValidateSeatAvailability(in.TripKey, in.SeatCount); err != nil {
		return out, err
	}

	recordID, segmentIndex, err := domain.ParseSegmentKey(in.TripKey)
	if err != nil {
		return out, err
	}
	trip, err := s.trips().GetTripRecord(recordID)
	if err != nil {
		return out, err
	}
	segment, err := s.trips().GetSegment(recordID, segmentIndex)
	if err != nil {
		return out, err
	}

	pricePerSeat := utils.ComputeFare(segment.Origin, segment.Destination, 0)
	if pricePerSeat <= 0 {
		return out, domain.ValidationError{Field: "route", Msg: "tarif rute ini belum tersedia"}
	}

	booking := models.Booking{
		TripRecordID:   recordID,
		SegmentIndex:   segmentIndex,
		SeatCount:      in.SeatCount,
		PassengerName:  name,
		PassengerPhone: phone,
		RouteFrom:      segment.Origin,
		RouteTo:        segment.Destination,
		TripDate:       trip.TripDate,
		TripTime:       trip.TripTime,
		PricePerSeat:   pricePerSeat,
		Total:          int64(in.SeatCount) * pricePerSeat,
		Status:         models.BookingStatusActive,
	}

	bookingID, err := s.bookings().Insert(booking)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	booking.ID = bookingID

	if err := inv.ReserveSeats(recordID, segmentIndex, in.SeatCount); err != nil {
		// booking tercatat tapi inventory tidak bergeser: batalkan dan surface
		if cancelErr := s.bookings().UpdateStatus(bookingID, models.BookingStatusCancelled); cancelErr != nil {
			utils.LogEvent(s.RequestID, "booking", "cancel_after_reserve_failure",
				fmt.Sprintf("booking_id=%d err=%v", bookingID, cancelErr))
		}
		return out, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d trip_key=%s seats=%d", bookingID, domain.SegmentKey(recordID, segmentIndex), in.SeatCount))
	return booking, nil
}

// CancelBooking releases the booking's seats back into the inventory.
func (s BookingService) CancelBooking(bookingID int64) error {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingStatusActive {
		return domain.ConflictError{Resource: "booking", Msg: "booking sudah dibatalkan"}
	}

	if err := s.bookings().UpdateStatus(bookingID, models.BookingStatusCancelled); err != nil {
		return err
	}

	if err := s.inventory().ReleaseSeats(booking.TripRecordID, booking.SegmentIndex, booking.SeatCount); err != nil {
		// status sudah cancelled tapi kursi belum kembali; jangan telan errornya
		return domain.InternalError{Msg: "booking dibatalkan tapi inventory belum dikembalikan", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%d", bookingID))
	return nil
}

// TransferBooking moves an active booking onto another segment, releasing the
// old seats and reserving on the new one.
func (s BookingService) TransferBooking(bookingID int64, newTripKey string) (models.Booking, error) {
	var out models.Booking

	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return out, err
	}
	if booking.Status != models.BookingStatusActive {
		return out, domain.ConflictError{Resource: "booking", Msg: "booking tidak aktif"}
	}

	newRecordID, newIndex, err := domain.ParseSegmentKey(newTripKey)
	if err != nil {
		return out, err
	}
	newTrip, err := s.trips().GetTripRecord(newRecordID)
	if err != nil {
		return out, err
	}
	newSegment, err := s.trips().GetSegment(newRecordID, newIndex)
	if err != nil {
		return out, err
	}

	inv := s.inventory()
	if err := inv.TransferSeats(booking.TripRecordID, booking.SegmentIndex, newRecordID, newIndex, booking.SeatCount); err != nil {
		return out, err
	}

	if err := s.bookings().UpdateSegment(bookingID, newRecordID, newIndex,
		newSegment.Origin, newSegment.Destination, newTrip.TripDate, newTrip.TripTime); err != nil {
		return out, domain.InternalError{Msg: "inventory dipindah tapi booking belum terbarui", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "transfer",
		fmt.Sprintf("booking_id=%d to=%s", bookingID, domain.SegmentKey(newRecordID, newIndex)))

	booking.TripRecordID = newRecordID
	booking.SegmentIndex = newIndex
	booking.RouteFrom = newSegment.Origin
	booking.RouteTo = newSegment.Destination
	booking.TripDate = newTrip.TripDate
	booking.TripTime = newTrip.TripTime
	return booking, nil
}
