package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "busops/internal/config"
	"busops/internal/domain"
	"busops/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id, trip_record_id, segment_index, seat_count,
	passenger_name, COALESCE(passenger_phone,''),
	route_from, route_to, trip_date, trip_time,
	price_per_seat, total, status,
	DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.TripRecordID,
		&b.SegmentIndex,
		&b.SeatCount,
		&b.PassengerName,
		&b.PassengerPhone,
		&b.RouteFrom,
		&b.RouteTo,
		&b.TripDate,
		&b.TripTime,
		&b.PricePerSeat,
		&b.Total,
		&b.Status,
		&b.CreatedAt,
	)
	return b, err
}

func (r BookingRepository) GetByID(bookingID int64) (models.Booking, error) {
	if bookingID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	b, err := scanBooking(r.db().QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = ?
	`, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return b, err
	}
	return b, nil
}

// List returns bookings, optionally filtered by trip record and/or status.
func (r BookingRepository) List(tripRecordID int64, status string) ([]models.Booking, error) {
	where := []string{"1=1"}
	args := []any{}
	if tripRecordID > 0 {
		where = append(where, "trip_record_id = ?")
		args = append(args, tripRecordID)
	}
	if s := strings.TrimSpace(status); s != "" {
		where = append(where, "status = ?")
		args = append(args, s)
	}

	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) Insert(b models.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(trip_record_id, segment_index, seat_count,
			 passenger_name, passenger_phone,
			 route_from, route_to, trip_date, trip_time,
			 price_per_seat, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		b.TripRecordID,
		b.SegmentIndex,
		b.SeatCount,
		strings.TrimSpace(b.PassengerName),
		strings.TrimSpace(b.PassengerPhone),
		b.RouteFrom,
		b.RouteTo,
		b.TripDate,
		b.TripTime,
		b.PricePerSeat,
		b.Total,
		b.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) UpdateStatus(bookingID int64, status string) error {
	res, err := r.db().Exec(`
		UPDATE bookings SET status = ? WHERE id = ?
	`, status, bookingID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// UpdateSegment moves a booking onto another trip/segment after a transfer.
func (r BookingRepository) UpdateSegment(bookingID, tripRecordID int64, segmentIndex int, routeFrom, routeTo, tripDate, tripTime string) error {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET trip_record_id = ?, segment_index = ?, route_from = ?, route_to = ?, trip_date = ?, trip_time = ?
		WHERE id = ?
	`, tripRecordID, segmentIndex, routeFrom, routeTo, tripDate, tripTime, bookingID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
