package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "busops/internal/config"
	"busops/internal/domain"
	"busops/internal/domain/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// TripRepository is the segment inventory store: trip records plus their
// ordered segment arrays. All seat-count mutation goes through WriteSegments
// inside a transaction holding the trip row lock.
type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetTripRecord loads trip metadata (no segments).
func (r TripRepository) GetTripRecord(recordID int64) (models.TripRecord, error) {
	return r.getTripRecord(r.db(), recordID, false)
}

// LockTripRecord loads trip metadata under FOR UPDATE so concurrent
// adjustments on the same trip serialize; different trips do not block.
func (r TripRepository) LockTripRecord(tx *sql.Tx, recordID int64) (models.TripRecord, error) {
	return r.getTripRecord(tx, recordID, true)
}

func (r TripRepository) getTripRecord(q queryer, recordID int64, forUpdate bool) (models.TripRecord, error) {
	var out models.TripRecord
	if recordID <= 0 {
		return out, domain.ValidationError{Field: "record_id", Msg: "id tidak valid"}
	}

	query := `
		SELECT id, route_id, trip_date, trip_time, COALESCE(vehicle_code,''), capacity, COALESCE(status,'')
		FROM trip_records
		WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	err := q.QueryRow(query, recordID).Scan(
		&out.ID,
		&out.RouteID,
		&out.TripDate,
		&out.TripTime,
		&out.VehicleCode,
		&out.Capacity,
		&out.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return out, err
	}
	return out, nil
}

// GetAllSegments returns the trip's segment array ordered by index.
func (r TripRepository) GetAllSegments(recordID int64) ([]models.Segment, error) {
	return r.segments(r.db(), recordID)
}

// SegmentsTx reads the segment array inside an adjustment transaction.
func (r TripRepository) SegmentsTx(tx *sql.Tx, recordID int64) ([]models.Segment, error) {
	return r.segments(tx, recordID)
}

func (r TripRepository) segments(q queryer, recordID int64) ([]models.Segment, error) {
	rows, err := q.Query(`
		SELECT segment_index, origin, destination, available_seats
		FROM trip_segments
		WHERE trip_record_id = ?
		ORDER BY segment_index ASC
	`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Segment{}
	for rows.Next() {
		var seg models.Segment
		if err := rows.Scan(&seg.Index, &seg.Origin, &seg.Destination, &seg.AvailableSeats); err != nil {
			return out, err
		}
		seg.Origin = strings.TrimSpace(seg.Origin)
		seg.Destination = strings.TrimSpace(seg.Destination)
		out = append(out, seg)
	}
	return out, rows.Err()
}

// GetSegment addresses one segment by (recordID, index). Fails with
// NotFoundError when the trip does not exist and SegmentRangeError when the
// index is outside the trip's segment array.
func (r TripRepository) GetSegment(recordID int64, index int) (models.Segment, error) {
	var out models.Segment
	if _, err := r.GetTripRecord(recordID); err != nil {
		return out, err
	}
	segments, err := r.GetAllSegments(recordID)
	if err != nil {
		return out, err
	}
	if index < 0 || index >= len(segments) {
		return out, domain.SegmentRangeError{RecordID: recordID, Index: index, Count: len(segments)}
	}
	return segments[index], nil
}

// WriteSegments persists the full updated segment array for a trip. Must run
// inside the transaction that locked the trip row; commit makes the whole
// array visible at once.
func (r TripRepository) WriteSegments(tx *sql.Tx, recordID int64, segments []models.Segment) error {
	stmt, err := tx.Prepare(`
		UPDATE trip_segments
		SET available_seats = ?
		WHERE trip_record_id = ? AND segment_index = ?
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, seg := range segments {
		if _, err := stmt.Exec(seg.AvailableSeats, recordID, seg.Index); err != nil {
			return err
		}
	}
	return nil
}

// CreateTripRecord publishes a trip: one trip row plus its segment array,
// every segment starting at full capacity.
func (r TripRepository) CreateTripRecord(trip models.TripRecord) (int64, error) {
	db := r.db()
	tx, err := db.Begin()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO trip_records (route_id, trip_date, trip_time, vehicle_code, capacity, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`, trip.RouteID, trip.TripDate, trip.TripTime, trip.VehicleCode, trip.Capacity, trip.Status)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	recordID, _ := res.LastInsertId()

	for _, seg := range trip.Segments {
		if _, err := tx.Exec(`
			INSERT INTO trip_segments (trip_record_id, segment_index, origin, destination, available_seats)
			VALUES (?, ?, ?, ?, ?)
		`, recordID, seg.Index, seg.Origin, seg.Destination, seg.AvailableSeats); err != nil {
			return 0, domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return recordID, nil
}

// List returns trip records, optionally filtered by date, without segments.
func (r TripRepository) List(tripDate string) ([]models.TripRecord, error) {
	db := r.db()

	where := ""
	args := []any{}
	if d := strings.TrimSpace(tripDate); d != "" {
		where = " WHERE trip_date = ?"
		args = append(args, d)
	}

	rows, err := db.Query(`
		SELECT id, route_id, trip_date, trip_time, COALESCE(vehicle_code,''), capacity, COALESCE(status,'')
		FROM trip_records`+where+`
		ORDER BY trip_date ASC, trip_time ASC, id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripRecord{}
	for rows.Next() {
		var t models.TripRecord
		if err := rows.Scan(&t.ID, &t.RouteID, &t.TripDate, &t.TripTime, &t.VehicleCode, &t.Capacity, &t.Status); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus changes trip status only. Segment counts are owned by the
// adjustment engine and never touched here.
func (r TripRepository) UpdateStatus(recordID int64, status string) error {
	if recordID <= 0 {
		return domain.ValidationError{Field: "record_id", Msg: "id tidak valid"}
	}
	status = strings.TrimSpace(status)
	switch status {
	case "published", "departed", "cancelled":
	default:
		return domain.ValidationError{Field: "status", Msg: "status harus published/departed/cancelled"}
	}

	res, err := r.db().Exec(`
		UPDATE trip_records SET status = ? WHERE id = ?
	`, status, recordID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// Delete archives a trip by removing the record and its segments. Refused
// while active bookings still reference it.
func (r TripRepository) Delete(recordID int64) error {
	if recordID <= 0 {
		return domain.ValidationError{Field: "record_id", Msg: "id tidak valid"}
	}
	db := r.db()

	var active int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM bookings WHERE trip_record_id = ? AND status = ?
	`, recordID, models.BookingStatusActive).Scan(&active)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if active > 0 {
		return domain.ConflictError{Resource: "trip", Msg: "masih ada booking aktif"}
	}

	tx, err := db.Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trip_segments WHERE trip_record_id = ?`, recordID); err != nil {
		return domain.InternalError{Err: err}
	}
	res, err := tx.Exec(`DELETE FROM trip_records WHERE id = ?`, recordID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return tx.Commit()
}
