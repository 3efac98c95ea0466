package services

import (
	"testing"

	"busops/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func tripRecordRow(recordID, routeID int64, capacity int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "route_id", "trip_date", "trip_time", "vehicle_code", "capacity", "status"}).
		AddRow(recordID, routeID, "2025-06-01", "08:00", "BM-01", capacity, "published")
}

func expectTrip25SingleSegment(mock sqlmock.Sqlmock, availableSeats int) {
	mock.ExpectQuery("FROM trip_records").WithArgs(int64(25)).
		WillReturnRows(tripRecordRow(25, 7, 14))
	mock.ExpectQuery("FROM trip_segments").WithArgs(int64(25)).
		WillReturnRows(sqlmock.NewRows([]string{"segment_index", "origin", "destination", "available_seats"}).
			AddRow(0, "Pasir Pengaraian", "Pekanbaru", availableSeats))
}

func TestValidateSeatAvailabilityOK(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTrip25SingleSegment(mock, 11)

	svc := InventoryService{DB: db}
	if err := svc.ValidateSeatAvailability("25_0", 1); err != nil {
		t.Fatalf("1 seat of 11 should validate, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateSeatAvailabilityInsufficient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTrip25SingleSegment(mock, 11)

	svc := InventoryService{DB: db}
	err = svc.ValidateSeatAvailability("25_0", 15)
	if !domain.IsInsufficientSeats(err) {
		t.Fatalf("15 seats of 11 should be insufficient, got %v", err)
	}
}

func TestValidateSeatAvailabilitySegmentOutOfRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTrip25SingleSegment(mock, 11)

	svc := InventoryService{DB: db}
	err = svc.ValidateSeatAvailability("25_5", 1)
	if !domain.IsSegmentRange(err) {
		t.Fatalf("segment 5 on a 1-segment trip should be out of range, got %v", err)
	}
}

func TestValidateSeatAvailabilityMalformedKey(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := InventoryService{DB: db}
	// wrong delimiter; must fail before touching the store
	if err := svc.ValidateSeatAvailability("25-0", 1); !domain.IsMalformedKey(err) {
		t.Fatalf("key 25-0 should be malformed, got %v", err)
	}
}

func TestValidateSeatAvailabilityTripNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trip_records").WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "trip_date", "trip_time", "vehicle_code", "capacity", "status"}))

	svc := InventoryService{DB: db}
	if err := svc.ValidateSeatAvailability("999_0", 1); !domain.IsNotFound(err) {
		t.Fatalf("trip 999 should not be found, got %v", err)
	}
}

func TestValidateSeatAvailabilityNonPositiveSeats(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := InventoryService{DB: db}
	if err := svc.ValidateSeatAvailability("25_0", 0); !domain.IsValidation(err) {
		t.Fatalf("0 seats should be rejected, got %v", err)
	}
	if err := svc.ValidateSeatAvailability("25_0", -3); !domain.IsValidation(err) {
		t.Fatalf("negative seats should be rejected, got %v", err)
	}
}

func expectAdjustCycle(mock sqlmock.Sqlmock, seats [3]int) {
	mock.ExpectBegin()
	mock.ExpectQuery("FROM trip_records").WithArgs(int64(25)).
		WillReturnRows(tripRecordRow(25, 7, 14))
	mock.ExpectQuery("FROM trip_segments").WithArgs(int64(25)).
		WillReturnRows(sqlmock.NewRows([]string{"segment_index", "origin", "destination", "available_seats"}).
			AddRow(0, "Pasir Pengaraian", "Ujung Batu", seats[0]).
			AddRow(1, "Ujung Batu", "Pekanbaru", seats[1]).
			AddRow(2, "Pasir Pengaraian", "Pekanbaru", seats[2]))
	mock.ExpectQuery("FROM routes").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "origin", "destination"}).
			AddRow(7, "PP - PKU", "Pasir Pengaraian", "Pekanbaru"))
	mock.ExpectQuery("FROM route_stops").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"stop_name"}).AddRow("Ujung Batu"))
	mock.ExpectPrepare("UPDATE trip_segments")
}

func TestReserveSeatsPropagatesAcrossOverlaps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// reserve 2 seats on the through segment PP -> PKU (index 2)
	expectAdjustCycle(mock, [3]int{14, 14, 14})
	mock.ExpectExec("UPDATE trip_segments").WithArgs(12, int64(25), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_segments").WithArgs(12, int64(25), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_segments").WithArgs(12, int64(25), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := InventoryService{DB: db}
	if err := svc.ReserveSeats(25, 2, 2); err != nil {
		t.Fatalf("ReserveSeats error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsOnLegSkipsDisjointLeg(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// reserve 2 seats on PP -> UB (index 0): UB -> PKU keeps its count
	expectAdjustCycle(mock, [3]int{14, 14, 14})
	mock.ExpectExec("UPDATE trip_segments").WithArgs(12, int64(25), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_segments").WithArgs(14, int64(25), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_segments").WithArgs(12, int64(25), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := InventoryService{DB: db}
	if err := svc.ReserveSeats(25, 0, 2); err != nil {
		t.Fatalf("ReserveSeats error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseSeatsRestoresOverlaps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectAdjustCycle(mock, [3]int{12, 12, 12})
	mock.ExpectExec("UPDATE trip_segments").WithArgs(14, int64(25), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_segments").WithArgs(14, int64(25), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_segments").WithArgs(14, int64(25), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := InventoryService{DB: db}
	if err := svc.ReleaseSeats(25, 2, 2); err != nil {
		t.Fatalf("ReleaseSeats error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateSeatAvailabilityRejectsPaddedKey(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := InventoryService{DB: db}
	// the key is a contract: whitespace is not forgiven
	if err := svc.ValidateSeatAvailability(" 25_0", 1); !domain.IsMalformedKey(err) {
		t.Fatalf("padded key should be malformed, got %v", err)
	}
	if err := svc.ValidateSeatAvailability("25_0 ", 1); !domain.IsMalformedKey(err) {
		t.Fatalf("trailing space should be malformed, got %v", err)
	}
}

func expectDeadlockCycle(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery("FROM trip_records").WithArgs(int64(25)).
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
	mock.ExpectRollback()
}

func TestReserveSeatsDeadlockExhaustsRetries(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// every attempt hits the deadlock; after the third the caller gets a conflict
	expectDeadlockCycle(mock)
	expectDeadlockCycle(mock)
	expectDeadlockCycle(mock)

	svc := InventoryService{DB: db}
	err = svc.ReserveSeats(25, 0, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("exhausted retries should surface a conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsRecoversAfterDeadlock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectDeadlockCycle(mock)
	expectAdjustCycle(mock, [3]int{14, 14, 14})
	mock.ExpectExec("UPDATE trip_segments").WithArgs(13, int64(25), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_segments").WithArgs(14, int64(25), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip_segments").WithArgs(13, int64(25), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := InventoryService{DB: db}
	if err := svc.ReserveSeats(25, 0, 1); err != nil {
		t.Fatalf("second attempt should succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsRechecksSufficiencyUnderLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// a racing booking drained the segment between validation and the lock
	mock.ExpectBegin()
	mock.ExpectQuery("FROM trip_records").WithArgs(int64(25)).
		WillReturnRows(tripRecordRow(25, 7, 14))
	mock.ExpectQuery("FROM trip_segments").WithArgs(int64(25)).
		WillReturnRows(sqlmock.NewRows([]string{"segment_index", "origin", "destination", "available_seats"}).
			AddRow(0, "Pasir Pengaraian", "Pekanbaru", 1))
	mock.ExpectRollback()

	svc := InventoryService{DB: db}
	if err := svc.ReserveSeats(25, 0, 2); !domain.IsInsufficientSeats(err) {
		t.Fatalf("expected InsufficientSeatsError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsSegmentOutOfRangeRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trip_records").WithArgs(int64(25)).
		WillReturnRows(tripRecordRow(25, 7, 14))
	mock.ExpectQuery("FROM trip_segments").WithArgs(int64(25)).
		WillReturnRows(sqlmock.NewRows([]string{"segment_index", "origin", "destination", "available_seats"}).
			AddRow(0, "Pasir Pengaraian", "Pekanbaru", 14))
	mock.ExpectRollback()

	svc := InventoryService{DB: db}
	if err := svc.ReserveSeats(25, 5, 1); !domain.IsSegmentRange(err) {
		t.Fatalf("expected SegmentRangeError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
