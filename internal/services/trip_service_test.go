package services

import (
	"testing"

	"busops/internal/domain"
	"busops/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectRoute7(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM routes").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "origin", "destination"}).
			AddRow(7, "PP - PKU", "Pasir Pengaraian", "Pekanbaru"))
	mock.ExpectQuery("FROM route_stops").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"stop_name"}).AddRow("Ujung Batu"))
}

func TestPublishTripCreatesAllSegmentsAtCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRoute7(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trip_records").
		WithArgs(int64(7), "2025-06-01", "08:00", "BM-01", 14, "published").
		WillReturnResult(sqlmock.NewResult(25, 1))
	mock.ExpectExec("INSERT INTO trip_segments").
		WithArgs(int64(25), 0, "Pasir Pengaraian", "Ujung Batu", 14).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO trip_segments").
		WithArgs(int64(25), 1, "Ujung Batu", "Pekanbaru", 14).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO trip_segments").
		WithArgs(int64(25), 2, "Pasir Pengaraian", "Pekanbaru", 14).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	svc := TripService{DB: db}
	recordID, err := svc.PublishTrip(PublishTripInput{
		RouteID:     7,
		TripDate:    "2025-06-01",
		TripTime:    "08:00",
		VehicleCode: "BM-01",
		Capacity:    14,
		Segments: []models.SegmentDef{
			{Origin: "Pasir Pengaraian", Destination: "Ujung Batu"},
			{Origin: "Ujung Batu", Destination: "Pekanbaru"},
			{Origin: "Pasir Pengaraian", Destination: "Pekanbaru"},
		},
	})
	if err != nil {
		t.Fatalf("PublishTrip error: %v", err)
	}
	if recordID != 25 {
		t.Fatalf("recordID = %d, want 25", recordID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPublishTripTakesCapacityFromVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRoute7(mock)
	mock.ExpectQuery("FROM vehicles").WithArgs("BM-01").
		WillReturnRows(sqlmock.NewRows([]string{"seats"}).AddRow(12))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trip_records").
		WithArgs(int64(7), "2025-06-01", "08:00", "BM-01", 12, "published").
		WillReturnResult(sqlmock.NewResult(26, 1))
	mock.ExpectExec("INSERT INTO trip_segments").
		WithArgs(int64(26), 0, "Pasir Pengaraian", "Pekanbaru", 12).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := TripService{DB: db}
	_, err = svc.PublishTrip(PublishTripInput{
		RouteID:     7,
		TripDate:    "2025-06-01",
		TripTime:    "08:00",
		VehicleCode: "BM-01",
		Segments: []models.SegmentDef{
			{Origin: "Pasir Pengaraian", Destination: "Pekanbaru"},
		},
	})
	if err != nil {
		t.Fatalf("PublishTrip error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPublishTripRejectsBackwardSegment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRoute7(mock)

	svc := TripService{DB: db}
	_, err = svc.PublishTrip(PublishTripInput{
		RouteID:  7,
		TripDate: "2025-06-01",
		TripTime: "08:00",
		Capacity: 14,
		Segments: []models.SegmentDef{
			{Origin: "Pekanbaru", Destination: "Ujung Batu"},
		},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("backward segment should be rejected, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPublishTripRejectsUnknownStop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRoute7(mock)

	svc := TripService{DB: db}
	_, err = svc.PublishTrip(PublishTripInput{
		RouteID:  7,
		TripDate: "2025-06-01",
		TripTime: "08:00",
		Capacity: 14,
		Segments: []models.SegmentDef{
			{Origin: "Pasir Pengaraian", Destination: "Dumai"},
		},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("unknown stop should be rejected, got %v", err)
	}
}

func TestPublishTripRejectsBadDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRoute7(mock)

	svc := TripService{DB: db}
	_, err = svc.PublishTrip(PublishTripInput{
		RouteID:  7,
		TripDate: "01-06-2025",
		TripTime: "08:00",
		Capacity: 14,
		Segments: []models.SegmentDef{
			{Origin: "Pasir Pengaraian", Destination: "Pekanbaru"},
		},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("date 01-06-2025 should be rejected, got %v", err)
	}
}
