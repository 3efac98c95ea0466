package services

import (
	"testing"
	"time"

	"busops/internal/domain/models"
)

func TestTicketServiceGenerate(t *testing.T) {
	loader := func(id int64) (models.Booking, error) {
		return models.Booking{
			ID:             id,
			TripRecordID:   25,
			SegmentIndex:   0,
			SeatCount:      2,
			PassengerName:  "Tester",
			PassengerPhone: "0800",
			RouteFrom:      "Pasir Pengaraian",
			RouteTo:        "Pekanbaru",
			TripDate:       time.Now().Format("2006-01-02"),
			TripTime:       "10:00",
			PricePerSeat:   150000,
			Total:          300000,
			Status:         models.BookingStatusActive,
		}, nil
	}

	svc := TicketService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket(1)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}

	invoice, invName, err := svc.GenerateInvoice(1)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(invoice) == 0 || invName == "" {
		t.Fatalf("GenerateInvoice returned empty data")
	}
}
