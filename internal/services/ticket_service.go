package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"busops/internal/domain/models"
	"busops/internal/repositories"
	"busops/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService menghasilkan PDF e-ticket & invoice per booking.
type TicketService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
	Loader      func(int64) (models.Booking, error)
}

func (s TicketService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(booking)
}

func (s TicketService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(booking)
}

func (s TicketService) loadBooking(bookingID int64) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.BookingRepo.GetByID(bookingID)
}

func buildETicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Nama Pemesan   : %s", safe(b.PassengerName, "-")),
		fmt.Sprintf("No HP          : %s", safe(b.PassengerPhone, "-")),
		fmt.Sprintf("Jumlah Kursi   : %d", b.SeatCount),
		fmt.Sprintf("Rute           : %s -> %s", safe(b.RouteFrom, "-"), safe(b.RouteTo, "-")),
		fmt.Sprintf("Tanggal/Jam    : %s %s", safe(b.TripDate, "-"), safe(b.TripTime, "-")),
		fmt.Sprintf("Kode Booking   : #%d", b.ID),
		fmt.Sprintf("Kode Ticket    : TCK-%d-%s", b.ID, safeFilenamePart(b.RouteTo)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: E-ticket ini berlaku untuk seluruh kursi pada booking. Harap tunjukkan saat keberangkatan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("eticket-%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Kode Booking   : #%d", b.ID),
		fmt.Sprintf("Nama Pemesan   : %s", safe(b.PassengerName, "-")),
		fmt.Sprintf("Rute           : %s -> %s", safe(b.RouteFrom, "-"), safe(b.RouteTo, "-")),
		fmt.Sprintf("Tanggal/Jam    : %s %s", safe(b.TripDate, "-"), safe(b.TripTime, "-")),
		fmt.Sprintf("Harga per Seat : %s", utils.FormatRupiah(b.PricePerSeat)),
		fmt.Sprintf("Jumlah Kursi   : %d", b.SeatCount),
		fmt.Sprintf("Total          : %s", utils.FormatRupiah(b.Total)),
		fmt.Sprintf("Status         : %s", safe(b.Status, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("invoice-%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

var filenamePartRe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeFilenamePart(s string) string {
	s = filenamePartRe.ReplaceAllString(strings.TrimSpace(s), "-")
	if s == "" {
		return "X"
	}
	return s
}
