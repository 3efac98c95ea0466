package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"busops/internal/http/middleware"
	"busops/internal/repositories"
	"busops/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingPayload struct {
	TripKey        string `json:"tripKey" binding:"required"`
	SeatCount      int    `json:"seatCount" binding:"required"`
	PassengerName  string `json:"passengerName" binding:"required"`
	PassengerPhone string `json:"passengerPhone" binding:"required"`
}

type transferBookingPayload struct {
	NewTripKey string `json:"newTripKey" binding:"required"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.CreateBooking(services.CreateBookingInput{
		TripKey:        req.TripKey,
		SeatCount:      req.SeatCount,
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings?trip=25&status=active
func GetBookings(c *gin.Context) {
	var tripRecordID int64
	if raw := strings.TrimSpace(c.Query("trip")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "parameter trip tidak valid", err)
			return
		}
		tripRecordID = id
	}

	list, err := repositories.BookingRepository{}.List(tripRecordID, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	booking, err := repositories.BookingRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.CancelBooking(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dibatalkan"})
}

// POST /api/bookings/:id/transfer
func TransferBooking(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req transferBookingPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.TransferBooking(id, req.NewTripKey)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /api/bookings/:id/eticket
func DownloadETicket(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	svc := services.TicketService{RequestID: middleware.GetRequestID(c)}
	payload, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}

// GET /api/bookings/:id/invoice
func DownloadInvoice(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	svc := services.TicketService{RequestID: middleware.GetRequestID(c)}
	payload, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
