package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"busops/internal/domain"
	"busops/internal/domain/models"
	"busops/internal/http/middleware"
	"busops/internal/repositories"
	"busops/internal/services"

	"github.com/gin-gonic/gin"
)

type publishTripPayload struct {
	RouteID     int64               `json:"routeId" binding:"required"`
	TripDate    string              `json:"tripDate" binding:"required"`
	TripTime    string              `json:"tripTime" binding:"required"`
	VehicleCode string              `json:"vehicleCode"`
	Capacity    int                 `json:"capacity"`
	Segments    []models.SegmentDef `json:"segments" binding:"required"`
}

// POST /api/trips
func PublishTrip(c *gin.Context) {
	var req publishTripPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	recordID, err := svc.PublishTrip(services.PublishTripInput{
		RouteID:     req.RouteID,
		TripDate:    req.TripDate,
		TripTime:    req.TripTime,
		VehicleCode: req.VehicleCode,
		Capacity:    req.Capacity,
		Segments:    req.Segments,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recordId": recordID, "message": "trip dipublish"})
}

// GET /api/trips?date=YYYY-MM-DD
func GetTrips(c *gin.Context) {
	list, err := repositories.TripRepository{}.List(strings.TrimSpace(c.Query("date")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	repo := repositories.TripRepository{}
	trip, err := repo.GetTripRecord(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	segments, err := repo.GetAllSegments(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trip.Segments = segments
	c.JSON(http.StatusOK, trip)
}

// GET /api/trips/:id/segments
func GetTripSegments(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	repo := repositories.TripRepository{}
	if _, err := repo.GetTripRecord(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	segments, err := repo.GetAllSegments(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(segments))
	for _, seg := range segments {
		out = append(out, gin.H{
			"key":            domain.SegmentKey(id, seg.Index),
			"index":          seg.Index,
			"origin":         seg.Origin,
			"destination":    seg.Destination,
			"availableSeats": seg.AvailableSeats,
		})
	}
	c.JSON(http.StatusOK, gin.H{"segments": out})
}

// GET /api/trips/availability?key=25_0&seats=2
func CheckAvailability(c *gin.Context) {
	key := strings.TrimSpace(c.Query("key"))
	seats, err := strconv.Atoi(strings.TrimSpace(c.Query("seats")))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "seats tidak valid", err)
		return
	}

	svc := services.InventoryService{RequestID: middleware.GetRequestID(c)}
	if err := svc.ValidateSeatAvailability(key, seats); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "key": key, "seats": seats})
}

type tripStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/trips/:id/status
func UpdateTripStatus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req tripStatusPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := (repositories.TripRepository{}).UpdateStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status trip diperbarui"})
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := (repositories.TripRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip dihapus"})
}
