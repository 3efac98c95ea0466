package handlers

import (
	"net/http"

	"busops/internal/domain/models"
	"busops/internal/repositories"
	"busops/internal/utils"

	"github.com/gin-gonic/gin"
)

type routePayload struct {
	Name        string   `json:"name" binding:"required"`
	Origin      string   `json:"origin" binding:"required"`
	Stops       []string `json:"stops"`
	StopsText   string   `json:"stopsText"` // alternatif: "Ujung Batu, Bangkinang"
	Destination string   `json:"destination" binding:"required"`
}

func (p routePayload) toModel(id int64) models.Route {
	stops := make([]string, 0, len(p.Stops))
	for _, s := range p.Stops {
		if v := utils.NormalizeSpace(s); v != "" {
			stops = append(stops, v)
		}
	}
	if len(stops) == 0 && p.StopsText != "" {
		stops = utils.SplitStopList(p.StopsText)
	}
	return models.Route{
		ID:          id,
		Name:        utils.NormalizeSpace(p.Name),
		Origin:      utils.NormalizeSpace(p.Origin),
		Stops:       stops,
		Destination: utils.NormalizeSpace(p.Destination),
	}
}

// GET /api/routes
func GetRoutes(c *gin.Context) {
	list, err := repositories.RouteRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	route, err := repositories.RouteRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var req routePayload
	if !BindJSONOrError(c, &req) {
		return
	}

	id, err := repositories.RouteRepository{}.Create(req.toModel(0))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "rute dibuat"})
}

// PUT /api/routes/:id
func UpdateRoute(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req routePayload
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := (repositories.RouteRepository{}).Update(req.toModel(id)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rute diperbarui"})
}

// DELETE /api/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := (repositories.RouteRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rute dihapus"})
}
