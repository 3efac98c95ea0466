package handlers

import (
	"net/http"
	"sync"

	intconfig "busops/internal/config"
	intdb "busops/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes-list).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "busops backend berjalan"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database tidak bisa di-ping: " + err.Error()})
		return
	}

	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM trip_records").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query ke database: " + err.Error()})
		return
	}

	tables := gin.H{}
	for _, t := range []string{"routes", "route_stops", "trip_records", "trip_segments", "bookings", "users", "vehicles"} {
		tables[t] = intdb.HasTable(intconfig.DB, t)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "koneksi database OK",
		"trip_records_in_db": count,
		"tables":             tables,
		"vehicles_has_seats": intdb.HasColumn(intconfig.DB, "vehicles", "seats"),
	})
}

func RouteTable(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
