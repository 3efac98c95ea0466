package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	intconfig "busops/internal/config"
	intdb "busops/internal/db"
	"busops/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

// GET /api/vehicles?q=LK&page=1&limit=50
func GetVehicles(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	pageStr := strings.TrimSpace(c.Query("page"))
	limitStr := strings.TrimSpace(c.Query("limit"))

	// last_service diformat jadi string "YYYY-MM-DD" supaya aman walau DSN belum parseTime=true
	baseSelect := `
		SELECT
			id,
			vehicle_code,
			plate_number,
			seats,
			COALESCE(color,'') AS color,
			CASE
				WHEN last_service IS NULL THEN NULL
				ELSE DATE_FORMAT(last_service, '%Y-%m-%d')
			END AS last_service
		FROM vehicles
	`

	where := ""
	args := []any{}

	if q != "" {
		where = " WHERE (vehicle_code LIKE ? OR plate_number LIKE ?) "
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	order := " ORDER BY id DESC "

	query := baseSelect + where + order
	if pageStr != "" && limitStr != "" {
		page, _ := strconv.Atoi(pageStr)
		limit, _ := strconv.Atoi(limitStr)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 50
		}
		if limit > 200 {
			limit = 200
		}

		offset := (page - 1) * limit
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil data kendaraan", err)
		return
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		var last sql.NullString

		if err := rows.Scan(&v.ID, &v.VehicleCode, &v.PlateNumber, &v.Seats, &v.Color, &last); err != nil {
			RespondError(c, http.StatusInternalServerError, "gagal scan data kendaraan", err)
			return
		}
		if last.Valid {
			v.LastService = last.String
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "error iterasi rows", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func vehiclePayloadValues(c *gin.Context) (models.VehiclePayload, any, bool) {
	var payload models.VehiclePayload
	if !BindJSONOrError(c, &payload) {
		return payload, nil, false
	}

	payload.VehicleCode = strings.TrimSpace(payload.VehicleCode)
	payload.PlateNumber = strings.TrimSpace(payload.PlateNumber)
	if payload.VehicleCode == "" || payload.PlateNumber == "" {
		RespondError(c, http.StatusBadRequest, "vehicleCode dan plateNumber wajib diisi", nil)
		return payload, nil, false
	}
	if payload.Seats <= 0 {
		RespondError(c, http.StatusBadRequest, "seats harus lebih dari 0", nil)
		return payload, nil, false
	}

	// last_service: kosong -> NULL, kalau ada -> validasi YYYY-MM-DD
	var lastService any = nil
	if strings.TrimSpace(payload.LastService) != "" {
		if _, err := time.Parse("2006-01-02", payload.LastService); err != nil {
			RespondError(c, http.StatusBadRequest, "format lastService harus YYYY-MM-DD", nil)
			return payload, nil, false
		}
		lastService = payload.LastService
	}
	return payload, lastService, true
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	payload, lastService, ok := vehiclePayloadValues(c)
	if !ok {
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO vehicles (vehicle_code, plate_number, seats, color, last_service)
		VALUES (?, ?, ?, ?, ?)
	`, payload.VehicleCode, payload.PlateNumber, payload.Seats, intdb.NullIfEmpty(payload.Color), lastService)

	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			RespondError(c, http.StatusConflict, "kode atau plat kendaraan sudah terdaftar", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal menambah kendaraan", err)
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "kendaraan berhasil ditambahkan", "id": id})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	payload, lastService, ok := vehiclePayloadValues(c)
	if !ok {
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE vehicles
		SET vehicle_code = ?, plate_number = ?, seats = ?, color = ?, last_service = ?
		WHERE id = ?
	`, payload.VehicleCode, payload.PlateNumber, payload.Seats, intdb.NullIfEmpty(payload.Color), lastService, id)

	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			RespondError(c, http.StatusConflict, "kode atau plat kendaraan sudah terdaftar", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal update kendaraan", err)
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		RespondError(c, http.StatusNotFound, "kendaraan tidak ditemukan", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil diupdate"})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal hapus kendaraan", err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		RespondError(c, http.StatusNotFound, "kendaraan tidak ditemukan", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil dihapus"})
}
