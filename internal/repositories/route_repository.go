package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "busops/internal/config"
	"busops/internal/domain"
	"busops/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID loads a route together with its ordered intermediate stops.
func (r RouteRepository) GetByID(routeID int64) (models.Route, error) {
	var out models.Route
	if routeID <= 0 {
		return out, domain.ValidationError{Field: "route_id", Msg: "id tidak valid"}
	}
	db := r.db()

	err := db.QueryRow(`
		SELECT id, name, origin, destination
		FROM routes
		WHERE id = ?
	`, routeID).Scan(&out.ID, &out.Name, &out.Origin, &out.Destination)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, domain.NotFoundError{Resource: "route", Err: err}
		}
		return out, err
	}

	stops, err := r.listStops(routeID)
	if err != nil {
		return out, err
	}
	out.Stops = stops
	return out, nil
}

// GetStopSequence returns the canonical ordered stop list for a route:
// origin, intermediate stops, destination.
func (r RouteRepository) GetStopSequence(routeID int64) ([]string, error) {
	route, err := r.GetByID(routeID)
	if err != nil {
		return nil, err
	}
	return route.StopSequence(), nil
}

func (r RouteRepository) listStops(routeID int64) ([]string, error) {
	rows, err := r.db().Query(`
		SELECT stop_name
		FROM route_stops
		WHERE route_id = ?
		ORDER BY position ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return stops, err
		}
		stops = append(stops, strings.TrimSpace(s))
	}
	return stops, rows.Err()
}

// List returns all routes with their stop lists, newest first.
func (r RouteRepository) List() ([]models.Route, error) {
	db := r.db()
	rows, err := db.Query(`
		SELECT id, name, origin, destination
		FROM routes
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Origin, &rt.Destination); err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	for i := range out {
		stops, err := r.listStops(out[i].ID)
		if err != nil {
			return out, err
		}
		out[i].Stops = stops
	}
	return out, nil
}

// Create validates the route and persists it with its stop order in one tx.
func (r RouteRepository) Create(route models.Route) (int64, error) {
	if err := route.Validate(); err != nil {
		return 0, err
	}

	db := r.db()
	tx, err := db.Begin()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO routes (name, origin, destination, created_at)
		VALUES (?, ?, ?, NOW())
	`, strings.TrimSpace(route.Name), route.Origin, route.Destination)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	routeID, _ := res.LastInsertId()

	for pos, stop := range route.Stops {
		if _, err := tx.Exec(`
			INSERT INTO route_stops (route_id, position, stop_name)
			VALUES (?, ?, ?)
		`, routeID, pos, stop); err != nil {
			return 0, domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return routeID, nil
}

// HasPublishedTrips reports whether any trip record references the route.
// Stop sequences are immutable once a trip is published against them.
func (r RouteRepository) HasPublishedTrips(routeID int64) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM trip_records WHERE route_id = ?
	`, routeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update replaces name and stop order. Refused when trips already reference
// the route, supaya posisi segment yang tersimpan tidak jadi basi.
func (r RouteRepository) Update(route models.Route) error {
	if route.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	if err := route.Validate(); err != nil {
		return err
	}

	published, err := r.HasPublishedTrips(route.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if published {
		return domain.ConflictError{Resource: "route", Msg: "rute sudah dipakai trip, urutan stop tidak bisa diubah"}
	}

	db := r.db()
	tx, err := db.Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE routes SET name = ?, origin = ?, destination = ? WHERE id = ?
	`, strings.TrimSpace(route.Name), route.Origin, route.Destination, route.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM routes WHERE id = ?`, route.ID).Scan(&exists); err == nil && exists == 0 {
			return domain.NotFoundError{Resource: "route"}
		}
	}

	if _, err := tx.Exec(`DELETE FROM route_stops WHERE route_id = ?`, route.ID); err != nil {
		return domain.InternalError{Err: err}
	}
	for pos, stop := range route.Stops {
		if _, err := tx.Exec(`
			INSERT INTO route_stops (route_id, position, stop_name)
			VALUES (?, ?, ?)
		`, route.ID, pos, stop); err != nil {
			return domain.InternalError{Err: err}
		}
	}

	return tx.Commit()
}

// Delete removes a route and its stops; refused when trips reference it.
func (r RouteRepository) Delete(routeID int64) error {
	if routeID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	published, err := r.HasPublishedTrips(routeID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if published {
		return domain.ConflictError{Resource: "route", Msg: "rute sudah dipakai trip"}
	}

	db := r.db()
	tx, err := db.Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM route_stops WHERE route_id = ?`, routeID); err != nil {
		return domain.InternalError{Err: err}
	}
	res, err := tx.Exec(`DELETE FROM routes WHERE id = ?`, routeID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return tx.Commit()
}
