package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/colective/fleet-backend-go/internal/models"
)

// TravelRepository handles database operations for travels and incidents
type TravelRepository struct {
	db *sql.DB
}

// NewTravelRepository creates a new travel repository
func NewTravelRepository(db *sql.DB) *TravelRepository {
	return &TravelRepository{db: db}
}

// CreateTravel opens a travel for a driver
func (r *TravelRepository) CreateTravel(driverID int64, routeName string, startedAt time.Time) (*models.Travel, error) {
	res, err := r.db.Exec(`INSERT INTO travels (driver_id, route_name, started_at) VALUES (?, ?, ?)`,
		driverID, routeName, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create travel: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get travel id: %w", err)
	}

	return r.GetTravelByID(id)
}

// GetTravelByID retrieves a single travel
func (r *TravelRepository) GetTravelByID(id int64) (*models.Travel, error) {
	return scanTravel(r.db.QueryRow(travelColumns+" WHERE id = ?", id))
}

// GetTravelByIDTx retrieves a travel inside a transaction
func (r *TravelRepository) GetTravelByIDTx(tx *sql.Tx, id int64) (*models.Travel, error) {
	return scanTravel(tx.QueryRow(travelColumns+" WHERE id = ?", id))
}

const travelColumns = `SELECT id, driver_id, route_name, started_at, ended_at,
	duration_seconds, completed, deviated FROM travels`

func scanTravel(row *sql.Row) (*models.Travel, error) {
	var t models.Travel
	var routeName sql.NullString
	err := row.Scan(&t.ID, &t.DriverID, &routeName, &t.StartedAt, &t.EndedAt,
		&t.DurationSeconds, &t.Completed, &t.Deviated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan travel: %w", err)
	}
	t.RouteName = routeName.String
	return &t, nil
}

// EndTravel closes a travel inside a transaction
func (r *TravelRepository) EndTravel(tx *sql.Tx, id int64, endedAt time.Time, durationSeconds int64, deviated bool) error {
	_, err := tx.Exec(`UPDATE travels
		SET ended_at = ?, duration_seconds = ?, completed = 1, deviated = ?
		WHERE id = ?`,
		endedAt, durationSeconds, deviated, id)
	if err != nil {
		return fmt.Errorf("failed to end travel: %w", err)
	}
	return nil
}

// GetTravelsByDriver retrieves a driver's travels within a date range,
// newest first
func (r *TravelRepository) GetTravelsByDriver(filter models.TravelFilter) ([]models.Travel, error) {
	rows, err := r.db.Query(travelColumns+`
		WHERE driver_id = ? AND started_at >= ? AND started_at <= ?
		ORDER BY started_at DESC`,
		filter.DriverID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query travels: %w", err)
	}
	defer rows.Close()

	var travels []models.Travel
	for rows.Next() {
		var t models.Travel
		var routeName sql.NullString
		err := rows.Scan(&t.ID, &t.DriverID, &routeName, &t.StartedAt, &t.EndedAt,
			&t.DurationSeconds, &t.Completed, &t.Deviated)
		if err != nil {
			return nil, fmt.Errorf("failed to scan travel: %w", err)
		}
		t.RouteName = routeName.String
		travels = append(travels, t)
	}

	return travels, rows.Err()
}

// CreateIncident records an incident against a travel
func (r *TravelRepository) CreateIncident(travelID int64, location string, durationSeconds *int64) (*models.Incident, error) {
	res, err := r.db.Exec(`INSERT INTO incidents (travel_id, location, duration_seconds) VALUES (?, ?, ?)`,
		travelID, location, durationSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get incident id: %w", err)
	}

	var inc models.Incident
	err = r.db.QueryRow(`SELECT id, travel_id, location, duration_seconds, created_at
		FROM incidents WHERE id = ?`, id).
		Scan(&inc.ID, &inc.TravelID, &inc.Location, &inc.DurationSeconds, &inc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}
	return &inc, nil
}

// GetIncidentsByTravel retrieves incidents for a travel in report order
func (r *TravelRepository) GetIncidentsByTravel(travelID int64) ([]models.Incident, error) {
	rows, err := r.db.Query(`SELECT id, travel_id, location, duration_seconds, created_at
		FROM incidents WHERE travel_id = ? ORDER BY id ASC`, travelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var incidents []models.Incident
	for rows.Next() {
		var inc models.Incident
		err := rows.Scan(&inc.ID, &inc.TravelID, &inc.Location, &inc.DurationSeconds, &inc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, inc)
	}

	return incidents, rows.Err()
}
