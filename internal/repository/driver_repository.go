package repository

import (
	"database/sql"
	"fmt"

	"github.com/colective/fleet-backend-go/internal/models"
)

// DriverRepository handles database operations for drivers and cars
type DriverRepository struct {
	db *sql.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// CreateCar inserts a car inside a transaction and returns its id
func (r *DriverRepository) CreateCar(tx *sql.Tx, licensePlate, model, observations string) (int64, error) {
	res, err := tx.Exec(`INSERT INTO cars (license_plate, model, observations) VALUES (?, ?, ?)`,
		licensePlate, model, observations)
	if err != nil {
		return 0, fmt.Errorf("failed to create car: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get car id: %w", err)
	}
	return id, nil
}

// CreateDriver inserts a driver inside a transaction and returns its id
func (r *DriverRepository) CreateDriver(tx *sql.Tx, userID int64, license string, carID, routeID *int64, lat, lng float64, status string) (int64, error) {
	res, err := tx.Exec(`INSERT INTO drivers (user_id, license, car_id, route_id, lat, lng, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, license, carID, routeID, lat, lng, status)
	if err != nil {
		return 0, fmt.Errorf("failed to create driver: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get driver id: %w", err)
	}
	return id, nil
}

const driverColumns = `SELECT
	d.id, d.user_id, d.license, d.lat, d.lng, d.status,
	u.name, u.photo,
	r.id, r.name,
	car.id, car.license_plate, car.model, car.observations
	FROM drivers d
	JOIN users u ON d.user_id = u.id
	LEFT JOIN routes r ON r.id = d.route_id
	LEFT JOIN cars car ON d.car_id = car.id`

// GetDriverByID retrieves a driver joined with its user, route and car
func (r *DriverRepository) GetDriverByID(id int64) (*models.Driver, error) {
	rows, err := r.db.Query(driverColumns+" WHERE d.id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query driver: %w", err)
	}
	defer rows.Close()

	drivers, err := scanDrivers(rows)
	if err != nil {
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, nil
	}
	return &drivers[0], nil
}

// GetDriverByUserID retrieves the driver profile owned by a user
func (r *DriverRepository) GetDriverByUserID(userID int64) (*models.Driver, error) {
	rows, err := r.db.Query(driverColumns+" WHERE d.user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query driver: %w", err)
	}
	defer rows.Close()

	drivers, err := scanDrivers(rows)
	if err != nil {
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, nil
	}
	return &drivers[0], nil
}

// ListDrivers retrieves all drivers
func (r *DriverRepository) ListDrivers() ([]models.Driver, error) {
	rows, err := r.db.Query(driverColumns + " ORDER BY d.id")
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	return scanDrivers(rows)
}

// ListDriversByCompany retrieves the drivers belonging to one company
func (r *DriverRepository) ListDriversByCompany(companyID int64) ([]models.Driver, error) {
	rows, err := r.db.Query(driverColumns+" WHERE u.company_id = ? ORDER BY d.id", companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	return scanDrivers(rows)
}

func scanDrivers(rows *sql.Rows) ([]models.Driver, error) {
	var drivers []models.Driver
	for rows.Next() {
		var d models.Driver
		var photo sql.NullString
		var routeID sql.NullInt64
		var routeName sql.NullString
		var carID sql.NullInt64
		var plate, model, observations sql.NullString

		err := rows.Scan(
			&d.ID, &d.UserID, &d.License, &d.Lat, &d.Lng, &d.Status,
			&d.Name, &photo,
			&routeID, &routeName,
			&carID, &plate, &model, &observations,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}

		d.Photo = photo.String
		if routeID.Valid {
			d.Route = &models.RouteRef{ID: routeID.Int64, Name: routeName.String}
		}
		if carID.Valid {
			d.Car = &models.Car{
				ID:           carID.Int64,
				LicensePlate: plate.String,
				Model:        model.String,
				Observations: observations.String,
			}
		}
		drivers = append(drivers, d)
	}

	return drivers, rows.Err()
}

// UpdateLocation updates a driver's live position
func (r *DriverRepository) UpdateLocation(id int64, lat, lng float64) error {
	_, err := r.db.Exec(`UPDATE drivers SET lat = ?, lng = ? WHERE id = ?`, lat, lng, id)
	if err != nil {
		return fmt.Errorf("failed to update driver location: %w", err)
	}
	return nil
}

// UpdateStatus updates a driver's availability status
func (r *DriverRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`UPDATE drivers SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}
	return nil
}

// UpdateStatusByUser updates the status of the driver owned by a user
func (r *DriverRepository) UpdateStatusByUser(userID int64, status string) error {
	_, err := r.db.Exec(`UPDATE drivers SET status = ? WHERE user_id = ?`, status, userID)
	if err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}
	return nil
}
