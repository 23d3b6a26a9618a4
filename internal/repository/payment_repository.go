package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/colective/fleet-backend-go/internal/models"
)

// PaymentRepository handles database operations for payments
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment records a payment inside a transaction
func (r *PaymentRepository) CreatePayment(tx *sql.Tx, driverID int64, travelID *int64, amount float64, method string, createdAt time.Time) (int64, error) {
	res, err := tx.Exec(`INSERT INTO payments (driver_id, travel_id, amount, method, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		driverID, travelID, amount, nullableString(method), createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get payment id: %w", err)
	}
	return id, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// GetPaymentByID retrieves a single payment
func (r *PaymentRepository) GetPaymentByID(id int64) (*models.Payment, error) {
	var p models.Payment
	var method sql.NullString
	err := r.db.QueryRow(`SELECT id, driver_id, travel_id, amount, method, status,
		created_at, paid_at, verified_at FROM payments WHERE id = ?`, id).
		Scan(&p.ID, &p.DriverID, &p.TravelID, &p.Amount, &method, &p.Status,
			&p.CreatedAt, &p.PaidAt, &p.VerifiedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	p.Method = method.String
	return &p, nil
}

// GetPaymentsInRange retrieves payments created within a time range
func (r *PaymentRepository) GetPaymentsInRange(start, end time.Time) ([]models.Payment, error) {
	rows, err := r.db.Query(`SELECT id, driver_id, travel_id, amount, method, status,
		created_at, paid_at, verified_at
		FROM payments WHERE created_at >= ? AND created_at <= ?
		ORDER BY created_at DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

func scanPayments(rows *sql.Rows) ([]models.Payment, error) {
	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var method sql.NullString
		err := rows.Scan(&p.ID, &p.DriverID, &p.TravelID, &p.Amount, &method, &p.Status,
			&p.CreatedAt, &p.PaidAt, &p.VerifiedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Method = method.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetPaymentsByDriver retrieves a driver's payments within a time range,
// joined with the driver shape for the dashboard
func (r *PaymentRepository) GetPaymentsByDriver(driverID int64, start, end time.Time) ([]models.PaymentDetail, error) {
	rows, err := r.db.Query(`SELECT
		p.id, p.driver_id, p.travel_id, p.amount, p.method, p.status,
		p.created_at, p.paid_at, p.verified_at,
		d.id, d.user_id, d.license, d.lat, d.lng, d.status,
		u.name, u.photo,
		car.id, car.license_plate, car.model, car.observations
		FROM payments p
		JOIN drivers d ON p.driver_id = d.id
		JOIN users u ON d.user_id = u.id
		LEFT JOIN cars car ON d.car_id = car.id
		WHERE p.driver_id = ? AND p.created_at >= ? AND p.created_at <= ?
		ORDER BY p.created_at DESC`,
		driverID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var details []models.PaymentDetail
	for rows.Next() {
		var pd models.PaymentDetail
		var method sql.NullString
		var photo sql.NullString
		var carID sql.NullInt64
		var plate, model, observations sql.NullString

		err := rows.Scan(
			&pd.ID, &pd.DriverID, &pd.TravelID, &pd.Amount, &method, &pd.Status,
			&pd.CreatedAt, &pd.PaidAt, &pd.VerifiedAt,
			&pd.Driver.ID, &pd.Driver.UserID, &pd.Driver.License,
			&pd.Driver.Lat, &pd.Driver.Lng, &pd.Driver.Status,
			&pd.Driver.Name, &photo,
			&carID, &plate, &model, &observations,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		pd.Method = method.String
		pd.Driver.Photo = photo.String
		if carID.Valid {
			pd.Driver.Car = &models.Car{
				ID:           carID.Int64,
				LicensePlate: plate.String,
				Model:        model.String,
				Observations: observations.String,
			}
		}
		details = append(details, pd)
	}

	return details, rows.Err()
}
