package service

import (
	"database/sql"
	"time"

	"github.com/colective/fleet-backend-go/internal/database"
	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
)

// PaymentService handles business logic for payments
type PaymentService struct {
	db   *sql.DB
	repo *repository.PaymentRepository
	now  func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *sql.DB, repo *repository.PaymentRepository) *PaymentService {
	return &PaymentService{db: db, repo: repo, now: time.Now}
}

// Create records a manual payment for a driver
func (s *PaymentService) Create(req models.CreatePaymentRequest) (*models.Payment, error) {
	if req.DriverID <= 0 {
		return nil, invalidInput("driver_id", "is required")
	}
	if req.Amount <= 0 {
		return nil, invalidInput("amount", "must be positive")
	}

	var id int64
	err := database.Transaction(s.db, func(tx *sql.Tx) error {
		var err error
		id, err = s.repo.CreatePayment(tx, req.DriverID, nil, req.Amount, req.Method, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetPaymentByID(id)
}

// ListToday returns the payments created today
func (s *PaymentService) ListToday() ([]models.Payment, error) {
	start, end := dayBounds(s.now())
	return s.repo.GetPaymentsInRange(start, end)
}

// ListByDriver returns a driver's payments within a date range; an empty
// range defaults to today
func (s *PaymentService) ListByDriver(driverID int64, startDate, endDate string) ([]models.PaymentDetail, error) {
	if driverID <= 0 {
		return nil, invalidInput("driverId", "is required")
	}

	start, end, err := parseDateRange(startDate, endDate, s.now())
	if err != nil {
		return nil, err
	}

	return s.repo.GetPaymentsByDriver(driverID, start, end)
}

// dayBounds returns the start and end of t's calendar day
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24*time.Hour - time.Nanosecond)
}

// parseDateRange interprets optional YYYY-MM-DD bounds; a missing end date
// closes the range at the start date, and a fully empty range means today
func parseDateRange(startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	if startDate == "" {
		start, end := dayBounds(now)
		return start, end, nil
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
	if err != nil {
		return time.Time{}, time.Time{}, invalidInput("start_date", "must be YYYY-MM-DD")
	}

	endDay := start
	if endDate != "" {
		endDay, err = time.ParseInLocation("2006-01-02", endDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, invalidInput("end_date", "must be YYYY-MM-DD")
		}
	}

	_, end := dayBounds(endDay)
	return start, end, nil
}
