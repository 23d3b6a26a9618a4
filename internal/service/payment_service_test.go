package service

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
)

func newPaymentService(t *testing.T) (*PaymentService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewPaymentService(db, repository.NewPaymentRepository(db)), db
}

func TestCreatePayment(t *testing.T) {
	svc, db := newPaymentService(t)
	driverID := seedDriver(t, db, "d1@driver.com", "L-001")

	payment, err := svc.Create(models.CreatePaymentRequest{DriverID: driverID, Amount: 12.5, Method: "yape"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if payment.Amount != 12.5 {
		t.Errorf("expected amount 12.5, got %f", payment.Amount)
	}
	if payment.Method != "yape" {
		t.Errorf("expected method yape, got %s", payment.Method)
	}
	if payment.Status != "pending" {
		t.Errorf("expected status pending, got %s", payment.Status)
	}

	var invalid *InvalidInputError
	if _, err := svc.Create(models.CreatePaymentRequest{DriverID: driverID, Amount: 0}); !errors.As(err, &invalid) {
		t.Errorf("zero amount: expected InvalidInputError, got %v", err)
	}
	if _, err := svc.Create(models.CreatePaymentRequest{Amount: 10}); !errors.As(err, &invalid) {
		t.Errorf("missing driver: expected InvalidInputError, got %v", err)
	}
}

func TestListTodayExcludesOtherDays(t *testing.T) {
	svc, db := newPaymentService(t)
	driverID := seedDriver(t, db, "d1@driver.com", "L-001")

	today := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	if _, err := svc.Create(models.CreatePaymentRequest{DriverID: driverID, Amount: 5}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A payment from the previous day must not show up.
	repo := repository.NewPaymentRepository(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin tx: %v", err)
	}
	if _, err := repo.CreatePayment(tx, driverID, nil, 7, "", today.Add(-24*time.Hour)); err != nil {
		t.Fatalf("failed to insert old payment: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	payments, err := svc.ListToday()
	if err != nil {
		t.Fatalf("ListToday failed: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment today, got %d", len(payments))
	}
	if payments[0].Amount != 5 {
		t.Errorf("expected today's payment of 5, got %f", payments[0].Amount)
	}
}

func TestListByDriverDateRange(t *testing.T) {
	svc, db := newPaymentService(t)
	driverID := seedDriver(t, db, "d1@driver.com", "L-001")

	svc.now = func() time.Time { return time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC) }
	if _, err := svc.Create(models.CreatePaymentRequest{DriverID: driverID, Amount: 5}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	payments, err := svc.ListByDriver(driverID, "2025-06-10", "2025-06-10")
	if err != nil {
		t.Fatalf("ListByDriver failed: %v", err)
	}
	if len(payments) != 1 {
		t.Errorf("expected 1 payment in range, got %d", len(payments))
	}

	payments, err = svc.ListByDriver(driverID, "2025-06-01", "2025-06-05")
	if err != nil {
		t.Fatalf("ListByDriver failed: %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("expected no payments outside range, got %d", len(payments))
	}

	var invalid *InvalidInputError
	if _, err := svc.ListByDriver(driverID, "10-06-2025", ""); !errors.As(err, &invalid) {
		t.Errorf("bad date: expected InvalidInputError, got %v", err)
	}
}
