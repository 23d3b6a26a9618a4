package service

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
)

func newDriverService(t *testing.T) (*DriverService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewDriverService(db, repository.NewDriverRepository(db), repository.NewUserRepository(db), bcrypt.MinCost)
	return svc, db
}

func TestCreateDriverProvisionsEverything(t *testing.T) {
	svc, db := newDriverService(t)

	driver, err := svc.Create(models.CreateDriverRequest{
		Name:            "Juan Perez",
		License:         "q12345",
		CarLicensePlate: "abc-123",
		CarModel:        "Hyundai H1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if driver.License != "Q12345" {
		t.Errorf("expected uppercased license Q12345, got %s", driver.License)
	}
	if driver.Status != models.DriverStatusAvailable {
		t.Errorf("expected default status available, got %s", driver.Status)
	}
	if driver.Car == nil || driver.Car.LicensePlate != "ABC-123" {
		t.Errorf("unexpected car: %+v", driver.Car)
	}

	var email, role string
	err = db.QueryRow("SELECT email, role FROM users WHERE id = ?", driver.UserID).Scan(&email, &role)
	if err != nil {
		t.Fatalf("failed to read created user: %v", err)
	}
	if email != "q12345@driver.com" {
		t.Errorf("expected generated email q12345@driver.com, got %s", email)
	}
	if role != "driver" {
		t.Errorf("expected role driver, got %s", role)
	}
}

func TestCreateDriverPlaceholderCar(t *testing.T) {
	svc, _ := newDriverService(t)

	driver, err := svc.Create(models.CreateDriverRequest{Name: "Juan Perez", License: "Q12345"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if driver.Car == nil {
		t.Fatal("expected a placeholder car")
	}
	if !strings.HasPrefix(driver.Car.LicensePlate, "GEN-") {
		t.Errorf("expected generated plate, got %s", driver.Car.LicensePlate)
	}
}

func TestCreateDriverDuplicateLicense(t *testing.T) {
	svc, db := newDriverService(t)

	if _, err := svc.Create(models.CreateDriverRequest{Name: "Juan Perez", License: "Q12345"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := svc.Create(models.CreateDriverRequest{
		Name:    "Pedro Diaz",
		Email:   "pedro@colective.com",
		License: "Q12345",
	})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Field != "license" {
		t.Errorf("expected conflict on license, got %s", conflict.Field)
	}

	// The rejected second driver must not leave a half-provisioned user.
	var users int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = 'pedro@colective.com'").Scan(&users); err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if users != 0 {
		t.Error("conflicting create left a user row behind")
	}
}

func TestUpdateLocationAndStatus(t *testing.T) {
	svc, _ := newDriverService(t)

	driver, err := svc.Create(models.CreateDriverRequest{Name: "Juan Perez", License: "Q12345"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.UpdateLocation(driver.ID, models.DriverLocationUpdate{Lat: float64Ptr(-12.05), Lng: float64Ptr(-77.04)}); err != nil {
		t.Fatalf("UpdateLocation failed: %v", err)
	}
	if err := svc.UpdateStatus(driver.ID, models.DriverStatusUpdate{Status: models.DriverStatusOffline}); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	got, err := svc.Get(driver.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Lat != -12.05 || got.Lng != -77.04 {
		t.Errorf("location not updated: %f,%f", got.Lat, got.Lng)
	}
	if got.Status != models.DriverStatusOffline {
		t.Errorf("status not updated: %s", got.Status)
	}

	if err := svc.UpdateLocation(driver.ID, models.DriverLocationUpdate{Lat: float64Ptr(-12.05)}); err == nil {
		t.Error("expected missing lng to be rejected")
	}
}
