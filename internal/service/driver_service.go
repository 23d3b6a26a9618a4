package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/colective/fleet-backend-go/internal/database"
	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
)

// Password assigned to drivers created without credentials; they must change
// it on first login (change_password defaults to set).
const defaultDriverPassword = "drivercolective341"

const defaultDriverPhoto = "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=150&h=150&fit=crop&crop=face"

// DriverService handles business logic for drivers
type DriverService struct {
	db         *sql.DB
	repo       *repository.DriverRepository
	userRepo   *repository.UserRepository
	bcryptCost int
}

// NewDriverService creates a new driver service
func NewDriverService(db *sql.DB, repo *repository.DriverRepository, userRepo *repository.UserRepository, bcryptCost int) *DriverService {
	return &DriverService{db: db, repo: repo, userRepo: userRepo, bcryptCost: bcryptCost}
}

// Create provisions a driver: its user account, its car (supplied or a
// generated placeholder) and the driver row, all in one transaction.
func (s *DriverService) Create(req models.CreateDriverRequest) (*models.Driver, error) {
	if req.Name == "" {
		return nil, invalidInput("name", "is required")
	}
	if req.License == "" {
		return nil, invalidInput("license", "is required")
	}

	email := req.Email
	if email == "" {
		email = strings.ToLower(req.License) + "@driver.com"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultDriverPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.DriverStatusAvailable
	}

	var driverID int64
	err = database.Transaction(s.db, func(tx *sql.Tx) error {
		userID, err := s.userRepo.CreateUser(tx, email, string(hash), req.Name, defaultDriverPhoto, "driver", req.CompanyID)
		if err != nil {
			return err
		}

		plate := strings.ToUpper(strings.TrimSpace(req.CarLicensePlate))
		model := req.CarModel
		observations := req.CarObservations
		if plate == "" {
			plate = "GEN-" + strings.ToUpper(uuid.NewString()[:8])
			model = "unassigned"
			observations = "placeholder vehicle"
		} else if model == "" {
			model = "unspecified"
		}

		carID, err := s.repo.CreateCar(tx, plate, model, observations)
		if err != nil {
			return err
		}

		driverID, err = s.repo.CreateDriver(tx, userID, strings.ToUpper(req.License), &carID, req.RouteID, req.Lat, req.Lng, status)
		return err
	})
	if err != nil {
		if conflict := classifyDriverConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, err
	}

	return s.repo.GetDriverByID(driverID)
}

// classifyDriverConflict maps unique violations on caller-supplied values to
// field-level conflicts
func classifyDriverConflict(err error) error {
	if !repository.IsUniqueViolation(err) {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "drivers.license"):
		return &ConflictError{Field: "license"}
	case strings.Contains(msg, "users.email"):
		return &ConflictError{Field: "email"}
	case strings.Contains(msg, "cars.license_plate"):
		return &ConflictError{Field: "license plate"}
	}
	return &ConflictError{Field: "driver"}
}

// Get retrieves a driver by id
func (s *DriverService) Get(id int64) (*models.Driver, error) {
	return s.repo.GetDriverByID(id)
}

// List retrieves all drivers
func (s *DriverService) List() ([]models.Driver, error) {
	return s.repo.ListDrivers()
}

// ListByCompany retrieves the drivers of one company
func (s *DriverService) ListByCompany(companyID int64) ([]models.Driver, error) {
	return s.repo.ListDriversByCompany(companyID)
}

// UpdateLocation updates a driver's live position
func (s *DriverService) UpdateLocation(id int64, req models.DriverLocationUpdate) error {
	if req.Lat == nil || req.Lng == nil {
		return invalidInput("lat/lng", "are required")
	}
	return s.repo.UpdateLocation(id, *req.Lat, *req.Lng)
}

// UpdateStatus updates a driver's availability
func (s *DriverService) UpdateStatus(id int64, req models.DriverStatusUpdate) error {
	if req.Status == "" {
		return invalidInput("status", "is required")
	}
	return s.repo.UpdateStatus(id, req.Status)
}
