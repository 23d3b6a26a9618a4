package service

import (
	"database/sql"
	"time"

	"github.com/colective/fleet-backend-go/internal/database"
	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
	"github.com/colective/fleet-backend-go/internal/spatial"
)

// TravelService handles business logic for travels
type TravelService struct {
	db           *sql.DB
	repo         *repository.TravelRepository
	trackingRepo *repository.TrackingRepository
	paymentRepo  *repository.PaymentRepository
	fareAmount   float64
	now          func() time.Time
}

// NewTravelService creates a new travel service
func NewTravelService(db *sql.DB, repo *repository.TravelRepository, trackingRepo *repository.TrackingRepository, paymentRepo *repository.PaymentRepository, fareAmount float64) *TravelService {
	return &TravelService{
		db:           db,
		repo:         repo,
		trackingRepo: trackingRepo,
		paymentRepo:  paymentRepo,
		fareAmount:   fareAmount,
		now:          time.Now,
	}
}

// Start opens a travel for a driver
func (s *TravelService) Start(req models.StartTravelRequest) (*models.Travel, error) {
	if req.DriverID <= 0 {
		return nil, invalidInput("driverId", "is required")
	}
	return s.repo.CreateTravel(req.DriverID, req.RouteName, s.now())
}

// End closes a travel and records the configured fare for its driver. The
// travel update and the payment insert share one transaction. Ending an
// already completed travel returns it unchanged and records no second fare.
func (s *TravelService) End(req models.EndTravelRequest) (*models.Travel, error) {
	if req.TravelID <= 0 {
		return nil, invalidInput("travelId", "is required")
	}

	var ended *models.Travel
	err := database.Transaction(s.db, func(tx *sql.Tx) error {
		travel, err := s.repo.GetTravelByIDTx(tx, req.TravelID)
		if err != nil {
			return err
		}
		if travel == nil {
			return ErrNotFound
		}
		if travel.Completed {
			ended = travel
			return nil
		}

		endedAt := s.now()
		duration := int64(endedAt.Sub(travel.StartedAt).Seconds())
		if err := s.repo.EndTravel(tx, travel.ID, endedAt, duration, req.Deviated); err != nil {
			return err
		}

		if _, err := s.paymentRepo.CreatePayment(tx, travel.DriverID, &travel.ID, s.fareAmount, "", endedAt); err != nil {
			return err
		}

		travel.EndedAt = &endedAt
		travel.DurationSeconds = &duration
		travel.Completed = true
		travel.Deviated = req.Deviated
		ended = travel
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ended, nil
}

// ListByDriver returns a driver's travels within a date range, each with its
// recorded path, haversine distance and incidents
func (s *TravelService) ListByDriver(filter models.TravelFilter) ([]models.TravelDetail, error) {
	if filter.DriverID <= 0 {
		return nil, invalidInput("driverId", "is required")
	}

	travels, err := s.repo.GetTravelsByDriver(filter)
	if err != nil {
		return nil, err
	}

	details := make([]models.TravelDetail, 0, len(travels))
	for _, t := range travels {
		samples, err := s.trackingRepo.GetSamplesByTravel(t.ID)
		if err != nil {
			return nil, err
		}

		path := make([]models.PathPoint, len(samples))
		points := make([]spatial.Point, len(samples))
		for i, sm := range samples {
			path[i] = models.PathPoint{Lat: sm.Latitude, Lng: sm.Longitude}
			points[i] = spatial.Point{Lat: sm.Latitude, Lon: sm.Longitude}
		}

		incidents, err := s.repo.GetIncidentsByTravel(t.ID)
		if err != nil {
			return nil, err
		}

		details = append(details, models.TravelDetail{
			Travel:         t,
			Path:           path,
			DistanceMeters: spatial.PathDistance(points),
			Incidents:      incidents,
		})
	}

	return details, nil
}

// ReportIncident records an incident against a travel
func (s *TravelService) ReportIncident(req models.ReportIncidentRequest) (*models.Incident, error) {
	if req.TravelID <= 0 {
		return nil, invalidInput("travelId", "is required")
	}
	if req.Location == "" {
		return nil, invalidInput("location", "is required")
	}
	return s.repo.CreateIncident(req.TravelID, req.Location, req.DurationSeconds)
}
