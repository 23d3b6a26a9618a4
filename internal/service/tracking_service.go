package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/colective/fleet-backend-go/internal/database"
	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
	"github.com/colective/fleet-backend-go/internal/spatial"
)

// TrackingService ingests batches of location samples. Each batch carries a
// client-generated identifier; resubmitting a committed batch is a no-op, so
// clients can retry freely after a lost response.
type TrackingService struct {
	db   *sql.DB
	repo *repository.TrackingRepository
	now  func() time.Time
}

// NewTrackingService creates a new tracking service
func NewTrackingService(db *sql.DB, repo *repository.TrackingRepository) *TrackingService {
	return &TrackingService{db: db, repo: repo, now: time.Now}
}

// Ingest validates and durably records a batch of samples exactly once.
//
// The whole write path runs in one transaction: batch_id pre-check, ordered
// sample inserts, batch marker insert. Either everything commits or nothing
// does, so a failed attempt leaves the batch unseen and a retry starts
// clean. A race between two first-time submissions of the same batch_id is
// settled by the UNIQUE constraint on tracking_batches.batch_id: the loser
// gets ErrDuplicateBatch, never partial rows.
func (s *TrackingService) Ingest(req models.IngestRequest) (*models.IngestResult, error) {
	if err := validateIngestRequest(req); err != nil {
		return nil, err
	}

	result := &models.IngestResult{BatchID: req.BatchID}

	err := database.Transaction(s.db, func(tx *sql.Tx) error {
		exists, err := s.repo.BatchExists(tx, req.BatchID)
		if err != nil {
			return err
		}
		if exists {
			result.AlreadyProcessed = true
			return nil
		}

		inserted, err := s.repo.InsertSamples(tx, req.TravelID, req.Samples, s.now())
		if err != nil {
			return err
		}

		if err := s.repo.RecordBatch(tx, req.BatchID, req.TravelID, inserted, s.now()); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateBatch
			}
			return err
		}

		result.InsertedCount = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetTravelPath returns a travel's samples in insertion order together with
// the haversine length of the path
func (s *TrackingService) GetTravelPath(travelID int64) ([]models.LocationSample, float64, error) {
	samples, err := s.repo.GetSamplesByTravel(travelID)
	if err != nil {
		return nil, 0, err
	}

	points := make([]spatial.Point, len(samples))
	for i, sm := range samples {
		points[i] = spatial.Point{Lat: sm.Latitude, Lon: sm.Longitude}
	}

	return samples, spatial.PathDistance(points), nil
}

func validateIngestRequest(req models.IngestRequest) error {
	if req.TravelID <= 0 {
		return invalidInput("travelId", "is required")
	}
	if req.BatchID == "" {
		return invalidInput("batchId", "is required")
	}
	if len(req.Samples) == 0 {
		return invalidInput("coords", "must be a non-empty array")
	}

	// One malformed sample rejects the whole batch before any write.
	for i, sm := range req.Samples {
		switch {
		case sm.Latitude == nil:
			return invalidInput(fmt.Sprintf("coords[%d].latitude", i), "must be a number")
		case sm.Longitude == nil:
			return invalidInput(fmt.Sprintf("coords[%d].longitude", i), "must be a number")
		case sm.Accuracy == nil:
			return invalidInput(fmt.Sprintf("coords[%d].accuracy", i), "must be a number")
		case sm.Speed == nil:
			return invalidInput(fmt.Sprintf("coords[%d].speed", i), "must be a number")
		case sm.Timestamp == nil || *sm.Timestamp == "":
			return invalidInput(fmt.Sprintf("coords[%d].timestamp", i), "must be a string")
		}
	}

	return nil
}
