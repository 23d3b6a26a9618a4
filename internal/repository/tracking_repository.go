package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/colective/fleet-backend-go/internal/models"
)

// TrackingRepository handles database operations for location samples and
// ingestion batches. The write path methods take a *sql.Tx so the existence
// check, the sample inserts and the batch marker commit or roll back as one
// unit.
type TrackingRepository struct {
	db *sql.DB
}

// NewTrackingRepository creates a new tracking repository
func NewTrackingRepository(db *sql.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// BatchExists reports whether a batch identifier was already committed
func (r *TrackingRepository) BatchExists(tx *sql.Tx, batchID string) (bool, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM tracking_batches WHERE batch_id = ?", batchID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check batch: %w", err)
	}
	return true, nil
}

// InsertSamples inserts the samples for a travel preserving their order.
// Callers validate the samples first; fields are dereferenced here.
func (r *TrackingRepository) InsertSamples(tx *sql.Tx, travelID int64, samples []models.SampleInput, recordedAt time.Time) (int, error) {
	stmt, err := tx.Prepare(`INSERT INTO location_samples
		(travel_id, latitude, longitude, accuracy, speed, timestamp, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range samples {
		_, err := stmt.Exec(travelID, *s.Latitude, *s.Longitude, *s.Accuracy, *s.Speed, *s.Timestamp, recordedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert sample %d: %w", i, err)
		}
	}

	return len(samples), nil
}

// RecordBatch writes the batch marker. The UNIQUE constraint on batch_id is
// the authoritative duplicate guard; the pre-check is only a fast path.
func (r *TrackingRepository) RecordBatch(tx *sql.Tx, batchID string, travelID int64, pointsCount int, uploadedAt time.Time) error {
	_, err := tx.Exec(`INSERT INTO tracking_batches (batch_id, travel_id, points_count, uploaded_at)
		VALUES (?, ?, ?, ?)`,
		batchID, travelID, pointsCount, uploadedAt)
	if err != nil {
		return fmt.Errorf("failed to record batch: %w", err)
	}
	return nil
}

// GetBatch retrieves a batch marker by its client identifier
func (r *TrackingRepository) GetBatch(batchID string) (*models.IngestionBatch, error) {
	var b models.IngestionBatch
	err := r.db.QueryRow(`SELECT id, batch_id, travel_id, points_count, uploaded_at
		FROM tracking_batches WHERE batch_id = ?`, batchID).
		Scan(&b.ID, &b.BatchID, &b.TravelID, &b.PointsCount, &b.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return &b, nil
}

// GetSamplesByTravel retrieves a travel's samples in insertion order
func (r *TrackingRepository) GetSamplesByTravel(travelID int64) ([]models.LocationSample, error) {
	rows, err := r.db.Query(`SELECT id, travel_id, latitude, longitude, accuracy, speed, timestamp, recorded_at
		FROM location_samples WHERE travel_id = ? ORDER BY id ASC`, travelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []models.LocationSample
	for rows.Next() {
		var s models.LocationSample
		err := rows.Scan(&s.ID, &s.TravelID, &s.Latitude, &s.Longitude, &s.Accuracy, &s.Speed, &s.Timestamp, &s.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// CountSamplesByTravel counts a travel's samples
func (r *TrackingRepository) CountSamplesByTravel(travelID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM location_samples WHERE travel_id = ?", travelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}
	return count, nil
}

// IsUniqueViolation reports whether err is a SQLite unique constraint
// failure
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
