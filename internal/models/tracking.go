package models

import "time"

// LocationSample is one GPS fix recorded for a travel. The client-side
// timestamp is stored verbatim; recorded_at is set by the server at commit.
type LocationSample struct {
	ID         int64     `json:"id" db:"id"`
	TravelID   int64     `json:"travelId" db:"travel_id"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	Accuracy   float64   `json:"accuracy" db:"accuracy"`
	Speed      float64   `json:"speed" db:"speed"`
	Timestamp  string    `json:"timestamp" db:"timestamp"`
	RecordedAt time.Time `json:"recordedAt" db:"recorded_at"`
}

// IngestionBatch marks a client-submitted batch as processed. The unique
// batch_id column is what makes retransmissions harmless.
type IngestionBatch struct {
	ID          int64     `json:"id" db:"id"`
	BatchID     string    `json:"batchId" db:"batch_id"`
	TravelID    int64     `json:"travelId" db:"travel_id"`
	PointsCount int       `json:"pointsCount" db:"points_count"`
	UploadedAt  time.Time `json:"uploadedAt" db:"uploaded_at"`
}

// SampleInput is one coordinate in an ingestion request. Fields are pointers
// so a missing field can be told apart from a zero value during validation.
type SampleInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	Speed     *float64 `json:"speed"`
	Timestamp *string  `json:"timestamp"`
}

// IngestRequest is a batch of location samples for one travel
type IngestRequest struct {
	TravelID int64         `json:"travelId"`
	BatchID  string        `json:"batchId"`
	Samples  []SampleInput `json:"coords"`
}

// IngestResult reports the outcome of an ingestion call
type IngestResult struct {
	BatchID          string
	InsertedCount    int
	AlreadyProcessed bool
}
