package models

import "time"

// Travel is one unit of travel performed by a driver
type Travel struct {
	ID              int64      `json:"id" db:"id"`
	DriverID        int64      `json:"driverId" db:"driver_id"`
	RouteName       string     `json:"routeName,omitempty" db:"route_name"`
	StartedAt       time.Time  `json:"startedAt" db:"started_at"`
	EndedAt         *time.Time `json:"endedAt,omitempty" db:"ended_at"`
	DurationSeconds *int64     `json:"durationSeconds,omitempty" db:"duration_seconds"`
	Completed       bool       `json:"completed" db:"completed"`
	// Deviated is reported by the client; the server does not compute
	// route deviation.
	Deviated bool `json:"deviated" db:"deviated"`
}

// TravelDetail is a travel with its recorded path, as returned to the
// manager dashboard
type TravelDetail struct {
	Travel
	Path           []PathPoint `json:"actualPath"`
	DistanceMeters float64     `json:"distanceMeters"`
	Incidents      []Incident  `json:"incidents,omitempty"`
}

// PathPoint is the minimal lat/lng pair used in path responses
type PathPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Incident is an event reported during a travel
type Incident struct {
	ID              int64     `json:"id" db:"id"`
	TravelID        int64     `json:"travelId" db:"travel_id"`
	Location        string    `json:"location" db:"location"`
	DurationSeconds *int64    `json:"durationSeconds,omitempty" db:"duration_seconds"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// StartTravelRequest opens a travel for a driver
type StartTravelRequest struct {
	DriverID  int64  `json:"driverId"`
	RouteName string `json:"routeName"`
}

// EndTravelRequest closes a travel and reports the deviation flag
type EndTravelRequest struct {
	TravelID int64 `json:"travelId"`
	Deviated bool  `json:"deviated"`
}

// ReportIncidentRequest records an incident against a travel
type ReportIncidentRequest struct {
	TravelID        int64  `json:"travelId"`
	Location        string `json:"location"`
	DurationSeconds *int64 `json:"durationSeconds"`
}

// TravelFilter selects travels for a driver within a date range
type TravelFilter struct {
	DriverID  int64
	StartDate time.Time
	EndDate   time.Time
}
