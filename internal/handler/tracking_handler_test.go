package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	"github.com/colective/fleet-backend-go/internal/database"
	"github.com/colective/fleet-backend-go/internal/repository"
	"github.com/colective/fleet-backend-go/internal/service"
)

func newTrackingRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := NewTrackingHandler(service.NewTrackingService(db, repository.NewTrackingRepository(db)))
	router := gin.New()
	router.POST("/tracking", h.Ingest)
	router.GET("/tracking/:travelId", h.GetPath)
	return router, db
}

func seedHandlerTravel(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	mustExec(`INSERT INTO users (email, password, name) VALUES ('d@d.com', 'x', 'D')`)
	mustExec(`INSERT INTO drivers (user_id, license) VALUES (1, 'L-1')`)

	res, err := db.Exec(`INSERT INTO travels (driver_id, started_at) VALUES (1, ?)`, time.Now())
	if err != nil {
		t.Fatalf("seed travel failed: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func ingestBody(travelID int64, batchID string, samples int) []byte {
	coords := make([]map[string]interface{}, samples)
	for i := range coords {
		coords[i] = map[string]interface{}{
			"latitude":  -12.04 + float64(i)*0.001,
			"longitude": -77.03,
			"accuracy":  5.0,
			"speed":     8.3,
			"timestamp": fmt.Sprintf("2025-06-01T12:00:%02dZ", i),
		}
	}
	body, _ := json.Marshal(map[string]interface{}{
		"travelId": travelID,
		"batchId":  batchID,
		"coords":   coords,
	})
	return body
}

func postJSON(router *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return got
}

func TestIngestEndpoint(t *testing.T) {
	router, db := newTrackingRouter(t)
	travelID := seedHandlerTravel(t, db)

	w := postJSON(router, "/tracking", ingestBody(travelID, "batch-1", 3))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	got := decodeBody(t, w)
	if got["success"] != true {
		t.Error("expected success true")
	}
	if got["insertedCount"] != float64(3) {
		t.Errorf("expected insertedCount 3, got %v", got["insertedCount"])
	}
	if got["batchId"] != "batch-1" {
		t.Errorf("expected batchId batch-1, got %v", got["batchId"])
	}
}

func TestIngestEndpointReplay(t *testing.T) {
	router, db := newTrackingRouter(t)
	travelID := seedHandlerTravel(t, db)

	body := ingestBody(travelID, "batch-1", 2)
	if w := postJSON(router, "/tracking", body); w.Code != http.StatusCreated {
		t.Fatalf("first submission: expected 201, got %d", w.Code)
	}

	w := postJSON(router, "/tracking", body)
	if w.Code != http.StatusOK {
		t.Fatalf("replay: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	got := decodeBody(t, w)
	if got["alreadyProcessed"] != true {
		t.Error("replay response missing alreadyProcessed")
	}

	var samples int
	if err := db.QueryRow("SELECT COUNT(*) FROM location_samples").Scan(&samples); err != nil {
		t.Fatalf("failed to count samples: %v", err)
	}
	if samples != 2 {
		t.Errorf("replay changed sample count to %d", samples)
	}
}

func TestIngestEndpointValidation(t *testing.T) {
	router, db := newTrackingRouter(t)
	travelID := seedHandlerTravel(t, db)

	tests := []struct {
		name string
		body []byte
	}{
		{"malformed json", []byte("{not json")},
		{"empty coords", ingestBody(travelID, "batch-1", 0)},
		{"missing batch id", ingestBody(travelID, "", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/tracking", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			got := decodeBody(t, w)
			if _, ok := got["error"]; !ok {
				t.Errorf("expected an error message, got %v", got)
			}
		})
	}

	w := postJSON(router, "/tracking", []byte(`{"travelId": `+fmt.Sprint(travelID)+`, "batchId": "b", "coords": [{"latitude": 1, "longitude": 2, "accuracy": 3, "timestamp": "t"}]}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing speed, got %d", w.Code)
	}
	got := decodeBody(t, w)
	if msg, _ := got["error"].(string); msg == "" || !bytes.Contains([]byte(msg), []byte("coords[0].speed")) {
		t.Errorf("expected error naming coords[0].speed, got %v", got["error"])
	}
}

func TestGetPathEndpoint(t *testing.T) {
	router, db := newTrackingRouter(t)
	travelID := seedHandlerTravel(t, db)

	if w := postJSON(router, "/tracking", ingestBody(travelID, "batch-1", 3)); w.Code != http.StatusCreated {
		t.Fatalf("seed ingest failed with %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/tracking/%d", travelID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := decodeBody(t, w)
	samples, ok := got["samples"].([]interface{})
	if !ok || len(samples) != 3 {
		t.Errorf("expected 3 samples, got %v", got["samples"])
	}
	if dist, ok := got["distanceMeters"].(float64); !ok || dist <= 0 {
		t.Errorf("expected positive distanceMeters, got %v", got["distanceMeters"])
	}

	// A travel with no samples answers an empty array, not null.
	req = httptest.NewRequest(http.MethodGet, "/tracking/999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty travel, got %d", w.Code)
	}
	got = decodeBody(t, w)
	if samples, ok := got["samples"].([]interface{}); !ok || len(samples) != 0 {
		t.Errorf("expected empty samples array, got %v", got["samples"])
	}
}
