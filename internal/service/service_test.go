package service

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/colective/fleet-backend-go/internal/database"
)

// newTestDB opens an in-memory database with the full schema applied
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A single connection keeps every statement on the same in-memory DB.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// seedDriver inserts a user and driver row, returning the driver id
func seedDriver(t *testing.T, db *sql.DB, email, license string) int64 {
	t.Helper()

	res, err := db.Exec(`INSERT INTO users (email, password, name) VALUES (?, 'x', 'Test Driver')`, email)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	userID, _ := res.LastInsertId()

	res, err = db.Exec(`INSERT INTO drivers (user_id, license) VALUES (?, ?)`, userID, license)
	if err != nil {
		t.Fatalf("failed to seed driver: %v", err)
	}
	driverID, _ := res.LastInsertId()
	return driverID
}

// seedTravel inserts an open travel for a fresh driver, returning the
// travel id
func seedTravel(t *testing.T, db *sql.DB, email, license string) int64 {
	t.Helper()

	driverID := seedDriver(t, db, email, license)
	res, err := db.Exec(`INSERT INTO travels (driver_id, started_at) VALUES (?, ?)`, driverID, time.Now())
	if err != nil {
		t.Fatalf("failed to seed travel: %v", err)
	}
	travelID, _ := res.LastInsertId()
	return travelID
}

func float64Ptr(v float64) *float64 { return &v }
func stringPtr(v string) *string    { return &v }
