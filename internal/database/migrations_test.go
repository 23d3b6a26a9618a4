package database

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrationsCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	if err := NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	tables := []string{
		"companies", "users", "cars", "routes", "route_points", "drivers",
		"refresh_tokens", "travels", "location_samples", "tracking_batches",
		"incidents", "payments", "vendors", "price_types", "products",
		"product_prices",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestRunMigrationsIsRerunnable(t *testing.T) {
	db := openTestDB(t)
	m := NewMigrationManager(db)

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		t.Fatalf("GetAppliedMigrations failed: %v", err)
	}
	if len(applied) != len(Migrations) {
		t.Errorf("expected %d applied migrations, got %d", len(Migrations), len(applied))
	}
}

func TestBatchIDUniqueConstraint(t *testing.T) {
	db := openTestDB(t)
	if err := NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("exec failed: %v", err)
		}
	}
	mustExec(`INSERT INTO users (email, password, name) VALUES ('d@d.com', 'x', 'D')`)
	mustExec(`INSERT INTO drivers (user_id, license) VALUES (1, 'L-1')`)
	mustExec(`INSERT INTO travels (driver_id) VALUES (1)`)
	mustExec(`INSERT INTO tracking_batches (batch_id, travel_id, points_count, uploaded_at) VALUES ('b1', 1, 0, CURRENT_TIMESTAMP)`)

	_, err := db.Exec(`INSERT INTO tracking_batches (batch_id, travel_id, points_count, uploaded_at) VALUES ('b1', 1, 0, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("expected duplicate batch_id insert to fail")
	}
}
