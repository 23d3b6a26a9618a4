package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations is the ordered schema history. New schema changes are appended
// here with the next version number; applied versions are never edited.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_fleet_tables",
		SQL: `
			CREATE TABLE companies (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				logo TEXT
			);

			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT UNIQUE NOT NULL,
				password TEXT NOT NULL,
				name TEXT NOT NULL,
				photo TEXT,
				role TEXT NOT NULL DEFAULT 'driver',
				change_password INTEGER NOT NULL DEFAULT 1,
				company_id INTEGER REFERENCES companies(id),
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE cars (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				license_plate TEXT UNIQUE NOT NULL,
				model TEXT NOT NULL,
				observations TEXT
			);

			CREATE TABLE routes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				company_id INTEGER REFERENCES companies(id)
			);

			CREATE TABLE route_points (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				route_id INTEGER NOT NULL REFERENCES routes(id),
				lat REAL NOT NULL,
				lng REAL NOT NULL,
				seq INTEGER NOT NULL,
				kind TEXT
			);

			CREATE TABLE drivers (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL REFERENCES users(id),
				license TEXT UNIQUE NOT NULL,
				car_id INTEGER REFERENCES cars(id),
				route_id INTEGER REFERENCES routes(id),
				lat REAL NOT NULL DEFAULT 0,
				lng REAL NOT NULL DEFAULT 0,
				status TEXT NOT NULL DEFAULT 'available'
			);

			CREATE TABLE refresh_tokens (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL REFERENCES users(id),
				token TEXT UNIQUE NOT NULL,
				revoked INTEGER NOT NULL DEFAULT 0,
				expires_at TIMESTAMP NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_travel_tracking_tables",
		SQL: `
			CREATE TABLE travels (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				driver_id INTEGER NOT NULL REFERENCES drivers(id),
				route_name TEXT,
				started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				ended_at TIMESTAMP,
				duration_seconds INTEGER,
				completed INTEGER NOT NULL DEFAULT 0,
				deviated INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX idx_travels_driver_started ON travels(driver_id, started_at);

			CREATE TABLE location_samples (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				travel_id INTEGER NOT NULL REFERENCES travels(id),
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				accuracy REAL NOT NULL,
				speed REAL NOT NULL,
				timestamp TEXT NOT NULL,
				recorded_at TIMESTAMP NOT NULL
			);
			CREATE INDEX idx_location_samples_travel ON location_samples(travel_id, id);

			CREATE TABLE tracking_batches (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				batch_id TEXT UNIQUE NOT NULL,
				travel_id INTEGER NOT NULL REFERENCES travels(id),
				points_count INTEGER NOT NULL,
				uploaded_at TIMESTAMP NOT NULL
			);

			CREATE TABLE incidents (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				travel_id INTEGER NOT NULL REFERENCES travels(id),
				location TEXT NOT NULL,
				duration_seconds INTEGER,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE payments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				driver_id INTEGER NOT NULL REFERENCES drivers(id),
				travel_id INTEGER REFERENCES travels(id),
				amount REAL NOT NULL,
				method TEXT,
				status TEXT NOT NULL DEFAULT 'pending',
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				paid_at TIMESTAMP,
				verified_at TIMESTAMP
			);
			CREATE INDEX idx_payments_driver_created ON payments(driver_id, created_at);
		`,
	},
	{
		Version: 3,
		Name:    "create_market_tables",
		SQL: `
			CREATE TABLE vendors (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				last_name TEXT,
				phone TEXT,
				address TEXT,
				email TEXT
			);

			CREATE TABLE price_types (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT UNIQUE NOT NULL
			);

			CREATE TABLE products (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				vendor_id INTEGER NOT NULL REFERENCES vendors(id),
				name TEXT NOT NULL,
				description TEXT,
				category TEXT,
				image TEXT,
				in_stock INTEGER NOT NULL DEFAULT 1,
				featured INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE product_prices (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				product_id INTEGER NOT NULL REFERENCES products(id),
				price_type_id INTEGER NOT NULL REFERENCES price_types(id),
				value REAL NOT NULL,
				UNIQUE(product_id, price_type_id)
			);
		`,
	},
}

// MigrationManager applies versioned migrations. It runs once at deployment
// time (the migrate command); request handlers assume the schema exists.
type MigrationManager struct {
	db         *sql.DB
	migrations []Migration
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *sql.DB) *MigrationManager {
	return &MigrationManager{db: db, migrations: Migrations}
}

// InitMigrationsTable creates the migrations tracking table
func (m *MigrationManager) InitMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns a list of applied migration versions
func (m *MigrationManager) GetAppliedMigrations() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// ApplyMigration applies a single migration
func (m *MigrationManager) ApplyMigration(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	// Execute migration SQL
	if _, err := tx.Exec(migration.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}

	// Record migration
	_, err = tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", migration.Version, migration.Name)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}

	log.Printf("Applied migration %d: %s", migration.Version, migration.Name)
	return nil
}

// RunMigrations runs all pending migrations
func (m *MigrationManager) RunMigrations() error {
	if err := m.InitMigrationsTable(); err != nil {
		return err
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if applied[migration.Version] {
			continue
		}

		if err := m.ApplyMigration(migration); err != nil {
			return err
		}
	}

	return nil
}
