package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// InitDatabase creates the local schema from scratch
// Auto-creates tables on startup; existing tables are left alone.
func InitDatabase(db *sql.DB) error {
	schemas := map[string]string{
		"profile": `
		CREATE TABLE IF NOT EXISTS profile (
			slot INTEGER PRIMARY KEY CHECK (slot = 1),
			id TEXT NOT NULL,
			user_id TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			mobile_number TEXT NOT NULL DEFAULT '',
			user_type TEXT NOT NULL DEFAULT '',
			expected_delivery_date TIMESTAMP,
			birth_date TIMESTAMP,
			storage_mode TEXT NOT NULL DEFAULT 'deviceOnly',
			privacy_accepted_at TIMESTAMP,
			notifications_wanted BOOLEAN NOT NULL DEFAULT 0,
			emergency_contacts TEXT NOT NULL DEFAULT '[]'
		);`,

		"moods": `
		CREATE TABLE IF NOT EXISTS moods (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			mood TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			date TIMESTAMP NOT NULL
		);`,

		"app_state": `
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,

		"vaccine_completions": `
		CREATE TABLE IF NOT EXISTS vaccine_completions (
			item_id TEXT PRIMARY KEY,
			completed_date TIMESTAMP NOT NULL
		);`,

		"weight_entries": `
		CREATE TABLE IF NOT EXISTS weight_entries (
			id TEXT PRIMARY KEY,
			date TIMESTAMP NOT NULL,
			weight REAL NOT NULL,
			unit TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT ''
		);`,

		"symptom_entries": `
		CREATE TABLE IF NOT EXISTS symptom_entries (
			id TEXT PRIMARY KEY,
			date TIMESTAMP NOT NULL,
			symptom TEXT NOT NULL,
			severity TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT ''
		);`,

		"kick_sessions": `
		CREATE TABLE IF NOT EXISTS kick_sessions (
			id TEXT PRIMARY KEY,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP,
			kick_count INTEGER NOT NULL DEFAULT 0
		);`,

		"contractions": `
		CREATE TABLE IF NOT EXISTS contractions (
			id TEXT PRIMARY KEY,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP
		);`,

		"water_intake": `
		CREATE TABLE IF NOT EXISTS water_intake (
			id TEXT PRIMARY KEY,
			date TIMESTAMP NOT NULL,
			amount REAL NOT NULL,
			unit TEXT NOT NULL
		);`,

		"bag_items": `
		CREATE TABLE IF NOT EXISTS bag_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			packed BOOLEAN NOT NULL DEFAULT 0
		);`,

		"appointments": `
		CREATE TABLE IF NOT EXISTS appointments (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			date TIMESTAMP NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			doctor TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT ''
		);`,
	}

	for table, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table, err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_moods_date ON moods(date)",
		"CREATE INDEX IF NOT EXISTS idx_weight_entries_date ON weight_entries(date)",
		"CREATE INDEX IF NOT EXISTS idx_symptom_entries_date ON symptom_entries(date)",
		"CREATE INDEX IF NOT EXISTS idx_water_intake_date ON water_intake(date)",
		"CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date)",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
		}
	}

	log.Println("Database schema initialized successfully")
	return nil
}

// ConnectDatabase opens the SQLite database with retry logic, creating
// the data directory when missing
func ConnectDatabase(sqlitePath string, maxRetries int, retryDelay time.Duration) (*sql.DB, error) {
	if dir := filepath.Dir(sqlitePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	var db *sql.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("sqlite", sqlitePath)
		if err != nil {
			log.Printf("Failed to open database (attempt %d/%d): %v", i+1, maxRetries, err)
			if i < maxRetries-1 {
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf("failed to open database after %d attempts: %w", maxRetries, err)
		}

		// Test the connection
		if err = db.Ping(); err != nil {
			log.Printf("Failed to ping database (attempt %d/%d): %v", i+1, maxRetries, err)
			db.Close()
			if i < maxRetries-1 {
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", maxRetries, err)
		}

		// SQLite tolerates one writer; keep the pool small
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)

		log.Println("Database connection established successfully")
		return db, nil
	}

	return nil, fmt.Errorf("failed to open database: %w", err)
}
