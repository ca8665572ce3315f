package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Safe to run on every startup.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createJobsQuery := `
	CREATE TABLE IF NOT EXISTS moving_jobs (
		job_id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		priority INTEGER NOT NULL DEFAULT 3,
		total_items INTEGER NOT NULL DEFAULT 0,
		floors INTEGER NOT NULL DEFAULT 1,
		demand INTEGER NOT NULL DEFAULT 0,
		pickup_address TEXT NOT NULL,
		pickup_lat DOUBLE PRECISION NOT NULL,
		pickup_lon DOUBLE PRECISION NOT NULL,
		pickup_earliest TIMESTAMPTZ,
		pickup_latest TIMESTAMPTZ,
		delivery_address TEXT NOT NULL DEFAULT '',
		delivery_lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		delivery_lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		delivery_earliest TIMESTAMPTZ,
		delivery_latest TIMESTAMPTZ
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_moving_jobs_priority
	ON moving_jobs(priority, job_id);
	`

	statements := []string{
		createJobsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
