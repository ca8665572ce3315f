package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tour-planning-service/internal/domain"
)

// Postgres-backed implementation of the JobRepository port. Jobs are staged
// here by the CRM sync (or the simulation endpoints) and read for
// optimization runs.
type PostgresJobRepository struct{ DB *sql.DB }

func NewPostgresJobRepository(db *sql.DB) *PostgresJobRepository {
	return &PostgresJobRepository{DB: db}
}

const jobColumns = `
	job_id, kind, priority, total_items, floors, demand,
	pickup_address, pickup_lat, pickup_lon, pickup_earliest, pickup_latest,
	delivery_address, delivery_lat, delivery_lon, delivery_earliest, delivery_latest
`

// Return all staged jobs, highest priority first.
func (r *PostgresJobRepository) ListJobs(ctx context.Context) ([]*domain.MovingJob, error) {
	if r.DB == nil {
		return nil, errors.New("job repository: DB is nil")
	}

	query := `SELECT ` + jobColumns + ` FROM moving_jobs ORDER BY priority, job_id;`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: query moving_jobs table: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// Return jobs by ID; unknown IDs are simply absent from the result.
func (r *PostgresJobRepository) GetJobs(ctx context.Context, ids []string) ([]*domain.MovingJob, error) {
	if r.DB == nil {
		return nil, errors.New("job repository: DB is nil")
	}
	if len(ids) == 0 {
		return []*domain.MovingJob{}, nil
	}

	query := `SELECT ` + jobColumns + ` FROM moving_jobs WHERE job_id = ANY($1) ORDER BY priority, job_id;`

	rows, err := r.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get jobs: query moving_jobs table: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// Insert or update a single job.
func (r *PostgresJobRepository) SaveJob(ctx context.Context, job *domain.MovingJob) error {
	if r.DB == nil {
		return errors.New("job repository: DB is nil")
	}
	if job == nil || job.ID == "" {
		return errors.New("save job: job with ID is required")
	}

	query := `
	INSERT INTO moving_jobs (` + jobColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (job_id) DO UPDATE SET
		kind = EXCLUDED.kind,
		priority = EXCLUDED.priority,
		total_items = EXCLUDED.total_items,
		floors = EXCLUDED.floors,
		demand = EXCLUDED.demand,
		pickup_address = EXCLUDED.pickup_address,
		pickup_lat = EXCLUDED.pickup_lat,
		pickup_lon = EXCLUDED.pickup_lon,
		pickup_earliest = EXCLUDED.pickup_earliest,
		pickup_latest = EXCLUDED.pickup_latest,
		delivery_address = EXCLUDED.delivery_address,
		delivery_lat = EXCLUDED.delivery_lat,
		delivery_lon = EXCLUDED.delivery_lon,
		delivery_earliest = EXCLUDED.delivery_earliest,
		delivery_latest = EXCLUDED.delivery_latest;
	`

	pe, pl := windowBounds(job.Pickup.TimeWindow)
	de, dl := windowBounds(job.Delivery.TimeWindow)

	_, err := r.DB.ExecContext(ctx, query,
		job.ID, string(job.Kind), job.Priority,
		job.Inventory.TotalItems, job.Inventory.Floors, job.Demand,
		job.Pickup.Address, job.Pickup.Location.Lat, job.Pickup.Location.Lon, pe, pl,
		job.Delivery.Address, job.Delivery.Location.Lat, job.Delivery.Location.Lon, de, dl,
	)
	if err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}

	return nil
}

func scanJobs(rows *sql.Rows) ([]*domain.MovingJob, error) {
	jobs := make([]*domain.MovingJob, 0, 32)

	for rows.Next() {
		var (
			job                        domain.MovingJob
			kind                       string
			pickEarliestN, pickLatestN sql.NullTime
			delEarliestN, delLatestN   sql.NullTime
		)

		err := rows.Scan(
			&job.ID, &kind, &job.Priority,
			&job.Inventory.TotalItems, &job.Inventory.Floors, &job.Demand,
			&job.Pickup.Address, &job.Pickup.Location.Lat, &job.Pickup.Location.Lon,
			&pickEarliestN, &pickLatestN,
			&job.Delivery.Address, &job.Delivery.Location.Lat, &job.Delivery.Location.Lon,
			&delEarliestN, &delLatestN,
		)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}

		job.Kind = domain.JobKind(kind)
		if pickEarliestN.Valid && pickLatestN.Valid {
			job.Pickup.TimeWindow = &domain.TimeWindow{Earliest: pickEarliestN.Time, Latest: pickLatestN.Time}
		}
		if delEarliestN.Valid && delLatestN.Valid {
			job.Delivery.TimeWindow = &domain.TimeWindow{Earliest: delEarliestN.Time, Latest: delLatestN.Time}
		}

		jobs = append(jobs, &job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("job row iteration: %w", err)
	}

	return jobs, nil
}

func windowBounds(tw *domain.TimeWindow) (any, any) {
	if tw == nil {
		return nil, nil
	}
	return tw.Earliest, tw.Latest
}
