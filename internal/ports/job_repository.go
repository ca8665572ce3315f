package ports

import (
	"context"

	"tour-planning-service/internal/domain"
)

// Port: a boundary for retrieving and staging MovingJob entities.
// Jobs arrive from the CRM sync (or simulation) and are read here for
// optimization runs.
type JobRepository interface {
	// Retrieve all jobs available for routing, highest priority first.
	ListJobs(ctx context.Context) ([]*domain.MovingJob, error)

	// Retrieve jobs by ID. Unknown IDs are simply absent from the result.
	GetJobs(ctx context.Context, ids []string) ([]*domain.MovingJob, error)

	// Insert or update a single job.
	SaveJob(ctx context.Context, job *domain.MovingJob) error
}
