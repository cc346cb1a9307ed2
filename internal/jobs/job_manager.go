package jobs

import (
	"fmt"

	"marketplace/internal/core/application/usecases/queries"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueOrderJob *OverdueOrderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	getOverdueOrdersHandler queries.GetOverdueOrdersQueryHandler,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		overdueOrderJob: NewOverdueOrderJob(getOverdueOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue order job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueOrderJob.Stop()
}
