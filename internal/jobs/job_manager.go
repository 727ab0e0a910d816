package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	overdueOrdersJob    *OverdueOrdersJob
	weeklySettlementJob *WeeklySettlementJob
}

func NewJobManager(
	overdue OverdueOrdersFinder,
	stores StoreLister,
	settlements SettlementGenerator,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueOrdersJob:    NewOverdueOrdersJob(overdue, logger),
		weeklySettlementJob: NewWeeklySettlementJob(stores, settlements, logger),
	}
}

// StartAll starts all scheduled jobs. If one fails, the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue orders job: %w", err)
	}

	if err := jm.weeklySettlementJob.Start(); err != nil {
		jm.overdueOrdersJob.Stop()
		return fmt.Errorf("failed to start weekly settlement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs, waiting for running passes.
func (jm *JobManager) StopAll() {
	jm.weeklySettlementJob.Stop()
	jm.overdueOrdersJob.Stop()
}
