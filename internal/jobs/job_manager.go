package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

func NewJobManager(
	relayHandler orderEventsRelay,
	relayBatchSize int,
	relaySchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayHandler, relayBatchSize, relaySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running passes.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
