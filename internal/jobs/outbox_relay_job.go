package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EverySecond is the default relay schedule (cron with seconds field).
const EverySecond = "* * * * * *"

type orderEventsRelay interface {
	Handle(ctx context.Context, cmd commands.RelayOrderEventsCommand) (int, error)
}

// OutboxRelayJob periodically moves committed order events from the outbox to
// the broker. A run that is still draining makes the next tick skip.
type OutboxRelayJob struct {
	handler   orderEventsRelay
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(handler orderEventsRelay, batchSize int, schedule string, logger *slog.Logger) *OutboxRelayJob {
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}
	if schedule == "" {
		schedule = EverySecond
	}
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce publishes full batches until the outbox is drained or a batch fails,
// and returns the number of published messages.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewRelayOrderEventsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return 0
	}

	total := 0
	for ctx.Err() == nil {
		published, err := j.handler.Handle(ctx, cmd)
		total += published
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err, "published", total)
			return total
		}
		if published < j.batchSize {
			break
		}
	}

	if total > 0 {
		j.logger.DebugContext(ctx, "Order events published", "count", total)
	}
	return total
}

// Stop waits for a running relay pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
