// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// OutboxRelayJob runs every second by default. Each pass publishes unpublished
// order events in batches until a batch comes back short, so a backlog is
// drained in one pass. Overlapping passes are skipped.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, 100, jobs.EverySecond, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing pass is logged and retried on the next tick. Messages are marked
// published only after the broker accepted them, so a failure never loses an
// event; consumers may see an event more than once.
package jobs
