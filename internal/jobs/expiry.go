// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type PendingExpirer interface {
	ExpirePending(ctx context.Context) (int, error)
}

const runTimeout = 30 * time.Second

// ScheduleExpiry registers the expiry of past pending operator reservations
// under spec (standard five-field cron or a descriptor such as "@every 5m").
// The returned scheduler is not started.
func ScheduleExpiry(spec string, e PendingExpirer, logger *log.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { RunExpiry(context.Background(), e, logger) }); err != nil {
		return nil, fmt.Errorf("schedule expiry %q: %w", spec, err)
	}
	return c, nil
}

// RunExpiry performs one pass and logs its outcome.
func RunExpiry(ctx context.Context, e PendingExpirer, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	start := time.Now()
	n, err := e.ExpirePending(ctx)
	if err != nil {
		logger.Printf("ERROR: expire pending reservations expired=%d: %v", n, err)
		return
	}
	if n > 0 {
		logger.Printf("expire pending reservations expired=%d duration=%s", n, time.Since(start))
	}
}
