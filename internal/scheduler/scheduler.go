package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task once right away and then on each tick until ctx ends.
// Errors are logged under name and never stop the loop.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}
	run()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}

type AnalysesCleaner interface {
	CleanupOldAnalyses(ctx context.Context, days int) (int64, error)
}

// Retention deletes stored analyses older than days() on each run.
// days is read per run so config edits apply without a restart.
func Retention(c AnalysesCleaner, days func() int) Task {
	return func(ctx context.Context) error {
		n, err := c.CleanupOldAnalyses(ctx, days())
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[retention] deleted=%d", n)
		}
		return nil
	}
}
