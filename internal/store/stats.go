package store

import (
	"context"
	"fmt"
	"time"

	"jobflag-engine/internal/domain"
)

// IncrementStats bumps the counters in one statement so concurrent
// analyses never lose an update.
func (d *DB) IncrementStats(ctx context.Context, flagged bool) error {
	flags := 0
	if flagged {
		flags = 1
	}
	_, err := d.Pool.ExecContext(ctx, `
UPDATE stats
SET jobs_analyzed = jobs_analyzed + 1,
    flags_triggered = flags_triggered + ?,
    updated_at = ?
WHERE id = 1;`, flags, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("increment stats: %w", err)
	}
	return nil
}

func (d *DB) GetStats(ctx context.Context) (domain.AggregateStats, error) {
	var s domain.AggregateStats
	err := d.Pool.QueryRowContext(ctx,
		`SELECT jobs_analyzed, flags_triggered FROM stats WHERE id = 1;`,
	).Scan(&s.JobsAnalyzed, &s.FlagsTriggered)
	if err != nil {
		return domain.AggregateStats{}, fmt.Errorf("get stats: %w", err)
	}
	return s, nil
}

func (d *DB) ResetStats(ctx context.Context) error {
	_, err := d.Pool.ExecContext(ctx, `
UPDATE stats SET jobs_analyzed = 0, flags_triggered = 0, updated_at = ? WHERE id = 1;`,
		time.Now().UTC().Format(time.RFC3339))
	return err
}
