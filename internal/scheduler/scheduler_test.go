package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvery_RunsImmediatelyAndOnTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	done := make(chan struct{})

	go func() {
		Every(ctx, 10*time.Millisecond, "test", func(context.Context) error {
			runs.Add(1)
			return errors.New("keeps going")
		})
		close(done)
	}()

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

type fakeCleaner struct {
	days []int
}

func (f *fakeCleaner) CleanupOldAnalyses(_ context.Context, days int) (int64, error) {
	f.days = append(f.days, days)
	return 2, nil
}

func TestRetention_ReadsDaysPerRun(t *testing.T) {
	c := &fakeCleaner{}
	days := 30
	task := Retention(c, func() int { return days })

	require.NoError(t, task(context.Background()))
	days = 7
	require.NoError(t, task(context.Background()))
	assert.Equal(t, []int{30, 7}, c.days)
}
