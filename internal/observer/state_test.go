package observer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobState(t *testing.T) {
	var s JobState

	assert.True(t, s.ShouldAnalyze("1"))
	assert.False(t, s.ShouldAnalyze("1"), "in flight")
	assert.True(t, s.MarkRendered("1"))
	assert.False(t, s.ShouldAnalyze("1"), "rendered")

	assert.True(t, s.ShouldAnalyze("2"))
	assert.False(t, s.MarkRendered("1"), "stale")
	assert.Equal(t, "2", s.Current())

	s.Release("2")
	assert.True(t, s.ShouldAnalyze("2"))

	s.Reset()
	assert.Equal(t, "", s.Current())
	assert.True(t, s.ShouldAnalyze("2"))

	// unknown ids never dedup
	assert.True(t, s.ShouldAnalyze(""))
	assert.True(t, s.ShouldAnalyze(""))
}

func TestDebouncer(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDebouncer(300 * time.Millisecond)

	assert.False(t, d.Fire(t0), "nothing pending")

	d.Touch(t0)
	d.Touch(t0.Add(100 * time.Millisecond))
	d.Touch(t0.Add(250 * time.Millisecond))

	deadline, ok := d.Deadline()
	assert.True(t, ok)
	assert.Equal(t, t0.Add(550*time.Millisecond), deadline)

	assert.False(t, d.Fire(t0.Add(400*time.Millisecond)))
	assert.True(t, d.Fire(t0.Add(550*time.Millisecond)))
	assert.False(t, d.Fire(t0.Add(900*time.Millisecond)), "fires once per burst")

	d.Touch(t0.Add(time.Second))
	d.Cancel()
	assert.False(t, d.Fire(t0.Add(2*time.Second)))
}

func TestDebouncer_DefaultQuiet(t *testing.T) {
	assert.Equal(t, DefaultQuiet, NewDebouncer(0).Quiet)
}
