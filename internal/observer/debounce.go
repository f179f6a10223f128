package observer

import "time"

const DefaultQuiet = 300 * time.Millisecond

// Debouncer coalesces a burst of events into one firing after a quiet
// window. It holds no timers; callers pass the clock in.
type Debouncer struct {
	Quiet time.Duration

	pending  bool
	deadline time.Time
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{Quiet: quiet}
}

// Touch records an event at now and pushes the deadline out.
func (d *Debouncer) Touch(now time.Time) {
	d.pending = true
	d.deadline = now.Add(d.Quiet)
}

// Deadline is when the pending burst fires.
func (d *Debouncer) Deadline() (time.Time, bool) {
	return d.deadline, d.pending
}

// Fire reports whether the burst is due at now and clears it if so.
func (d *Debouncer) Fire(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	return true
}

func (d *Debouncer) Cancel() { d.pending = false }
