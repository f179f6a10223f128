package observer

import "sync"

type jobStatus int

const (
	statusIdle jobStatus = iota
	statusInFlight
	statusRendered
)

// JobState tracks the job currently shown in one tab. The job id is the
// dedup key: a job already in flight or rendered is not analyzed again until
// a navigation resets the state.
type JobState struct {
	mu      sync.Mutex
	current string
	status  jobStatus
}

// ShouldAnalyze claims id as the current job. An empty id cannot be deduped
// and is always analyzed.
func (s *JobState) ShouldAnalyze(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && id == s.current && s.status != statusIdle {
		return false
	}
	s.current = id
	s.status = statusInFlight
	return true
}

// MarkRendered reports whether id is still current.
func (s *JobState) MarkRendered(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.current {
		return false
	}
	s.status = statusRendered
	return true
}

// Release forgets id if it is still current, so the next event retries it.
func (s *JobState) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.current {
		s.status = statusIdle
	}
}

func (s *JobState) Reset() {
	s.mu.Lock()
	s.current = ""
	s.status = statusIdle
	s.mu.Unlock()
}

func (s *JobState) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
