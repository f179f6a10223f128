package render

import (
	"log"

	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/events"
)

const (
	EventBadge      = "badge"
	EventBadgeClear = "badge_cleared"
)

type BadgePayload struct {
	TabID string `json:"tabId"`
	JobID string `json:"jobId,omitempty"`
	Badge Badge  `json:"badge"`
}

type ClearPayload struct {
	TabID string `json:"tabId"`
}

// Sink pushes badges to the browser over the event hub.
type Sink struct {
	Hub    *events.Hub
	Limits Limits
	// Current reports the job a tab is showing right now; ok is false once
	// the tab is gone.
	Current func(tabID string) (jobID string, ok bool)
}

// Deliver publishes v for jobID unless the tab closed or moved on to
// another job.
func (s *Sink) Deliver(tabID, jobID string, v domain.Verdict) bool {
	if s.Current != nil {
		cur, ok := s.Current(tabID)
		if !ok {
			log.Printf("[render] tab=%s closed, dropping job=%s", tabID, jobID)
			return false
		}
		if cur != jobID {
			log.Printf("[render] tab=%s stale job=%s current=%s", tabID, jobID, cur)
			return false
		}
	}
	s.Hub.Publish(events.MakeEvent("", EventBadge, 1, BadgePayload{
		TabID: tabID,
		JobID: jobID,
		Badge: NewBadge(v, s.Limits),
	}))
	return true
}

func (s *Sink) Clear(tabID string) {
	s.Hub.Publish(events.MakeEvent("", EventBadgeClear, 1, ClearPayload{TabID: tabID}))
}
