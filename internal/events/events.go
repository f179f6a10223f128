package events

import (
	"encoding/json"
	"time"
)

// Event types pushed over /events besides the render badges.
const (
	TypeHello          = "hello"
	TypeAnalysisStored = "analysis_stored"
	TypeAnalysisDelete = "analysis_deleted"
	TypeStatsUpdated   = "stats_updated"
	TypeConfigUpdated  = "config_updated"
	TypeActiveChanged  = "active_changed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent encodes one SSE data line.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	b, _ := json.Marshal(Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	})
	return string(b)
}
