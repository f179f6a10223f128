package httpapi

import (
	"net/http"
	"time"

	"jobflag-engine/internal/events"
)

type HealthHandler struct {
	Hub       *events.Hub
	Observers ActiveSwitch
	Started   time.Time
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"ok":   true,
		"time": time.Now().Format(time.RFC3339),
	}
	if !h.Started.IsZero() {
		out["uptime_s"] = int64(time.Since(h.Started).Seconds())
	}
	if h.Hub != nil {
		out["subscribers"] = h.Hub.Subscribers()
	}
	if h.Observers != nil {
		out["active"] = h.Observers.Active()
	}
	writeJSON(w, out)
}
