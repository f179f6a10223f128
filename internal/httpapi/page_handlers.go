package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"jobflag-engine/internal/extract"
	"jobflag-engine/internal/observer"
)

type pageReq struct {
	TabID string `json:"tabId"`
	Kind  string `json:"kind"` // navigation | mutation | close
	URL   string `json:"url"`
	HTML  string `json:"html"`
}

type PageHandler struct {
	Observers PageRouter
}

// Post feeds one page snapshot to the tab's observer. The verdict arrives
// later as a badge event on /events.
func (h PageHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req pageReq
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	req.TabID = strings.TrimSpace(req.TabID)
	if req.TabID == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "tabId is required")
		return
	}

	var kind observer.EventKind
	switch req.Kind {
	case "close":
		h.Observers.CloseTab(req.TabID)
		writeJSON(w, map[string]any{"ok": true})
		return
	case "navigation":
		kind = observer.Navigation
	case "mutation", "":
		kind = observer.Mutation
	default:
		WriteError(w, r, http.StatusBadRequest, "bad_request", "kind must be navigation, mutation or close")
		return
	}
	if req.URL == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "url is required")
		return
	}

	err := h.Observers.Dispatch(r.Context(), req.TabID, observer.Event{Kind: kind, URL: req.URL, HTML: req.HTML})
	switch {
	case errors.Is(err, observer.ErrClosed):
		WriteError(w, r, http.StatusConflict, "tab_closed", err.Error())
		return
	case errors.Is(err, extract.ErrUnsupportedSite):
		WriteError(w, r, http.StatusUnprocessableEntity, "unsupported_site", err.Error())
		return
	case err != nil:
		WriteError(w, r, http.StatusServiceUnavailable, "dispatch_failed", err.Error())
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]any{
		"ok":         true,
		"currentJob": h.Observers.CurrentJob(req.TabID),
		"active":     h.Observers.Active(),
	})
}
