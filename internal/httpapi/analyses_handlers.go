package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jobflag-engine/internal/events"
	"jobflag-engine/internal/store"
)

type AnalysesHandler struct {
	Store AnalysesStore
	Hub   *events.Hub
}

func (h AnalysesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	flagged, _ := strconv.ParseBool(q.Get("flagged"))

	out, err := h.Store.ListAnalyses(r.Context(), store.ListAnalysesOpts{
		Sort:    q.Get("sort"),
		Window:  q.Get("window"),
		Flagged: flagged,
		Limit:   limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, out)
}

// DeleteByPath expects /analyses/{id}.
func (h AnalysesHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/analyses/"))
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid id")
		return
	}

	err := h.Store.DeleteAnalysis(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "analysis not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeAnalysisDelete, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func (h AnalysesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.Store.GetStats(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, s)
}
