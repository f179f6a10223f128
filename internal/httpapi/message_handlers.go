package httpapi

import (
	"errors"
	"io"
	"net/http"

	"jobflag-engine/internal/events"
)

type MessageHandler struct {
	Bus *Bus
	Hub *events.Hub
}

func (h MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	req, err := DecodeRequest(b)
	switch {
	case errors.Is(err, ErrUnknownAction):
		WriteError(w, r, http.StatusBadRequest, "unknown_action", err.Error())
		return
	case err != nil:
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	resp, err := h.Bus.Handle(r.Context(), req)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "unknown_action", err.Error())
		return
	}

	if t, ok := req.(ToggleActive); ok && h.Hub != nil {
		h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeActiveChanged, 1, map[string]any{"isActive": t.IsActive}))
	}
	writeJSON(w, resp)
}
