package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"jobflag-engine/internal/extract"
	"jobflag-engine/internal/scan"
)

type AnalyzeURLHandler struct {
	Scanner URLScanner
}

type analyzeURLReq struct {
	URL string `json:"url"`
}

func (h AnalyzeURLHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req analyzeURLReq
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "url is required")
		return
	}

	res, err := h.Scanner.One(r.Context(), req.URL)
	switch {
	case errors.Is(err, scan.ErrUnsupportedSite):
		WriteError(w, r, http.StatusUnprocessableEntity, "unsupported_site", err.Error())
		return
	case errors.Is(err, extract.ErrExtractionEmpty):
		WriteError(w, r, http.StatusUnprocessableEntity, "extraction_empty", err.Error())
		return
	case err != nil:
		WriteError(w, r, http.StatusBadGateway, "fetch_failed", err.Error())
		return
	}
	writeJSON(w, res)
}
