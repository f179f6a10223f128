package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Browser messages
	bus := &Bus{
		Analyzer:  d.Analyzer,
		Secrets:   d.Secrets,
		Keys:      d.Keys,
		Stats:     d.Store,
		Observers: d.Observers,
		OnActive:  persistActive(d),
	}
	mh := MessageHandler{Bus: bus, Hub: d.Hub}
	mux.HandleFunc("/message", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: mh.Post,
	}))

	// Page snapshots
	ph := PageHandler{Observers: d.Observers}
	mux.HandleFunc("/page", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Post,
	}))

	// One-shot URL analysis
	ah := AnalyzeURLHandler{Scanner: d.Scanner}
	mux.HandleFunc("/analyze-url", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Post,
	}))

	// History
	hh := AnalysesHandler{Store: d.Store, Hub: d.Hub}
	mux.HandleFunc("/analyses", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.List,
	}))
	mux.HandleFunc("/analyses/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: hh.DeleteByPath, // expects /analyses/{id}
	}))
	mux.HandleFunc("/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Stats,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		OnConfig:    d.OnConfig,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Ops
	health := HealthHandler{Hub: d.Hub, Observers: d.Observers}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: health.Health,
	}))
	dbh := DBHandler{Store: d.Store}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))
	if d.Metrics != nil {
		mux.Handle("/metrics", d.Metrics)
	}

	return mux
}
