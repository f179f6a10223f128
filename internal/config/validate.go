package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a trimmed copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Remote.Endpoint = strings.TrimSpace(out.Remote.Endpoint)
	out.Remote.Model = strings.TrimSpace(out.Remote.Model)
	out.App.DataDir = strings.TrimSpace(out.App.DataDir)
	out.Scan.UserAgent = strings.TrimSpace(out.Scan.UserAgent)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	// remote
	if out.Remote.Endpoint == "" {
		res.addErr("remote.endpoint is required")
	} else if u, err := url.Parse(out.Remote.Endpoint); err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		res.addErr("remote.endpoint must be an http(s) URL")
	} else if u.Scheme == "http" && u.Hostname() != "127.0.0.1" && u.Hostname() != "localhost" {
		res.addWarn("remote.endpoint uses plain http; the API key is sent in clear text.")
	}
	if out.Remote.Model == "" {
		res.addErr("remote.model is required")
	}
	if out.Remote.Temperature < 0 || out.Remote.Temperature > 2 {
		res.addErr("remote.temperature must be 0..2")
	}
	if out.Remote.MaxTokens <= 0 {
		res.addErr("remote.max_tokens must be > 0")
	} else if out.Remote.MaxTokens < 100 {
		res.addWarn("remote.max_tokens is very low (%d); replies may be cut off mid-JSON.", out.Remote.MaxTokens)
	}
	if out.Remote.DescriptionLimit <= 0 {
		res.addErr("remote.description_limit must be > 0")
	}
	if out.Remote.TimeoutSeconds < 0 {
		res.addErr("remote.timeout_seconds must be >= 0")
	}

	// extraction
	if out.Extraction.DescriptionFloor < 0 {
		res.addErr("extraction.description_floor must be >= 0")
	}
	if out.Extraction.SemanticMinLength < 0 {
		res.addErr("extraction.semantic_min_length must be >= 0")
	}

	// observer
	if out.Observer.DebounceMS <= 0 {
		res.addErr("observer.debounce_ms must be > 0")
	} else if out.Observer.DebounceMS > 5000 {
		res.addWarn("observer.debounce_ms is %d; badges will appear slowly.", out.Observer.DebounceMS)
	}

	// render
	if out.Render.MaxFlags <= 0 {
		res.addErr("render.max_flags must be > 0")
	}
	if out.Render.MaxSignals <= 0 {
		res.addErr("render.max_signals must be > 0")
	}

	// retention
	if out.Retention.AnalysesDays < 0 {
		res.addErr("retention.analyses_days must be >= 0")
	} else if out.Retention.AnalysesDays == 0 {
		res.addWarn("retention.analyses_days is 0; analysis history is kept forever.")
	}
	if out.Retention.CleanupMinutes <= 0 {
		res.addErr("retention.cleanup_minutes must be > 0")
	}

	// scan
	if out.Scan.RequestsPerSec <= 0 {
		res.addErr("scan.requests_per_sec must be > 0")
	} else if out.Scan.RequestsPerSec > 5 {
		res.addWarn("scan.requests_per_sec is %.1f; job sites may rate limit or block you.", out.Scan.RequestsPerSec)
	}
	if out.Scan.Burst <= 0 {
		res.addErr("scan.burst must be > 0")
	}
	if out.Scan.Workers <= 0 {
		res.addErr("scan.workers must be > 0")
	}

	return out, res
}
