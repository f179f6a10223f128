package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/classify"
	"jobflag-engine/internal/domain"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrBadMessage    = errors.New("malformed message")
)

// Request is one message of the browser protocol. The set is closed.
type Request interface {
	action() string
}

type AnalyzeJob struct {
	JobData domain.JobRecord `json:"jobData"`
	// Site and JobID are optional and only tag the stored history.
	Site  string `json:"site,omitempty"`
	JobID string `json:"jobId,omitempty"`
}

type GetAPIKey struct{}

type SaveAPIKey struct {
	APIKey string `json:"apiKey"`
}

type GetStats struct{}

type ToggleActive struct {
	IsActive bool `json:"isActive"`
}

func (AnalyzeJob) action() string   { return "analyzeJob" }
func (GetAPIKey) action() string    { return "getApiKey" }
func (SaveAPIKey) action() string   { return "saveApiKey" }
func (GetStats) action() string     { return "getStats" }
func (ToggleActive) action() string { return "toggleActive" }

// DecodeRequest reads {"action": ...} and the fields of that action.
func DecodeRequest(b []byte) (Request, error) {
	var head struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}

	var req Request
	switch head.Action {
	case "analyzeJob":
		var r AnalyzeJob
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		req = r
	case "getApiKey":
		req = GetAPIKey{}
	case "saveApiKey":
		var r SaveAPIKey
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		req = r
	case "getStats":
		req = GetStats{}
	case "toggleActive":
		var r ToggleActive
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		req = r
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, head.Action)
	}
	return req, nil
}

type APIKeyResponse struct {
	APIKey string `json:"apiKey"`
}

type AckResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Bus answers browser messages.
type Bus struct {
	Analyzer  Analyzer
	Secrets   CredentialStore
	// Keys, when set, vets a key before it is stored.
	Keys      KeyChecker
	Stats     StatsReader
	Observers ActiveSwitch
	// OnActive, when set, persists the toggle.
	OnActive func(bool) error
}

// Handle never fails for a known request; failures are part of the reply
// the way the browser side expects them.
func (b *Bus) Handle(ctx context.Context, req Request) (any, error) {
	switch r := req.(type) {
	case AnalyzeJob:
		return b.Analyzer.AnalyzeTagged(ctx, analyzeTag(r), r.JobData), nil

	case GetAPIKey:
		key, err := b.Secrets.APIKey(ctx)
		if err != nil {
			return AckResponse{Error: err.Error()}, nil
		}
		return APIKeyResponse{APIKey: key}, nil

	case SaveAPIKey:
		key := strings.TrimSpace(r.APIKey)
		if b.Keys != nil && key != "" {
			if err := b.Keys.Ping(ctx, key); err != nil {
				log.Printf("[bus] api key rejected: %v", err)
				return AckResponse{Error: keyCheckMessage(err)}, nil
			}
		}
		if err := b.Secrets.SetAPIKey(ctx, key); err != nil {
			return AckResponse{Error: err.Error()}, nil
		}
		return AckResponse{Success: true}, nil

	case GetStats:
		s, err := b.Stats.GetStats(ctx)
		if err != nil {
			log.Printf("[bus] stats read failed: %v", err)
			return domain.AggregateStats{}, nil
		}
		return s, nil

	case ToggleActive:
		b.Observers.SetActive(r.IsActive)
		if b.OnActive != nil {
			if err := b.OnActive(r.IsActive); err != nil {
				log.Printf("[bus] persist active=%v failed: %v", r.IsActive, err)
			}
		}
		return AckResponse{Success: true}, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, req)
	}
}

func analyzeTag(r AnalyzeJob) analyze.Tag {
	return analyze.Tag{Site: r.Site, JobID: r.JobID}
}

// keyCheckMessage is what the popup shows for a rejected key.
func keyCheckMessage(err error) string {
	var re *classify.RemoteError
	if !errors.As(err, &re) || re.Status == 0 {
		return "Connection failed"
	}
	if re.Message == "" {
		return "API error"
	}
	return re.Message
}
