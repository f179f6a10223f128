package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/config"
	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/events"
	"jobflag-engine/internal/observer"
	"jobflag-engine/internal/scan"
	"jobflag-engine/internal/store"
)

type Analyzer interface {
	AnalyzeTagged(ctx context.Context, tag analyze.Tag, rec domain.JobRecord) domain.Verdict
}

type CredentialStore interface {
	APIKey(ctx context.Context) (string, error)
	SetAPIKey(ctx context.Context, key string) error
}

// KeyChecker asks the remote endpoint whether it accepts a credential.
type KeyChecker interface {
	Ping(ctx context.Context, credential string) error
}

type StatsReader interface {
	GetStats(ctx context.Context) (domain.AggregateStats, error)
}

type ActiveSwitch interface {
	SetActive(active bool)
	Active() bool
}

type PageRouter interface {
	ActiveSwitch
	Dispatch(ctx context.Context, tabID string, ev observer.Event) error
	CloseTab(tabID string)
	CurrentJob(tabID string) string
}

type URLScanner interface {
	One(ctx context.Context, pageURL string) (scan.Result, error)
}

type AnalysesStore interface {
	StatsReader
	ListAnalyses(ctx context.Context, opts store.ListAnalysesOpts) ([]store.Analysis, error)
	DeleteAnalysis(ctx context.Context, id string) error
	Checkpoint(ctx context.Context) error
}

type Deps struct {
	Store AnalysesStore

	Hub *events.Hub

	// stores config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	// OnConfig applies a saved config to running components.
	OnConfig func(config.Config)

	Analyzer  Analyzer
	Secrets   CredentialStore
	Keys      KeyChecker
	Observers PageRouter
	Scanner   URLScanner

	// Metrics serves /metrics; nil disables the route.
	Metrics http.Handler
}
