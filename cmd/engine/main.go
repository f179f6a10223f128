package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/config"
	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/events"
	"jobflag-engine/internal/extract"
	"jobflag-engine/internal/fetch"
	"jobflag-engine/internal/httpapi"
	"jobflag-engine/internal/observer"
	"jobflag-engine/internal/render"
	"jobflag-engine/internal/scan"
	"jobflag-engine/internal/scheduler"
	"jobflag-engine/internal/secrets"
	"jobflag-engine/internal/store"
)

func main() {
	dataDir := config.DataDir()
	config.LoadDotEnv(dataDir)
	// .env may have set the data dir itself
	dataDir = config.DataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already using %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		config.ApplyEnv(&cfg)
		cfg, vr := config.NormalizeAndValidate(cfg)
		for _, w := range vr.Warnings {
			log.Printf("[config] warning: %s", w)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("invalid config: %v", vr.Errors)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobflag.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub()
	creds := secrets.NewStore()

	analyzer := &analyze.Analyzer{
		Credentials: creds,
		Stats:       db,
		Remote:      liveRemote{cfgVal: &cfgVal},
		History:     db,
		Notify: func(tag analyze.Tag, v domain.Verdict) {
			hub.Publish(events.MakeEvent("", events.TypeAnalysisStored, 1, map[string]any{
				"site": tag.Site, "jobId": tag.JobID, "score": v.Score, "source": v.Source,
			}))
			if s, err := db.GetStats(ctx); err == nil {
				hub.Publish(events.MakeEvent("", events.TypeStatsUpdated, 1, s))
			}
		},
	}

	extractor := extract.Extractor{Opts: extract.Options{
		DescriptionFloor:  cfg.Extraction.DescriptionFloor,
		SemanticMinLength: cfg.Extraction.SemanticMinLength,
	}}

	sink := &render.Sink{
		Hub:    hub,
		Limits: render.Limits{MaxFlags: cfg.Render.MaxFlags, MaxSignals: cfg.Render.MaxSignals},
	}
	observers := observer.NewRegistry(ctx, analyzer, sink, observer.Options{
		Quiet:     cfg.DebounceWindow(),
		Extractor: extractor,
		Inactive:  !cfg.Observer.Active,
	})
	sink.Current = observers.TabJob
	defer observers.Close()

	scanner := &scan.Scanner{
		Fetcher:   fetch.New(fetch.NewHostLimiter(cfg.Scan.RequestsPerSec, cfg.Scan.Burst), cfg.Scan.UserAgent),
		Analyzer:  analyzer,
		Extractor: extractor,
		Workers:   cfg.Scan.Workers,
	}

	go scheduler.Every(ctx, cfg.CleanupInterval(), "retention", scheduler.Retention(db, func() int {
		return cfgVal.Load().(config.Config).Retention.AnalysesDays
	}))

	mux := httpapi.NewMux(httpapi.Deps{
		Store:       db,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		OnConfig: func(c config.Config) {
			observers.SetActive(c.Observer.Active)
			log.Printf("[config] saved; extraction, render, observer and scan settings apply on restart")
		},
		Analyzer:  analyzer,
		Secrets:   creds,
		Keys:      liveRemote{cfgVal: &cfgVal},
		Observers: observers,
		Scanner:   scanner,
		Metrics:   promhttp.Handler(),
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token := os.Getenv("JOBFLAG_SHUTDOWN_TOKEN")
	if token == "" {
		if token, err = randomToken(16); err != nil {
			log.Fatal(err)
		}
	}
	tokenPath, err := writeTokenFile(dataDir, token)
	if err != nil {
		log.Printf("[engine] could not write shutdown token: %v", err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("engine listening on http://%s (db=%s token=%s)", addr, dbPath, tokenPath)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[engine] serve: %v", err)
	}

	cpCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Checkpoint(cpCtx); err != nil {
		log.Printf("[engine] checkpoint on exit: %v", err)
	}
	_ = os.Remove(tokenPath)
	log.Printf("engine stopped")
}
