package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/classify"
	"jobflag-engine/internal/config"
	"jobflag-engine/internal/extract"
	"jobflag-engine/internal/fetch"
	"jobflag-engine/internal/scan"
	"jobflag-engine/internal/secrets"
	"jobflag-engine/internal/store"
)

// jobflag-mcp exposes the classifier to MCP clients over stdio. It shares
// the engine's data dir and database; stdout belongs to the protocol, so
// logs go to stderr.
func main() {
	log.SetOutput(os.Stderr)

	dataDir := config.DataDir()
	config.LoadDotEnv(dataDir)
	dataDir = config.DataDir()

	cfg := config.Default()
	if loaded, err := config.Load(filepath.Join(dataDir, config.UserConfigName)); err == nil {
		cfg = loaded
	}
	config.ApplyEnv(&cfg)

	db, err := store.Open(filepath.Join(dataDir, "jobflag.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	analyzer := &analyze.Analyzer{
		Credentials: secrets.NewStore(),
		Stats:       db,
		History:     db,
		Remote: classify.NewRemote(classify.RemoteConfig{
			Endpoint:         cfg.Remote.Endpoint,
			Model:            cfg.Remote.Model,
			Temperature:      cfg.Remote.Temperature,
			MaxTokens:        cfg.Remote.MaxTokens,
			DescriptionLimit: cfg.Remote.DescriptionLimit,
			Timeout:          cfg.RemoteTimeout(),
		}, nil),
	}
	extractor := extract.Extractor{Opts: extract.Options{
		DescriptionFloor:  cfg.Extraction.DescriptionFloor,
		SemanticMinLength: cfg.Extraction.SemanticMinLength,
	}}

	d := toolDeps{
		analyzer: analyzer,
		stats:    db,
		history:  db,
		scanner: &scan.Scanner{
			Fetcher:   fetch.New(fetch.NewHostLimiter(cfg.Scan.RequestsPerSec, cfg.Scan.Burst), cfg.Scan.UserAgent),
			Analyzer:  analyzer,
			Extractor: extractor,
			Workers:   1,
		},
	}

	s := server.NewMCPServer("jobflag", "1.0.0")
	registerTools(s, d)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
