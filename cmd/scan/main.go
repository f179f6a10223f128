package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/classify"
	"jobflag-engine/internal/config"
	"jobflag-engine/internal/extract"
	"jobflag-engine/internal/fetch"
	"jobflag-engine/internal/scan"
	"jobflag-engine/internal/secrets"
	"jobflag-engine/internal/store"
)

// jobflag-scan fetches LinkedIn/Indeed job pages and prints one verdict per
// URL as JSON lines.
//
//	jobflag-scan [-f urls.txt] [-record] [url ...]
func main() {
	file := flag.String("f", "", "file with one URL per line (- for stdin)")
	record := flag.Bool("record", false, "count results in stats and history")
	flag.Parse()

	urls := flag.Args()
	if *file != "" {
		more, err := readURLs(*file)
		if err != nil {
			log.Fatalf("read urls: %v", err)
		}
		urls = append(urls, more...)
	}
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: jobflag-scan [-f urls.txt] [-record] url ...")
		os.Exit(2)
	}

	dataDir := config.DataDir()
	config.LoadDotEnv(dataDir)
	dataDir = config.DataDir()

	cfg := config.Default()
	if loaded, err := config.Load(filepath.Join(dataDir, config.UserConfigName)); err == nil {
		cfg = loaded
	}
	config.ApplyEnv(&cfg)

	analyzer := &analyze.Analyzer{
		Credentials: secrets.NewStore(),
		Remote: classify.NewRemote(classify.RemoteConfig{
			Endpoint:         cfg.Remote.Endpoint,
			Model:            cfg.Remote.Model,
			Temperature:      cfg.Remote.Temperature,
			MaxTokens:        cfg.Remote.MaxTokens,
			DescriptionLimit: cfg.Remote.DescriptionLimit,
			Timeout:          cfg.RemoteTimeout(),
		}, nil),
	}
	if *record {
		db, err := store.Open(filepath.Join(dataDir, "jobflag.db"))
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()
		analyzer.Stats = db
		analyzer.History = db
	}

	s := &scan.Scanner{
		Fetcher:  fetch.New(fetch.NewHostLimiter(cfg.Scan.RequestsPerSec, cfg.Scan.Burst), cfg.Scan.UserAgent),
		Analyzer: analyzer,
		Extractor: extract.Extractor{Opts: extract.Options{
			DescriptionFloor:  cfg.Extraction.DescriptionFloor,
			SemanticMinLength: cfg.Extraction.SemanticMinLength,
		}},
		Workers: cfg.Scan.Workers,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := s.Run(ctx, urls)
	failed := writeResults(os.Stdout, results)
	if err != nil {
		log.Printf("[scan] stopped: %v", err)
		os.Exit(1)
	}
	if failed > 0 {
		log.Printf("[scan] %d of %d urls failed", failed, len(urls))
	}
}

func readURLs(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// writeResults prints JSON lines and reports how many URLs failed.
func writeResults(w io.Writer, results []scan.Result) int {
	enc := json.NewEncoder(w)
	failed := 0
	for _, r := range results {
		if r.Err != "" {
			failed++
		}
		_ = enc.Encode(r)
	}
	return failed
}
