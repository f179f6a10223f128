package scan

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/extract"
)

var ErrUnsupportedSite = extract.ErrUnsupportedSite

type PageFetcher interface {
	Page(ctx context.Context, pageURL string) (*goquery.Document, error)
}

type Analyzer interface {
	AnalyzeTagged(ctx context.Context, tag analyze.Tag, rec domain.JobRecord) domain.Verdict
}

// Result is the outcome for one URL. Err is set when no verdict was made.
type Result struct {
	URL     string           `json:"url"`
	Site    string           `json:"site,omitempty"`
	JobID   string           `json:"jobId,omitempty"`
	Record  domain.JobRecord `json:"record"`
	Verdict *domain.Verdict  `json:"verdict,omitempty"`
	Err     string           `json:"error,omitempty"`
}

type Scanner struct {
	Fetcher   PageFetcher
	Analyzer  Analyzer
	Extractor extract.Extractor
	Workers   int
	// PerPage bounds the fetch plus analysis of one URL.
	PerPage time.Duration
}

// One fetches, extracts and classifies a single job page.
func (s *Scanner) One(ctx context.Context, pageURL string) (Result, error) {
	res := Result{URL: pageURL}

	site, ok := extract.SiteForURL(pageURL)
	if !ok {
		return res, fmt.Errorf("%w: %s", ErrUnsupportedSite, pageURL)
	}
	res.Site = site.Name
	res.JobID = extract.JobID(site, pageURL)

	doc, err := s.Fetcher.Page(ctx, pageURL)
	if err != nil {
		return res, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	res.Record = s.Extractor.Extract(doc, site, pageURL)
	if res.Record.Empty() {
		return res, extract.ErrExtractionEmpty
	}

	v := s.Analyzer.AnalyzeTagged(ctx, analyze.Tag{Site: site.Name, JobID: res.JobID}, res.Record)
	res.Verdict = &v
	return res, nil
}

// Run scans urls concurrently. Per-URL failures are reported in the
// results; only a cancelled ctx fails the batch. Results keep input order.
func (s *Scanner) Run(ctx context.Context, urls []string) ([]Result, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = 4
	}
	perPage := s.PerPage
	if perPage <= 0 {
		perPage = 2 * time.Minute
	}

	out := make([]Result, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, u := range urls {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, perPage)
			defer cancel()

			res, err := s.One(pctx, u)
			if err != nil {
				log.Printf("[scan] url=%s error: %v", u, err)
				res.Err = err.Error()
			} else {
				log.Printf("[scan] url=%s score=%d source=%s", u, res.Verdict.Score, res.Verdict.Source)
			}
			out[i] = res
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
