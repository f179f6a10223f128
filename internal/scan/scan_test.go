package scan

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/classify"
	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/extract"
)

type fakeFetcher struct {
	pages map[string]string
}

func (f fakeFetcher) Page(_ context.Context, u string) (*goquery.Document, error) {
	html, ok := f.pages[u]
	if !ok {
		return nil, errors.New("404")
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

type heuristicAnalyzer struct {
	mu   sync.Mutex
	tags []analyze.Tag
}

func (h *heuristicAnalyzer) AnalyzeTagged(_ context.Context, tag analyze.Tag, rec domain.JobRecord) domain.Verdict {
	h.mu.Lock()
	h.tags = append(h.tags, tag)
	h.mu.Unlock()
	return classify.Heuristic(rec)
}

const indeedPage = `<html><body><div id="jobsearch-ViewjobPaneWrapper">
	<h1 class="jobsearch-JobInfoHeader-title">Remote Assistant</h1>
	<div id="jobDescriptionText">Earn $6,000 per month. No experience required, training provided. Part-time contract role for motivated people.</div>
</div></body></html>`

func TestScanner_Run(t *testing.T) {
	const (
		good    = "https://www.indeed.com/viewjob?jk=abc123"
		missing = "https://www.indeed.com/viewjob?jk=nope"
		other   = "https://example.com/careers/1"
		empty   = "https://www.linkedin.com/jobs/view/55"
	)
	a := &heuristicAnalyzer{}
	s := &Scanner{
		Fetcher: fakeFetcher{pages: map[string]string{
			good:  indeedPage,
			empty: `<html><body><div class="jobs-search__job-details"></div></body></html>`,
		}},
		Analyzer: a,
		Workers:  2,
	}

	res, err := s.Run(context.Background(), []string{good, missing, other, empty})
	require.NoError(t, err)
	require.Len(t, res, 4)

	require.NotNil(t, res[0].Verdict)
	assert.Equal(t, "indeed", res[0].Site)
	assert.Equal(t, "abc123", res[0].JobID)
	assert.Equal(t, "Remote Assistant", res[0].Record.Title)
	assert.Equal(t, domain.RiskRed, res[0].Verdict.RiskLevel)
	assert.Empty(t, res[0].Err)

	assert.Nil(t, res[1].Verdict)
	assert.Contains(t, res[1].Err, "404")

	assert.Contains(t, res[2].Err, ErrUnsupportedSite.Error())
	assert.Equal(t, extract.ErrExtractionEmpty.Error(), res[3].Err)

	assert.Equal(t, []analyze.Tag{{Site: "indeed", JobID: "abc123"}}, a.tags)
}

func TestScanner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scanner{Fetcher: fakeFetcher{}, Analyzer: &heuristicAnalyzer{}}
	_, err := s.Run(ctx, []string{"https://www.indeed.com/viewjob?jk=1"})
	assert.ErrorIs(t, err, context.Canceled)
}
