package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/classify"
	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/scan"
	"jobflag-engine/internal/store"
)

type heuristicOnly struct{}

func (heuristicOnly) AnalyzeTagged(_ context.Context, _ analyze.Tag, rec domain.JobRecord) domain.Verdict {
	return classify.Heuristic(rec)
}

type fixedStats struct{ err error }

func (f fixedStats) GetStats(context.Context) (domain.AggregateStats, error) {
	return domain.AggregateStats{JobsAnalyzed: 3, FlagsTriggered: 2}, f.err
}

type fixedHistory struct{ opts store.ListAnalysesOpts }

func (f *fixedHistory) ListAnalyses(_ context.Context, opts store.ListAnalysesOpts) ([]store.Analysis, error) {
	f.opts = opts
	return []store.Analysis{{ID: "a1", Title: "Data Entry"}}, nil
}

type failingScanner struct{}

func (failingScanner) One(_ context.Context, u string) (scan.Result, error) {
	return scan.Result{URL: u}, errors.New("fetch failed")
}

func call(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestAnalyzeJobTool(t *testing.T) {
	d := toolDeps{analyzer: heuristicOnly{}, scanner: failingScanner{}}
	h := analyzeJobHandler(d)

	res, err := h(context.Background(), call(map[string]interface{}{
		"title":       "Remote Assistant Needed",
		"description": "Earn $6,000/month, no experience necessary, training provided",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var v domain.Verdict
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	assert.Equal(t, 35, v.Score)
	assert.Equal(t, domain.RiskRed, v.RiskLevel)

	res, err = h(context.Background(), call(map[string]interface{}{"company": "Acme"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h(context.Background(), call(map[string]interface{}{"url": "https://www.indeed.com/viewjob?jk=1"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "fetch failed")
}

func TestGetStatsTool(t *testing.T) {
	res, err := getStatsHandler(toolDeps{stats: fixedStats{}})(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "Analyzed 3 jobs, 2 flagged.", resultText(t, res))

	res, err = getStatsHandler(toolDeps{stats: fixedStats{err: errors.New("locked")}})(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListAnalysesTool(t *testing.T) {
	hist := &fixedHistory{}
	res, err := listAnalysesHandler(toolDeps{history: hist})(context.Background(), call(map[string]interface{}{
		"window": "all", "flagged": true, "limit": float64(5),
	}))
	require.NoError(t, err)
	assert.Equal(t, store.ListAnalysesOpts{Window: "all", Flagged: true, Limit: 5}, hist.opts)
	assert.Contains(t, resultText(t, res), "Data Entry")
}
