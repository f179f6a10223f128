package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/scan"
	"jobflag-engine/internal/store"
)

type jobAnalyzer interface {
	AnalyzeTagged(ctx context.Context, tag analyze.Tag, rec domain.JobRecord) domain.Verdict
}

type statsReader interface {
	GetStats(ctx context.Context) (domain.AggregateStats, error)
}

type historyReader interface {
	ListAnalyses(ctx context.Context, opts store.ListAnalysesOpts) ([]store.Analysis, error)
}

type urlScanner interface {
	One(ctx context.Context, pageURL string) (scan.Result, error)
}

type toolDeps struct {
	analyzer jobAnalyzer
	stats    statsReader
	history  historyReader
	scanner  urlScanner
}

func registerTools(s *server.MCPServer, d toolDeps) {
	analyzeTool := mcp.NewTool("analyze_job",
		mcp.WithDescription("Score a job posting for fraud risk (0 = scam, 100 = legitimate). Pass either the posting fields or a LinkedIn/Indeed URL."),
	)
	analyzeTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"title":       map[string]interface{}{"type": "string", "description": "Job title"},
			"company":     map[string]interface{}{"type": "string", "description": "Company name (optional)"},
			"description": map[string]interface{}{"type": "string", "description": "Full job description text"},
			"has_logo":    map[string]interface{}{"type": "boolean", "description": "Whether the posting shows a company logo"},
			"url":         map[string]interface{}{"type": "string", "description": "LinkedIn or Indeed job URL to fetch instead of the fields above"},
		},
	}
	s.AddTool(analyzeTool, analyzeJobHandler(d))

	statsTool := mcp.NewTool("get_stats",
		mcp.WithDescription("Return how many jobs were analyzed and how many had red flags"),
	)
	statsTool.InputSchema = mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}}
	s.AddTool(statsTool, getStatsHandler(d))

	recentTool := mcp.NewTool("list_analyses",
		mcp.WithDescription("List recent analyses from the local history"),
	)
	recentTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"window":  map[string]interface{}{"type": "string", "description": "24h, 7d (default) or all"},
			"flagged": map[string]interface{}{"type": "boolean", "description": "Only postings with red flags"},
			"limit":   map[string]interface{}{"type": "integer", "description": "Max rows (default 20)"},
		},
	}
	s.AddTool(recentTool, listAnalysesHandler(d))
}

func analyzeJobHandler(d toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		if u, _ := args["url"].(string); strings.TrimSpace(u) != "" {
			res, err := d.scanner.One(ctx, strings.TrimSpace(u))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze %s: %v", u, err)), nil
			}
			return jsonResult(res)
		}

		rec := domain.JobRecord{}
		rec.Title, _ = args["title"].(string)
		rec.Company, _ = args["company"].(string)
		rec.Description, _ = args["description"].(string)
		rec.HasLogo, _ = args["has_logo"].(bool)
		if rec.Empty() {
			return mcp.NewToolResultError("title or description is required"), nil
		}

		v := d.analyzer.AnalyzeTagged(ctx, analyze.Tag{Site: "mcp"}, rec)
		return jsonResult(v)
	}
}

func getStatsHandler(d toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s, err := d.stats.GetStats(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read stats: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Analyzed %d jobs, %d flagged.", s.JobsAnalyzed, s.FlagsTriggered)), nil
	}
}

func listAnalysesHandler(d toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		opts := store.ListAnalysesOpts{Limit: 20}
		if v, ok := args["window"].(string); ok {
			opts.Window = strings.TrimSpace(v)
		}
		if v, ok := args["flagged"].(bool); ok {
			opts.Flagged = v
		}
		if v, ok := args["limit"].(float64); ok && v > 0 {
			opts.Limit = int(v)
		}

		out, err := d.history.ListAnalyses(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list analyses: %v", err)), nil
		}
		return jsonResult(out)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
