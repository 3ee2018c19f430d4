package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
	mcp "github.com/metoro-io/mcp-golang"
	"go.uber.org/zap"
)

// AnalyzeArgs - Arguments for analyze_seo tool
type AnalyzeArgs struct {
	URL string `json:"url" jsonschema:"description=Absolute http(s) URL of the page to analyze,required=true"`
}

// Analyzer defines the interface for producing a report
type Analyzer interface {
	Analyze(ctx context.Context, targetURL string) *types.Report
}

// RegisterAnalyzeTool - Register the analyze_seo tool
func RegisterAnalyzeTool(ctx context.Context, mcpServer *mcp.Server, analyzer Analyzer) error {
	zap.S().Debugw("registering analyze_seo tool")
	err := mcpServer.RegisterTool("analyze_seo",
		"Fetches a web page with its robots.txt and sitemap.xml and reports on-page SEO checks (title, meta description, headings, image alt text, Open Graph, canonical link) as JSON",
		analyzeHandler(ctx, analyzer))
	if err != nil {
		zap.S().Errorw("failed to register analyze_seo tool", "error", err)
		return errors.Wrap(err, "failed to register analyze_seo tool")
	}

	return nil
}

func analyzeHandler(ctx context.Context, analyzer Analyzer) func(args AnalyzeArgs) (*mcp.ToolResponse, error) {
	return func(args AnalyzeArgs) (*mcp.ToolResponse, error) {
		url := strings.TrimSpace(args.URL)
		zap.S().Infow("executing analyze_seo", "url", url)

		// Validate URL
		if url == "" {
			return nil, errors.New("URL is required")
		}

		report := analyzer.Analyze(ctx, url)

		// Convert report to JSON
		jsonResponse, err := json.Marshal(report)
		if err != nil {
			zap.S().Errorw("failed to marshal report to JSON",
				"error", err)
			return nil, errors.Wrap(err, "failed to marshal report to JSON")
		}

		return mcp.NewToolResponse(mcp.NewTextContent(string(jsonResponse))), nil
	}
}
