package tools

import (
	"context"

	mcp "github.com/metoro-io/mcp-golang"
)

// RegisterAllTools - Register all tools with the server
func RegisterAllTools(ctx context.Context, mcpServer *mcp.Server, analyzer Analyzer) error {
	// Register analyze_seo tool
	if err := RegisterAnalyzeTool(ctx, mcpServer, analyzer); err != nil {
		return err
	}

	return nil
}
