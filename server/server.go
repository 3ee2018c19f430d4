package server

import (
	"context"

	"github.com/cnosuke/seo-analyzer/server/tools"
	"github.com/cockroachdb/errors"
	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"go.uber.org/zap"
)

// Run - Execute the MCP server on stdio until ctx is cancelled
func Run(ctx context.Context, analyzer tools.Analyzer, name string, version string, revision string) error {
	// Format version string with revision if available
	versionString := version
	if revision != "" && revision != "xxx" {
		versionString = versionString + " (" + revision + ")"
	}
	zap.S().Infow("starting MCP SEO server", "name", name, "version", versionString)

	// Create MCP server with stdio transport
	mcpServer := mcp.NewServer(stdio.NewStdioServerTransport())

	// Register all tools
	zap.S().Debugw("registering tools")
	if err := tools.RegisterAllTools(ctx, mcpServer, analyzer); err != nil {
		zap.S().Errorw("failed to register tools", "error", err)
		return err
	}

	// Start the server
	zap.S().Infow("starting MCP server")
	if err := mcpServer.Serve(); err != nil {
		zap.S().Errorw("failed to start server", "error", err)
		return errors.Wrap(err, "failed to start server")
	}

	// Serve returns once the transport is running; block until shutdown
	<-ctx.Done()
	zap.S().Infow("server shutting down")
	return nil
}
