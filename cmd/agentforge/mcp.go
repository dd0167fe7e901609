package main

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/spf13/cobra"

	mcptools "github.com/agentforge/agentforge/internal/mcp"
	"github.com/agentforge/agentforge/internal/orchestrator"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the pipeline to AI agent hosts",
	Long: `Start a Model Context Protocol server exposing agentforge_run,
agentforge_plan, and agentforge_status to MCP-capable hosts such as Claude
Code.

Examples:
  agentforge mcp                  # Start stdio MCP server
  agentforge mcp --http :8080     # Start HTTP MCP server`,
	RunE: runMCP,
}

var mcpHTTP string

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTP, "http", "", "start an HTTP server on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	coder, err := buildCoder(cfg)
	if err != nil {
		return err
	}

	o := newOrchestrator(cfg)

	srv := mcp.NewServer(mcp.ServerInfo{Name: "agentforge", Version: version})
	mcptools.RegisterAll(srv, mcptools.Deps{
		Config: cfg,
		Orchestrate: func(ctx context.Context, runCfg orchestrator.Config, request string, c orchestrator.Coder) orchestrator.RunResult {
			return o.Run(ctx, runCfg, request, c)
		},
		Coder:   coder,
		Version: mcptools.VersionInfo{Version: version, Commit: commit},
	})

	if mcpHTTP != "" {
		return mcp.ServeHTTP(ctx, srv, mcpHTTP)
	}
	return mcp.ServeStdio(ctx, srv)
}
