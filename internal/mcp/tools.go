// Package mcp exposes the install-and-repair pipeline to AI agent
// hosts (such as Claude Code) via the Model Context Protocol. This
// package is a convenience surface only: the orchestrator core never
// imports it, keeping the core/external boundary intact.
package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/agentforge/agentforge/internal/config"
	"github.com/agentforge/agentforge/internal/orchestrator"
)

// RunInput is the input for the agentforge_run tool.
type RunInput struct {
	Request     string `json:"request" jsonschema:"required,description=Natural-language description of the code to generate"`
	AutoApprove bool   `json:"auto_approve,omitempty" jsonschema:"description=Approve all installs without prompting"`
}

// RunOutput is the output for the agentforge_run tool.
type RunOutput struct {
	RunID         string   `json:"run_id"`
	Success       bool     `json:"success"`
	InstalledProd []string `json:"installed_prod,omitempty"`
	InstalledDev  []string `json:"installed_dev,omitempty"`
	Attempts      int      `json:"attempts"`
	Error         string   `json:"error,omitempty"`
}

// PlanInput is the input for the agentforge_plan tool.
type PlanInput struct {
	Request string `json:"request" jsonschema:"required,description=Natural-language description of the code to generate"`
}

// PlanOutput is the output for the agentforge_plan tool. Unlike
// RunOutput it never reflects an installer invocation: Plan only
// reports what would need to be installed.
type PlanOutput struct {
	RunID            string   `json:"run_id"`
	MissingResolved  bool     `json:"missing_resolved"`
	WouldInstallProd []string `json:"would_install_prod,omitempty"`
	WouldInstallDev  []string `json:"would_install_dev,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// VersionInfo carries build metadata surfaced through agentforge_status.
type VersionInfo struct {
	Version string
	Commit  string
}

// Deps bundles the collaborators needed to serve every tool.
type Deps struct {
	Config      config.PipelineConfig
	Orchestrate func(ctx context.Context, cfg orchestrator.Config, request string, coder orchestrator.Coder) orchestrator.RunResult
	Coder       orchestrator.Coder
	Version     VersionInfo
}

// RegisterAll registers every agentforge MCP tool with srv.
func RegisterAll(srv *mcp.Server, deps Deps) {
	registerRunTool(srv, deps)
	registerPlanTool(srv, deps)
	registerStatusTool(srv, deps)
}

func registerRunTool(srv *mcp.Server, deps Deps) {
	srv.Tool("agentforge_run").
		Description("Generate code for a request and install any npm packages it imports, with consent and rollback.").
		Handler(func(ctx context.Context, in RunInput) (*RunOutput, error) {
			cfg := toOrchestratorConfig(deps.Config)
			cfg.AutoApprove = cfg.AutoApprove || in.AutoApprove

			result := deps.Orchestrate(ctx, cfg, in.Request, deps.Coder)
			out := &RunOutput{
				RunID:         result.RunID,
				Success:       result.Success,
				InstalledProd: result.InstalledProd,
				InstalledDev:  result.InstalledDev,
				Attempts:      result.Attempts,
			}
			if result.Err != nil {
				out.Error = result.Err.Error()
			}
			return out, nil
		})
}

func registerPlanTool(srv *mcp.Server, deps Deps) {
	srv.Tool("agentforge_plan").
		Description("Dry-run the install-and-repair loop: validate and check the registry without installing anything.").
		ReadOnly().
		Handler(func(ctx context.Context, in PlanInput) (*PlanOutput, error) {
			cfg := toOrchestratorConfig(deps.Config)
			cfg.AutoApprove = false

			result := deps.Orchestrate(ctx, cfg, in.Request, deps.Coder)
			out := &PlanOutput{
				RunID:            result.RunID,
				MissingResolved:  result.Success,
				WouldInstallProd: result.InstalledProd,
				WouldInstallDev:  result.InstalledDev,
			}
			if result.Err != nil {
				out.Error = result.Err.Error()
			}
			return out, nil
		})
}

// StatusOutput is the output for the agentforge_status tool.
type StatusOutput struct {
	Version          string `json:"version"`
	Commit           string `json:"commit"`
	RegistryURL      string `json:"registry_url"`
	MaxImportRetries int    `json:"max_import_retries"`
}

func registerStatusTool(srv *mcp.Server, deps Deps) {
	srv.Tool("agentforge_status").
		Description("Report the pipeline's current configuration and version.").
		ReadOnly().
		Handler(func(_ context.Context, _ struct{}) (*StatusOutput, error) {
			return &StatusOutput{
				Version:          deps.Version.Version,
				Commit:           deps.Version.Commit,
				RegistryURL:      deps.Config.RegistryURL,
				MaxImportRetries: deps.Config.MaxImportRetries,
			}, nil
		})
}

func toOrchestratorConfig(cfg config.PipelineConfig) orchestrator.Config {
	return orchestrator.Config{
		ProjectRoot:      cfg.ProjectRoot,
		MaxImportRetries: cfg.MaxImportRetries,
		AutoApprove:      cfg.AutoApprove,
		SourceExtensions: orchestrator.DefaultSourceExtensions,
	}
}
