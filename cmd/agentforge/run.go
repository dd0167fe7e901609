package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentforge/agentforge/internal/adapters/llmcoder"
	"github.com/agentforge/agentforge/internal/config"
	"github.com/agentforge/agentforge/internal/orchestrator"
)

var runCmd = &cobra.Command{
	Use:   "run <request>",
	Short: "Generate code for a request and install whatever it imports",
	Long: `Run drives one full install-and-repair loop: it asks the configured
code-generation endpoint for a change, validates the imports it introduces,
checks the npm registry, asks for consent (unless --auto-approve is set),
installs with automatic rollback on failure, and re-drives generation with
structured feedback until the imports resolve or retries run out.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	request := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	coder, err := buildCoder(cfg)
	if err != nil {
		return err
	}

	o := newOrchestrator(cfg)
	result := o.Run(ctx, orchestrator.Config{
		ProjectRoot:      cfg.ProjectRoot,
		MaxImportRetries: cfg.MaxImportRetries,
		AutoApprove:      cfg.AutoApprove,
		SourceExtensions: orchestrator.DefaultSourceExtensions,
	}, request, coder)

	printRunResult(cmd, result)

	if !result.Success {
		return fmt.Errorf("run: %w", result.Err)
	}
	return nil
}

func printRunResult(cmd *cobra.Command, result orchestrator.RunResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: success=%v attempts=%d\n", result.RunID, result.Success, result.Attempts)
	for _, name := range result.InstalledProd {
		fmt.Fprintf(out, "  + %s (production)\n", name)
	}
	for _, name := range result.InstalledDev {
		fmt.Fprintf(out, "  + %s (development)\n", name)
	}
}

func buildCoder(cfg config.PipelineConfig) (orchestrator.Coder, error) {
	c := llmcoder.NewCoder(llmcoder.Config{
		Endpoint:  cfg.LLM.Endpoint,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if !c.Available() {
		return nil, fmt.Errorf("no AGENTFORGE_LLM_ENDPOINT configured; set it or add [llm] endpoint to agentforge.toml")
	}
	return c.Generate, nil
}
