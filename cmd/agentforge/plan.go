package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentforge/agentforge/internal/orchestrator"
)

var planCmd = &cobra.Command{
	Use:   "plan <request>",
	Short: "Show what would be installed for a request, without installing",
	Long: `Plan generates code for a request and reports which packages would need
to be installed to satisfy its imports. It checks the registry and asks for
consent the same way run does, but the installer is never invoked.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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
	result := o.Plan(ctx, orchestrator.Config{
		ProjectRoot:      cfg.ProjectRoot,
		MaxImportRetries: cfg.MaxImportRetries,
		SourceExtensions: orchestrator.DefaultSourceExtensions,
	}, request, coder)

	if result.Err != nil {
		return fmt.Errorf("plan: %w", result.Err)
	}

	out := cmd.OutOrStdout()
	if result.MissingResolved {
		fmt.Fprintln(out, "no missing imports; nothing to install")
		return nil
	}
	for _, name := range result.WouldInstallProd {
		fmt.Fprintf(out, "  would install %s (production)\n", name)
	}
	for _, name := range result.WouldInstallDev {
		fmt.Fprintf(out, "  would install %s (development)\n", name)
	}
	for _, name := range result.Rejected {
		fmt.Fprintf(out, "  rejected %s\n", name)
	}
	return nil
}
