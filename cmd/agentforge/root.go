package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentforge/agentforge/internal/config"
)

const (
	exitSuccess      = 0
	exitPipelineFail = 1
	exitConfigOrConn = 2
)

var (
	logLevel    string
	logJSON     bool
	autoApprove bool
)

var rootCmd = &cobra.Command{
	Use:   "agentforge",
	Short: "Generates code and repairs its npm-ecosystem imports",
	Long: `agentforge drives an install-and-repair loop around a code-generation
agent: it validates the imports a generated change introduces, checks the
npm registry, asks for consent, installs with automatic rollback on
failure, and re-drives generation with structured feedback until the
imports resolve or the retry budget runs out.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		var userErr *config.UserError
		if errors.As(err, &userErr) {
			return exitConfigOrConn
		}
		return exitPipelineFail
	}
	return exitSuccess
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit structured JSON logs")
	rootCmd.PersistentFlags().BoolVar(&autoApprove, "auto-approve", false, "approve all installs without prompting")

	rootCmd.AddCommand(versionCmd)
}

func printError(err error) {
	printErrorTo(os.Stderr, err)
}

func printErrorTo(w io.Writer, err error) {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		_, _ = fmt.Fprintf(w, "Error: %s\n", msg)
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %s\n", err)
}
