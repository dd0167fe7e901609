// Package orchestrator implements the Install-and-Repair loop that
// binds the package-manager detector, registry client, import
// validator, categoriser, consent manager, installer, and backup
// around an external code-generation agent, re-driving it on
// rejection, substitution, or install failure until imports resolve or
// the attempt budget is exhausted.
package orchestrator

import (
	"context"

	"github.com/agentforge/agentforge/internal/importscan"
)

// GeneratedFile is one file produced by the coder agent.
type GeneratedFile struct {
	Path    string
	Content string
}

// Changes is everything one coder invocation produced.
type Changes struct {
	Files []GeneratedFile
}

// CoderInput is what the orchestrator sends the external coder. On the
// first call Feedback is empty; on every subsequent call it carries the
// formatted retry message from the previous iteration.
type CoderInput struct {
	Request  string
	Feedback string
}

// Coder is the only shape the core sees of the code-generation agent.
type Coder func(ctx context.Context, input CoderInput) (Changes, error)

// Config configures one pipeline run.
type Config struct {
	ProjectRoot      string
	MaxImportRetries int
	AutoApprove      bool
	// SourceExtensions filters which generated files are scanned for
	// imports; files outside this set are passed through untouched.
	SourceExtensions []string
	// InitialAllow is the manifest's declared production and
	// development dependencies, forming the initial allow-set.
	InitialAllow importscan.AllowSet
}

// DefaultSourceExtensions covers the common source extensions of the
// ecosystem this pipeline targets.
var DefaultSourceExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

// RunResult is the terminal outcome of one pipeline run.
type RunResult struct {
	RunID         string
	Success       bool
	Files         []GeneratedFile
	InstalledProd []string
	InstalledDev  []string
	Attempts      int
	Err           error
}

// PlanResult is the terminal outcome of one dry-run planning pass: it
// reports what would be installed without ever invoking the installer.
type PlanResult struct {
	RunID            string
	MissingResolved  bool
	WouldInstallProd []string
	WouldInstallDev  []string
	Rejected         []string
	Err              error
}
