// Package installer spawns the detected package manager with
// category-appropriate arguments, streams its output to the user, and
// classifies the outcome.
package installer

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentforge/agentforge/internal/categorize"
	"github.com/agentforge/agentforge/internal/pm"
	"github.com/agentforge/agentforge/internal/ports"
	"github.com/agentforge/agentforge/internal/result"
)

// ErrorKind distinguishes why an install attempt failed; it drives
// which feedback message the orchestrator builds for the coder.
type ErrorKind int

const (
	InstallFailed ErrorKind = iota
	ExecutionFailed
	InvalidArgument
)

// InstallError is the failure arm of Install's Result.
type InstallError struct {
	Kind     ErrorKind
	ExitCode int
	Reason   string
	Name     string
}

func (e *InstallError) Error() string {
	switch e.Kind {
	case InstallFailed:
		return fmt.Sprintf("installer: install failed with exit code %d", e.ExitCode)
	case InvalidArgument:
		return fmt.Sprintf("installer: invalid package name %q", e.Name)
	default:
		return fmt.Sprintf("installer: execution failed: %s", e.Reason)
	}
}

// InstallResult is the success arm of Install's Result.
type InstallResult struct {
	Packages []string
	Manager  pm.Manager
	Category categorize.Category
}

// metacharacters is the closed set of bytes that must never appear in a
// package name reaching Install, defence-in-depth layered over
// spawning the child without shell interpretation.
const metacharacters = ";&|`$(){}<>\n\r\"' \t"

// Request describes one install invocation: one manager, one category,
// one batch of packages. Production and development installs are
// always separate requests so a failure in one never unwinds the
// other.
type Request struct {
	Manager     pm.Manager
	Packages    []string
	ProjectRoot string
	Category    categorize.Category
}

// Installer spawns the package manager through ports.CommandRunner.
type Installer struct {
	runner ports.CommandRunner
}

// NewInstaller creates an Installer over the given command runner.
func NewInstaller(runner ports.CommandRunner) *Installer {
	return &Installer{runner: runner}
}

// argvTails maps (manager, category) to the fixed argv tail that comes
// after the binary name. All packages are appended to a single
// invocation; batching avoids sequential lock-file rewrites.
var argvTails = map[pm.Manager]map[categorize.Category][]string{
	pm.NPM: {
		categorize.Production:  {"install", "--save"},
		categorize.Development: {"install", "--save-dev"},
	},
	pm.PNPM: {
		categorize.Production:  {"add"},
		categorize.Development: {"add", "--save-dev"},
	},
	pm.Yarn: {
		categorize.Production:  {"add"},
		categorize.Development: {"add", "--dev"},
	},
}

// Install spawns the detected package manager to install packages of
// one category. The child inherits the parent's stdio so the user sees
// real-time package manager output; no timeout is imposed, since large
// installs must be allowed to complete.
func (i *Installer) Install(ctx context.Context, req Request) result.Result[InstallResult, *InstallError] {
	for _, name := range req.Packages {
		if containsMetacharacter(name) {
			return result.Err[InstallResult, *InstallError](&InstallError{
				Kind: InvalidArgument,
				Name: name,
			})
		}
	}

	tail, ok := argvTails[req.Manager][req.Category]
	if !ok {
		return result.Err[InstallResult, *InstallError](&InstallError{
			Kind:   ExecutionFailed,
			Reason: fmt.Sprintf("no argv mapping for manager %q category %q", req.Manager, req.Category),
		})
	}

	args := append(append([]string{}, tail...), req.Packages...)

	cmdResult, err := i.runner.RunInherited(ctx, string(req.Manager), args...)
	if err != nil {
		// ports.CommandRunner only returns a non-nil error for spawn-time
		// failures; a non-zero exit is reported through CommandResult.
		return result.Err[InstallResult, *InstallError](&InstallError{
			Kind:   ExecutionFailed,
			Reason: err.Error(),
		})
	}

	if !cmdResult.Success() {
		return result.Err[InstallResult, *InstallError](&InstallError{
			Kind:     InstallFailed,
			ExitCode: cmdResult.ExitCode,
		})
	}

	return result.Ok[InstallResult, *InstallError](InstallResult{
		Packages: req.Packages,
		Manager:  req.Manager,
		Category: req.Category,
	})
}

func containsMetacharacter(name string) bool {
	return strings.ContainsAny(name, metacharacters)
}
