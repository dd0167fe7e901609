// Package feedback renders the retry messages sent back to the
// code-generation agent after a rejection, registry miss, substitution,
// or install failure. Grounded on the same labelled-section,
// one-finding-per-line, closing-directive style the rest of the
// project uses for reporting actionable problems back to a caller.
package feedback

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentforge/agentforge/internal/importscan"
	"github.com/agentforge/agentforge/internal/installer"
)

// Rejection renders feedback for packages the user rejected during
// consent, one line per package with the required rejection wording
// followed by its fix suggestion.
func Rejection(packages []string, fixes map[string]string) string {
	if len(packages) == 0 {
		return ""
	}
	sorted := sortedCopy(packages)

	var b strings.Builder
	for _, pkg := range sorted {
		fmt.Fprintf(&b, "Package %q was rejected by user. Rewrite without using this package.\n", pkg)
		if fix, ok := fixes[pkg]; ok {
			fmt.Fprintf(&b, "- %q: %s\n", pkg, fix)
		}
	}
	b.WriteString("Rewrite the code without these packages, applying the suggested fixes.")
	return b.String()
}

// AmbiguousManager renders feedback for the case where the package
// manager could not be determined, per spec.md's "rewrite without
// these packages" directive.
func AmbiguousManager(packages []string) string {
	if len(packages) == 0 {
		return ""
	}
	sorted := sortedCopy(packages)

	var b strings.Builder
	b.WriteString("The project's package manager is ambiguous, so no packages can be installed.\n")
	b.WriteString("Rewrite the code without the following imports:\n")
	for _, pkg := range sorted {
		fmt.Fprintf(&b, "- %q\n", pkg)
	}
	return b.String()
}

// Substitution renders feedback for a package the user chose to
// replace with a curated built-in alternative instead of installing.
func Substitution(pkg string, sub importscan.Substitute) string {
	return fmt.Sprintf(
		"Do not install %q. Use %s instead: %s\nExample: %s",
		pkg, sub.Module, sub.Description, sub.Example,
	)
}

// RegistryInvalid renders feedback for a package that failed to
// validate against the registry — either it does not exist (404) or
// its existence could not be confirmed (non-404 error). Either way it
// is never approvable. reasons maps a package to the registry error
// text; a package absent from reasons is reported as a plain 404.
func RegistryInvalid(packages []string, reasons map[string]string) string {
	if len(packages) == 0 {
		return ""
	}
	sorted := sortedCopy(packages)

	var b strings.Builder
	for i, pkg := range sorted {
		reason, ok := reasons[pkg]
		if !ok {
			reason = fmt.Sprintf("package %q does not exist on the registry", pkg)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s.", reason)
	}
	b.WriteString(" Remove these imports or replace them with packages that exist.")
	return b.String()
}

// InstallFailure renders feedback after an installer error, one line
// per failed package plus a directive. Grounded on the install error
// kind (install_failed, execution_failed, invalid_argument).
func InstallFailure(packages []string, err *installer.InstallError) string {
	if len(packages) == 0 || err == nil {
		return ""
	}
	sorted := sortedCopy(packages)

	var b strings.Builder
	fmt.Fprintf(&b, "Installing the following packages failed: %s.\n", err.Error())
	for _, pkg := range sorted {
		fmt.Fprintf(&b, "- %q\n", pkg)
	}
	b.WriteString("Rewrite the code without these packages, or use an alternative already available in the project.")
	return b.String()
}

func sortedCopy(in []string) []string {
	out := append([]string{}, in...)
	sort.Strings(out)
	return out
}
