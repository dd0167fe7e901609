package importscan

import (
	"fmt"
	"regexp"
)

// staticImportRE matches `import ... from "x"` / `import ... from 'x'`,
// capturing the quoted specifier regardless of what precedes `from`.
var staticImportRE = regexp.MustCompile(`(?m)\bimport\b[^;\n]*?\bfrom\s+["']([^"']+)["']`)

// dynamicImportRE matches `import("x")`.
var dynamicImportRE = regexp.MustCompile(`\bimport\s*\(\s*["']([^"']+)["']\s*\)`)

// requireRE matches `require("x")`.
var requireRE = regexp.MustCompile(`\brequire\s*\(\s*["']([^"']+)["']\s*\)`)

// blockCommentRE and lineCommentRE strip comments before extraction, so
// an import mentioned only in prose never counts as a real reference.
var blockCommentRE = regexp.MustCompile(`(?s)/\*.*?\*/`)
var lineCommentRE = regexp.MustCompile(`(?m)//[^\n]*$`)

// ValidationReport is produced per generated source file; it is
// discarded at the end of the iteration that produced it.
type ValidationReport struct {
	Valid       bool
	Missing     []Specifier
	Fixes       []string
	Substitutes map[Specifier]Substitute
}

// AllowSet is the set of package names already permitted: already
// installed in the manifest, or installed earlier in the same run.
type AllowSet map[string]bool

// NewAllowSet builds an AllowSet from a slice of package names.
func NewAllowSet(names ...string) AllowSet {
	set := make(AllowSet, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Add merges a name into the set, returning the same set for chaining.
func (a AllowSet) Add(name string) AllowSet {
	a[name] = true
	return a
}

// allowKey is how a Specifier is looked up in an AllowSet: scoped
// packages are keyed by their full "@scope/name" form.
func allowKey(s Specifier) string {
	return s.String()
}

// Validate extracts every import specifier from body, canonicalises
// each to a package name, and compares the result against allow. It
// performs no I/O and is idempotent over the same input.
func Validate(body string, allow AllowSet) ValidationReport {
	stripped := stripComments(body)

	seen := make(map[Specifier]bool)
	var missing []Specifier
	var fixes []string
	subs := make(map[Specifier]Substitute)

	for _, raw := range extractRaw(stripped) {
		spec, ok := canonicalize(raw)
		if !ok {
			continue
		}
		if seen[spec] {
			continue
		}
		seen[spec] = true

		if allow[allowKey(spec)] {
			continue
		}

		missing = append(missing, spec)
		if sub, ok := LookupSubstitute(spec); ok {
			subs[spec] = sub
			fixes = append(fixes, fmt.Sprintf("replace %q with %s (%s): %s", spec.String(), sub.Module, sub.Description, sub.Example))
		} else {
			fixes = append(fixes, fmt.Sprintf("remove the import of %q or implement its functionality manually", spec.String()))
		}
	}

	return ValidationReport{
		Valid:       len(missing) == 0,
		Missing:     missing,
		Fixes:       fixes,
		Substitutes: subs,
	}
}

func stripComments(body string) string {
	body = blockCommentRE.ReplaceAllString(body, "")
	body = lineCommentRE.ReplaceAllString(body, "")
	return body
}

func extractRaw(body string) []string {
	var raw []string
	for _, re := range []*regexp.Regexp{staticImportRE, dynamicImportRE, requireRE} {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			raw = append(raw, m[1])
		}
	}
	return raw
}
