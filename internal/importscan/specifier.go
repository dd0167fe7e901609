// Package importscan extracts import specifiers from generated source
// files, filters relative and runtime-builtin references, and compares
// what remains against the project's allow-set, attaching curated
// built-in substitutes where one is known.
package importscan

import "strings"

// Specifier is a normalised module identifier extracted from source.
// It is either Scoped (an @scope/name package) or Bare (a plain name).
type Specifier struct {
	Scope string // empty for Bare
	Name  string
}

// String renders the specifier the way it would appear in source.
func (s Specifier) String() string {
	if s.Scope == "" {
		return s.Name
	}
	return s.Scope + "/" + s.Name
}

// Bare constructs an unscoped Specifier.
func Bare(name string) Specifier {
	return Specifier{Name: name}
}

// Scoped constructs a scoped Specifier.
func Scoped(scope, name string) Specifier {
	return Specifier{Scope: scope, Name: name}
}

// IsScoped reports whether the specifier carries an @scope prefix.
func (s Specifier) IsScoped() bool {
	return s.Scope != ""
}

// canonicalize reduces a raw specifier string (as captured from source)
// to its package-identifying Specifier, or reports ok=false when the
// raw string is relative, runtime-builtin-prefixed, or otherwise not a
// package reference at all.
func canonicalize(raw string) (Specifier, bool) {
	if raw == "" {
		return Specifier{}, false
	}
	if strings.HasPrefix(raw, ".") || strings.HasPrefix(raw, "/") {
		return Specifier{}, false
	}
	if strings.HasPrefix(raw, "node:") {
		return Specifier{}, false
	}

	if strings.HasPrefix(raw, "@") {
		segments := strings.SplitN(raw, "/", 3)
		if len(segments) < 2 || segments[1] == "" {
			return Specifier{}, false
		}
		return Scoped(segments[0], segments[1]), true
	}

	name, _, _ := strings.Cut(raw, "/")
	if name == "" {
		return Specifier{}, false
	}
	if isRuntimeBuiltin(name) {
		return Specifier{}, false
	}
	return Bare(name), true
}

// runtimeBuiltins is the curated list of bare-form built-in module
// names that are never installable packages, matching the names a
// require()/import of the runtime's own standard library would use.
var runtimeBuiltins = map[string]bool{
	"assert": true, "buffer": true, "child_process": true, "cluster": true,
	"crypto": true, "dgram": true, "dns": true, "events": true, "fs": true,
	"http": true, "https": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "querystring": true,
	"readline": true, "stream": true, "string_decoder": true, "timers": true,
	"tls": true, "tty": true, "url": true, "util": true, "v8": true,
	"vm": true, "worker_threads": true, "zlib": true,
}

func isRuntimeBuiltin(name string) bool {
	return runtimeBuiltins[name]
}
