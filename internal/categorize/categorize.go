// Package categorize decides whether a package belongs in production or
// development dependencies, from its name and the paths that import it.
package categorize

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Category is the two-valued classification a package is sorted into.
type Category int

const (
	Production Category = iota
	Development
)

func (c Category) String() string {
	if c == Development {
		return "development"
	}
	return "production"
}

// knownDev is the curated set of packages that are development
// dependencies regardless of who imports them: test runners, linters,
// bundlers, and type-only tooling.
var knownDev = map[string]bool{
	"jest": true, "vitest": true, "mocha": true, "chai": true, "sinon": true,
	"eslint": true, "prettier": true, "tslint": true,
	"webpack": true, "rollup": true, "esbuild": true, "vite": true, "parcel": true,
	"typescript": true, "ts-node": true, "tsx": true, "nodemon": true,
	"husky": true, "lint-staged": true, "supertest": true, "nock": true,
	"babel-jest": true, "ts-jest": true, "jsdom": true,
}

// testPathREs is the fixed family of glob-shaped patterns identifying a
// test path: suffix conventions (*.test.ext, *.spec.ext) and directory
// conventions (test/, tests/, spec/, specs/, __tests__/).
var testPathREs = []*regexp.Regexp{
	regexp.MustCompile(`\.(test|spec)\.[jt]sx?$`),
	regexp.MustCompile(`(^|/)(test|tests|spec|specs|__tests__)(/|$)`),
}

// IsTestPath reports whether path matches any of the fixed test-path
// conventions.
func IsTestPath(path string) bool {
	normalized := filepath.ToSlash(path)
	for _, re := range testPathREs {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// Categorize classifies one package by precedence:
//  1. an "@types/" prefix is always Development;
//  2. membership in the curated known-dev set is Development;
//  3. no importing paths at all is Production (a conservative default —
//     missing context should never hide a runtime dependency);
//  4. any non-test importing path is Production;
//  5. otherwise Development.
func Categorize(name string, importingPaths []string) Category {
	if strings.HasPrefix(name, "@types/") {
		return Development
	}
	if knownDev[name] {
		return Development
	}
	if len(importingPaths) == 0 {
		return Production
	}
	for _, path := range importingPaths {
		if !IsTestPath(path) {
			return Production
		}
	}
	return Development
}

// Entry is one package alongside the paths that imported it, the unit
// CategorizeAll partitions.
type Entry struct {
	Name           string
	ImportingPaths []string
}

// Partition is the result of a batch categorisation, preserving each
// list's first-seen order from the input.
type Partition struct {
	Production  []string
	Development []string
}

// CategorizeAll partitions entries into production and development
// lists.
func CategorizeAll(entries []Entry) Partition {
	var p Partition
	for _, e := range entries {
		switch Categorize(e.Name, e.ImportingPaths) {
		case Production:
			p.Production = append(p.Production, e.Name)
		default:
			p.Development = append(p.Development, e.Name)
		}
	}
	return p
}
