package importscan

// Substitute describes a built-in replacement for a well-known
// third-party package: a runtime module that does the same job without
// adding a dependency.
type Substitute struct {
	Description       string
	Module            string
	Example           string
	MinRuntimeVersion string
}

// substitutes is the closed, curated table of third-party packages that
// have a built-in runtime equivalent. It is consulted when a missing
// import has a substitute available, so the feedback loop can offer
// "use the runtime instead" as an alternative to installing.
var substitutes = map[string]Substitute{
	"uuid": {
		Description:       "UUID v4 generation",
		Module:            "node:crypto",
		Example:           `import { randomUUID } from "node:crypto"; const id = randomUUID()`,
		MinRuntimeVersion: "14.17.0",
	},
	"node-fetch": {
		Description:       "HTTP client",
		Module:            "global fetch",
		Example:           `const res = await fetch("https://example.com")`,
		MinRuntimeVersion: "18.0.0",
	},
	"isomorphic-fetch": {
		Description:       "HTTP client",
		Module:            "global fetch",
		Example:           `const res = await fetch("https://example.com")`,
		MinRuntimeVersion: "18.0.0",
	},
	"chalk": {
		Description:       "Terminal colours",
		Module:            "node:util",
		Example:           `import { styleText } from "node:util"; console.log(styleText("red", "error"))`,
		MinRuntimeVersion: "20.12.0",
	},
	"colors": {
		Description:       "Terminal colours",
		Module:            "node:util",
		Example:           `import { styleText } from "node:util"; console.log(styleText("green", "ok"))`,
		MinRuntimeVersion: "20.12.0",
	},
	"lodash.isequal": {
		Description:       "Deep equality check",
		Module:            "node:util",
		Example:           `import { isDeepStrictEqual } from "node:util"; isDeepStrictEqual(a, b)`,
		MinRuntimeVersion: "6.0.0",
	},
	"deep-equal": {
		Description:       "Deep equality check",
		Module:            "node:util",
		Example:           `import { isDeepStrictEqual } from "node:util"; isDeepStrictEqual(a, b)`,
		MinRuntimeVersion: "6.0.0",
	},
	"rimraf": {
		Description:       "Recursive directory removal",
		Module:            "node:fs/promises",
		Example:           `import { rm } from "node:fs/promises"; await rm(path, { recursive: true, force: true })`,
		MinRuntimeVersion: "14.14.0",
	},
	"mkdirp": {
		Description:       "Recursive directory creation",
		Module:            "node:fs/promises",
		Example:           `import { mkdir } from "node:fs/promises"; await mkdir(path, { recursive: true })`,
		MinRuntimeVersion: "10.12.0",
	},
	"glob": {
		Description:       "Filesystem globbing",
		Module:            "node:fs/promises",
		Example:           `import { glob } from "node:fs/promises"; for await (const p of glob("**/*.ts")) {}`,
		MinRuntimeVersion: "22.0.0",
	},
	"dotenv": {
		Description:       "Environment variable loading from .env",
		Module:            "node:process",
		Example:           `node --env-file=.env script.js`,
		MinRuntimeVersion: "20.6.0",
	},
	"cross-fetch": {
		Description:       "HTTP client",
		Module:            "global fetch",
		Example:           `const res = await fetch("https://example.com")`,
		MinRuntimeVersion: "18.0.0",
	},
	"ms": {
		Description:       "Human-readable duration parsing",
		Module:            "none (hand-roll a small parser)",
		Example:           `const ONE_MINUTE_MS = 60_000`,
		MinRuntimeVersion: "0.0.0",
	},
	"querystring-es3": {
		Description:       "Query string parsing",
		Module:            "node:querystring",
		Example:           `import qs from "node:querystring"; qs.parse("a=1&b=2")`,
		MinRuntimeVersion: "0.1.90",
	},
	"url-parse": {
		Description:       "URL parsing",
		Module:            "global URL",
		Example:           `const u = new URL("https://example.com/path?x=1")`,
		MinRuntimeVersion: "10.0.0",
	},
	"form-data": {
		Description:       "multipart/form-data construction",
		Module:            "global FormData",
		Example:           `const fd = new FormData(); fd.append("file", blob, "name.txt")`,
		MinRuntimeVersion: "18.0.0",
	},
	"abort-controller": {
		Description:       "Cancellation signal",
		Module:            "global AbortController",
		Example:           `const ac = new AbortController(); fetch(url, { signal: ac.signal })`,
		MinRuntimeVersion: "15.0.0",
	},
	"object-assign": {
		Description:       "Shallow object merging",
		Module:            "global Object.assign",
		Example:           `Object.assign({}, a, b)`,
		MinRuntimeVersion: "4.0.0",
	},
	"array-flatten": {
		Description:       "Array flattening",
		Module:            "global Array.prototype.flat",
		Example:           `[[1, 2], [3]].flat()`,
		MinRuntimeVersion: "11.0.0",
	},
}

// LookupSubstitute returns the curated substitute for a bare package
// name, if one exists. Scoped packages never have a substitute.
func LookupSubstitute(s Specifier) (Substitute, bool) {
	if s.IsScoped() {
		return Substitute{}, false
	}
	sub, ok := substitutes[s.Name]
	return sub, ok
}
