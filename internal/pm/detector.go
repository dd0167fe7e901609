// Package pm detects which Node.js package manager a project uses, from
// lock-file presence, the manifest's packageManager field, or a default.
package pm

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentforge/agentforge/internal/ports"
)

// Manager is a tagged value identifying one of the three supported
// package managers. It determines lock-file naming and install argv
// shape used throughout the rest of the core.
type Manager string

const (
	NPM  Manager = "npm"
	PNPM Manager = "pnpm"
	Yarn Manager = "yarn"
)

// lockFiles maps each known lock file name to the manager it implies.
var lockFiles = map[string]Manager{
	"package-lock.json": NPM,
	"pnpm-lock.yaml":     PNPM,
	"yarn.lock":          Yarn,
}

// LockFileName returns the conventional lock-file name for a manager.
func (m Manager) LockFileName() string {
	switch m {
	case PNPM:
		return "pnpm-lock.yaml"
	case Yarn:
		return "yarn.lock"
	default:
		return "package-lock.json"
	}
}

var ErrAmbiguousManager = errors.New("pm: more than one package manager lock file present")

// Outcome is either Detected(Manager) or Ambiguous(set of Manager); only
// the former permits installation.
type Outcome struct {
	Manager    Manager
	Ambiguous  map[Manager]bool
	IsDetected bool
}

// Detected reports whether detection produced a single, usable manager.
func (o Outcome) Detected() (Manager, bool) {
	return o.Manager, o.IsDetected
}

type manifestPackageManagerField struct {
	PackageManager string `json:"packageManager"`
}

// Detector caches the outcome of one detection run, Ambiguous included:
// only the first Detect call probes the filesystem, and every later call
// returns the cached result (and error, if any), whatever projectRoot
// it is given.
type Detector struct {
	fs        ports.FileSystem
	done      bool
	cached    Outcome
	cachedErr error
}

// NewDetector creates a Detector over the given file system.
func NewDetector(fs ports.FileSystem) *Detector {
	return &Detector{fs: fs}
}

// Detect probes projectRoot for which package manager governs it. It is
// pure with respect to the file system: no writes are ever issued.
func (d *Detector) Detect(projectRoot string) (Outcome, error) {
	if d.done {
		return d.cached, d.cachedErr
	}

	outcome, err := d.detect(projectRoot)
	d.cached = outcome
	d.cachedErr = err
	d.done = true
	return outcome, err
}

func (d *Detector) detect(projectRoot string) (Outcome, error) {
	present := make(map[Manager]bool)
	for name, manager := range lockFiles {
		if d.fs.Exists(filepath.Join(projectRoot, name)) {
			present[manager] = true
		}
	}

	switch len(present) {
	case 1:
		for manager := range present {
			return Outcome{Manager: manager, IsDetected: true}, nil
		}
	case 0:
		// fall through to manifest probing below
	default:
		return Outcome{Ambiguous: present}, fmt.Errorf("%w: %s", ErrAmbiguousManager, managerNames(present))
	}

	if manager, ok := d.fromManifest(projectRoot); ok {
		return Outcome{Manager: manager, IsDetected: true}, nil
	}

	return Outcome{Manager: NPM, IsDetected: true}, nil
}

// fromManifest inspects package.json's packageManager field, shaped
// "name@version...", accepting only the three known manager names.
func (d *Detector) fromManifest(projectRoot string) (Manager, bool) {
	path := filepath.Join(projectRoot, "package.json")
	if !d.fs.Exists(path) {
		return "", false
	}

	data, err := d.fs.ReadFile(path)
	if err != nil {
		return "", false
	}

	var manifest manifestPackageManagerField
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", false
	}

	name, _, _ := strings.Cut(manifest.PackageManager, "@")
	switch Manager(name) {
	case NPM, PNPM, Yarn:
		return Manager(name), true
	default:
		return "", false
	}
}

func managerNames(present map[Manager]bool) string {
	names := make([]string, 0, len(present))
	for manager := range present {
		names = append(names, string(manager))
	}
	return strings.Join(names, ", ")
}
