// Package backup snapshots the project manifest and lock file before an
// install runs, and restores or discards the snapshot once the outcome
// is known.
package backup

import (
	"fmt"
	"path/filepath"

	"github.com/agentforge/agentforge/internal/pm"
	"github.com/agentforge/agentforge/internal/ports"
)

// Component is one file's live path and its backup sibling. Backup
// paths always live in the same directory as the original, since
// atomic rename requires both paths to share a filesystem.
type Component struct {
	Path       string
	BackupPath string
}

// State describes a live backup. It is alive exactly while an
// installation is in flight; Restore or Cleanup is called exactly once
// per State.
type State struct {
	Manifest Component
	LockFile *Component // nil when the manager has no lock file yet
}

// Backup creates, restores, and cleans up State using the injected
// FileSystem port.
type Backup struct {
	fs ports.FileSystem

	// nowSuffix produces the monotonically-unique timestamp suffix
	// appended to each backup path. Injected so tests can make it
	// deterministic without touching the wall clock.
	nowSuffix func() string
}

// New creates a Backup over the given file system, using a real
// timestamp-based suffix generator.
func New(fs ports.FileSystem) *Backup {
	return &Backup{fs: fs, nowSuffix: defaultSuffix}
}

// WithSuffixFunc overrides the suffix generator; used by tests.
func (b *Backup) WithSuffixFunc(fn func() string) *Backup {
	b.nowSuffix = fn
	return b
}

// Create synchronously copies the manifest and, if present, the
// manager's lock file to sibling paths suffixed with a unique
// timestamp. The copy is synchronous so the backup is durable on disk
// before the installer is spawned.
func (b *Backup) Create(projectRoot string, manager pm.Manager) (State, error) {
	suffix := b.nowSuffix()

	manifestPath := filepath.Join(projectRoot, "package.json")
	manifestComponent, err := b.snapshot(manifestPath, suffix)
	if err != nil {
		return State{}, fmt.Errorf("backup: snapshotting manifest: %w", err)
	}

	state := State{Manifest: manifestComponent}

	lockPath := filepath.Join(projectRoot, manager.LockFileName())
	if b.fs.Exists(lockPath) {
		lockComponent, err := b.snapshot(lockPath, suffix)
		if err != nil {
			return State{}, fmt.Errorf("backup: snapshotting lock file: %w", err)
		}
		state.LockFile = &lockComponent
	}

	return state, nil
}

func (b *Backup) snapshot(path, suffix string) (Component, error) {
	backupPath := path + ".bak." + suffix
	if err := b.fs.CopyFile(path, backupPath); err != nil {
		return Component{}, err
	}
	return Component{Path: path, BackupPath: backupPath}, nil
}

// Restore renames each present backup over its live path. The rename is
// atomic on POSIX because both paths share a directory. Restore is
// idempotent: a missing backup is silently skipped, so it is safe to
// call even after a partial crash.
func (b *Backup) Restore(state State) error {
	if err := b.restoreComponent(state.Manifest); err != nil {
		return fmt.Errorf("backup: restoring manifest: %w", err)
	}
	if state.LockFile != nil {
		if err := b.restoreComponent(*state.LockFile); err != nil {
			return fmt.Errorf("backup: restoring lock file: %w", err)
		}
	}
	return nil
}

func (b *Backup) restoreComponent(c Component) error {
	if !b.fs.Exists(c.BackupPath) {
		return nil
	}
	return b.fs.Rename(c.BackupPath, c.Path)
}

// Cleanup unlinks the backups after a successful install. It is
// idempotent: a backup that no longer exists is skipped. A failure to
// remove a backup is ignored; Cleanup neither returns nor logs it.
func (b *Backup) Cleanup(state State) {
	b.cleanupComponent(state.Manifest)
	if state.LockFile != nil {
		b.cleanupComponent(*state.LockFile)
	}
}

func (b *Backup) cleanupComponent(c Component) {
	if !b.fs.Exists(c.BackupPath) {
		return
	}
	_ = b.fs.Remove(c.BackupPath)
}
