package consent

import (
	"encoding/json"
	"path/filepath"

	"github.com/agentforge/agentforge/internal/ports"
)

// StoreVersion is the current on-disk schema version.
const StoreVersion = 1

// maxDecisions bounds the persisted decision log; oldest entries are
// evicted first once the cap is reached.
const maxDecisions = 100

// fileName is the project-root dotfile holding project-scope consent,
// following the same dotfile-at-root convention as the rest of the
// project's persisted state.
const fileName = ".agentforge-consent.json"

// schema is the on-disk shape of the consent store.
type schema struct {
	Version          int        `json:"version"`
	ApprovedPackages []string   `json:"approvedPackages"`
	Decisions        []Decision `json:"decisions"`
}

// Store persists project-scope consent to a single JSON file at the
// project root. Persistence is advisory: a corrupt file yields an
// empty store rather than failing the pipeline.
type Store struct {
	fs       ports.FileSystem
	path     string
	approved map[string]bool
	data     schema
}

// Load reads the consent store from projectRoot, tolerating a missing
// or corrupt file by starting from an empty store.
func Load(fs ports.FileSystem, projectRoot string) *Store {
	path := filepath.Join(projectRoot, fileName)
	s := &Store{fs: fs, path: path, approved: make(map[string]bool)}

	if !fs.Exists(path) {
		s.data = schema{Version: StoreVersion}
		return s
	}

	raw, err := fs.ReadFile(path)
	if err != nil {
		s.data = schema{Version: StoreVersion}
		return s
	}

	var data schema
	if err := json.Unmarshal(raw, &data); err != nil {
		s.data = schema{Version: StoreVersion}
		return s
	}

	s.data = data
	for _, pkg := range data.ApprovedPackages {
		s.approved[pkg] = true
	}
	return s
}

// IsApproved reports whether name already has project-scope approval.
func (s *Store) IsApproved(name string) bool {
	return s.approved[name]
}

// ApproveProject records project-scope approval for name and persists
// the store immediately — project-scope consent must survive process
// exit.
func (s *Store) ApproveProject(name string) error {
	if !s.approved[name] {
		s.approved[name] = true
		s.data.ApprovedPackages = append(s.data.ApprovedPackages, name)
	}
	return s.save()
}

// Record appends a project-scope decision to the log, evicting the
// oldest entry once the log exceeds maxDecisions, and persists the
// store. Once- and session-scope decisions are ignored: they are neither
// kept in memory nor written to disk.
func (s *Store) Record(d Decision) {
	if d.Scope != Project.String() {
		return
	}
	s.data.Decisions = append(s.data.Decisions, d)
	if len(s.data.Decisions) > maxDecisions {
		s.data.Decisions = s.data.Decisions[len(s.data.Decisions)-maxDecisions:]
	}
	_ = s.save()
}

func (s *Store) save() error {
	s.data.Version = StoreVersion
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return s.fs.WriteFile(s.path, raw, 0o644)
}
