// Package consent tracks scoped user approval for installing a
// package: project-persisted, session-cached, or interactive
// per-package prompts with alternative selection.
package consent

import (
	"context"
	"fmt"

	"github.com/agentforge/agentforge/internal/importscan"
)

// Scope is the lifetime of one approval decision, in precedence order
// high to low: Project survives process exit, Session lives for the
// process, Once applies to a single prompt only.
type Scope int

const (
	Once Scope = iota
	Session
	Project
)

func (s Scope) String() string {
	switch s {
	case Session:
		return "session"
	case Project:
		return "project"
	default:
		return "once"
	}
}

// Decision records one resolved approval, persisted when Scope is
// Project.
type Decision struct {
	Package        string `json:"package"`
	Scope          string `json:"scope"`
	Approved       bool   `json:"approved"`
	UseAlternative string `json:"useAlternative,omitempty"`
}

// Request is what the prompter shows for one package: the curated
// alternative, if any, and the files that import it.
type Request struct {
	Package     string
	Alternative *importscan.Substitute
	FileContext []string
	// InstallArgv is the install command the prompt shows when it is
	// non-empty. The orchestrator passes no install commands, so its
	// prompts do not show one.
	InstallArgv []string
}

// Choice is what the prompter returns for one package.
type Choice int

const (
	ChoiceApproveOnce Choice = iota
	ChoiceApproveSession
	ChoiceApproveProject
	ChoiceReject
	ChoiceUseAlternative
)

// Response is the prompter's answer for one package. Alternative is set
// only when Choice is ChoiceUseAlternative, carrying the substitute
// module identifier the user picked.
type Response struct {
	Choice      Choice
	Alternative string
}

// Prompter displays one Request interactively and returns the user's
// Response. The bubbletea-backed implementation lives in prompt.go.
type Prompter interface {
	Prompt(ctx context.Context, req Request) (Response, error)
}

// BatchResult partitions the packages handed to ApproveBatch.
// Approved, the keys of Alternatives, and Rejected always form a
// partition of the input set.
type BatchResult struct {
	Approved     []string
	Alternatives map[string]string // package -> substitute module identifier
	Rejected     []string
}

// BatchInput is everything ApproveBatch needs beyond the package list.
type BatchInput struct {
	Alternatives map[string]importscan.Substitute
	FileContext  map[string][]string
	InstallArgv  map[string][]string
}

// Manager resolves consent for a batch of packages against project and
// session scope before falling back to the interactive Prompter.
type Manager struct {
	store       *Store
	prompter    Prompter
	session     map[string]bool
	autoApprove bool
}

// NewManager creates a Manager backed by store for project-scope
// persistence and prompter for interactive prompts.
func NewManager(store *Store, prompter Prompter, autoApprove bool) *Manager {
	return &Manager{
		store:       store,
		prompter:    prompter,
		session:     make(map[string]bool),
		autoApprove: autoApprove,
	}
}

// ApproveBatch resolves every package in names against project scope,
// then session scope, then an interactive prompt. If the manager was
// constructed with autoApprove set, every package is approved outright
// and the prompter is never invoked — the bypass used by --auto-approve
// runs. A CI run without auto-approve still reaches the prompter, which
// the CLI sets to AutoRejectPrompter in that case.
func (m *Manager) ApproveBatch(ctx context.Context, names []string, input BatchInput) (BatchResult, error) {
	result := BatchResult{Alternatives: make(map[string]string)}

	if m.autoApprove {
		result.Approved = append(result.Approved, names...)
		return result, nil
	}

	for _, name := range names {
		if m.store.IsApproved(name) {
			result.Approved = append(result.Approved, name)
			continue
		}
		if m.session[name] {
			result.Approved = append(result.Approved, name)
			continue
		}

		req := Request{
			Package:     name,
			FileContext: input.FileContext[name],
			InstallArgv: input.InstallArgv[name],
		}
		if sub, ok := input.Alternatives[name]; ok {
			req.Alternative = &sub
		}

		resp, err := m.prompter.Prompt(ctx, req)
		if err != nil {
			return BatchResult{}, fmt.Errorf("consent: prompting for %q: %w", name, err)
		}

		m.record(&result, name, resp)
	}

	return result, nil
}

func (m *Manager) record(result *BatchResult, name string, resp Response) {
	switch resp.Choice {
	case ChoiceApproveOnce:
		result.Approved = append(result.Approved, name)
		m.persist(name, Once, true, "")
	case ChoiceApproveSession:
		m.session[name] = true
		result.Approved = append(result.Approved, name)
		m.persist(name, Session, true, "")
	case ChoiceApproveProject:
		result.Approved = append(result.Approved, name)
		m.persist(name, Project, true, "")
		_ = m.store.ApproveProject(name)
	case ChoiceUseAlternative:
		result.Alternatives[name] = resp.Alternative
		m.persist(name, Once, true, resp.Alternative)
	default:
		result.Rejected = append(result.Rejected, name)
		m.persist(name, Once, false, "")
	}
}

func (m *Manager) persist(name string, scope Scope, approved bool, alternative string) {
	m.store.Record(Decision{
		Package:        name,
		Scope:          scope.String(),
		Approved:       approved,
		UseAlternative: alternative,
	})
}
