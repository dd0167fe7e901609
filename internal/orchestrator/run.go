package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/agentforge/agentforge/internal/backup"
	"github.com/agentforge/agentforge/internal/categorize"
	"github.com/agentforge/agentforge/internal/consent"
	"github.com/agentforge/agentforge/internal/feedback"
	"github.com/agentforge/agentforge/internal/importscan"
	"github.com/agentforge/agentforge/internal/installer"
	"github.com/agentforge/agentforge/internal/pm"
	"github.com/agentforge/agentforge/internal/ports"
	"github.com/agentforge/agentforge/internal/registry"
)

// ErrPlanAmbiguousManager is returned by Plan when the package manager
// cannot be determined; Plan never re-drives the coder to resolve it.
var ErrPlanAmbiguousManager = errors.New("orchestrator: ambiguous package manager")

// Orchestrator binds the Package-Manager Detector, Registry Client,
// Import Validator, Dependency Categoriser, Consent Manager, Package
// Installer, and Installation Backup around an external coder.
type Orchestrator struct {
	detector  *pm.Detector
	registry  *registry.Client
	consent   *consent.Manager
	installer *installer.Installer
	backup    *backup.Backup
	logger    ports.Logger
}

// New creates an Orchestrator from its collaborators.
func New(detector *pm.Detector, reg *registry.Client, consentMgr *consent.Manager, inst *installer.Installer, bk *backup.Backup, logger ports.Logger) *Orchestrator {
	return &Orchestrator{
		detector:  detector,
		registry:  reg,
		consent:   consentMgr,
		installer: inst,
		backup:    bk,
		logger:    logger,
	}
}

// Run executes one task's install-and-repair loop: generate code,
// validate imports, detect the package manager, check the registry,
// obtain consent, install, and revalidate — re-driving coder on
// rejection, substitution, or install failure until imports resolve or
// maxImportRetries is exhausted.
func (o *Orchestrator) Run(ctx context.Context, cfg Config, request string, coder Coder) RunResult {
	runID := uuid.NewString()
	n := newNarrator(o.logger, runID)
	n.transition(eventBegin)

	installedProd := make(map[string]bool)
	installedDev := make(map[string]bool)
	allow := cloneAllow(cfg.InitialAllow)

	files, err := coder(ctx, CoderInput{Request: request})
	if err != nil {
		n.transition(eventFail)
		return RunResult{RunID: runID, Err: fmt.Errorf("orchestrator: initial generation: %w", err)}
	}
	n.transition(eventAdvance)

	for attempt := 0; attempt < cfg.MaxImportRetries; attempt++ {
		missing, fileMap, subs, fixes := o.validateAll(files.Files, cfg.SourceExtensions, allow)
		if len(missing) == 0 {
			n.transition(eventFinish)
			return RunResult{
				RunID:         runID,
				Success:       true,
				Files:         files.Files,
				InstalledProd: keys(installedProd),
				InstalledDev:  keys(installedDev),
				Attempts:      attempt,
			}
		}

		n.transition(eventAdvance) // -> detecting_pm
		outcome, detectErr := o.detector.Detect(cfg.ProjectRoot)
		if detectErr != nil {
			o.logger.Warn(ctx, "package manager detection ambiguous", ports.F("run_id", runID), ports.F("error", detectErr.Error()))
		}
		manager, detected := outcome.Detected()
		if !detected {
			fb := feedback.AmbiguousManager(specNames(missing))
			var genErr error
			files, genErr = coder(ctx, CoderInput{Request: request, Feedback: fb})
			if genErr != nil {
				n.transition(eventFail)
				return RunResult{RunID: runID, Err: fmt.Errorf("orchestrator: re-generation after ambiguous manager: %w", genErr), Attempts: attempt}
			}
			continue
		}

		n.transition(eventAdvance) // -> checking_registry
		names := specNames(missing)
		existence := o.registry.ExistsBatch(ctx, names)

		var regValid, regInvalid []string
		invalidReasons := make(map[string]string)
		for _, name := range names {
			r := existence[name]
			if r.Err == nil && r.Exists {
				regValid = append(regValid, name)
				continue
			}
			regInvalid = append(regInvalid, name)
			if r.Err != nil {
				invalidReasons[name] = r.Err.Error()
			}
		}

		n.transition(eventAdvance) // -> awaiting_consent
		approval, err := o.resolveConsent(ctx, cfg, regValid, subs, fileMap, manager)
		if err != nil {
			n.transition(eventFail)
			return RunResult{RunID: runID, Err: fmt.Errorf("orchestrator: consent: %w", err), Attempts: attempt}
		}

		var feedbackSections []string
		if msg := feedback.RegistryInvalid(regInvalid, invalidReasons); msg != "" {
			feedbackSections = append(feedbackSections, msg)
		}
		if msg := feedback.Rejection(approval.Rejected, fixesFor(approval.Rejected, fixes)); msg != "" {
			feedbackSections = append(feedbackSections, msg)
		}
		for pkg, module := range approval.Alternatives {
			if sub, ok := subs[importscan.Bare(pkg)]; ok {
				feedbackSections = append(feedbackSections, feedback.Substitution(pkg, sub))
			} else {
				feedbackSections = append(feedbackSections, fmt.Sprintf("Do not install %q. Use %s instead.", pkg, module))
			}
		}

		if len(approval.Approved) > 0 {
			n.transition(eventAdvance) // -> installing
			installFeedback := o.installApproved(ctx, cfg, manager, approval.Approved, fileMap, installedProd, installedDev)
			feedbackSections = append(feedbackSections, installFeedback...)
		}

		for name := range installedProd {
			allow.Add(name)
		}
		for name := range installedDev {
			allow.Add(name)
		}

		if len(feedbackSections) == 0 {
			// Everything missing was approved and installed cleanly;
			// the next loop iteration (or, after the last attempt, the
			// check after the loop) revalidates.
			continue
		}

		fb := strings.Join(feedbackSections, "\n\n")
		var genErr error
		files, genErr = coder(ctx, CoderInput{Request: request, Feedback: fb})
		if genErr != nil {
			n.transition(eventFail)
			return RunResult{RunID: runID, Err: fmt.Errorf("orchestrator: re-generation: %w", genErr), Attempts: attempt}
		}
	}

	// The last attempt's install or re-generation has not been validated
	// yet; check it once before reporting failure.
	if missing, _, _, _ := o.validateAll(files.Files, cfg.SourceExtensions, allow); len(missing) == 0 {
		n.transition(eventFinish)
		return RunResult{
			RunID:         runID,
			Success:       true,
			Files:         files.Files,
			InstalledProd: keys(installedProd),
			InstalledDev:  keys(installedDev),
			Attempts:      cfg.MaxImportRetries,
		}
	}

	n.transition(eventFinish)
	return RunResult{
		RunID:         runID,
		Success:       false,
		Files:         files.Files,
		InstalledProd: keys(installedProd),
		InstalledDev:  keys(installedDev),
		Attempts:      cfg.MaxImportRetries,
		Err:           fmt.Errorf("orchestrator: exhausted %d attempts with missing imports remaining", cfg.MaxImportRetries),
	}
}

// Plan runs a single generate-validate-consent pass and reports what
// would be installed, without ever invoking the installer. It never
// re-drives the coder: a rejection or substitution is reported as-is.
func (o *Orchestrator) Plan(ctx context.Context, cfg Config, request string, coder Coder) PlanResult {
	runID := uuid.NewString()

	files, err := coder(ctx, CoderInput{Request: request})
	if err != nil {
		return PlanResult{RunID: runID, Err: fmt.Errorf("orchestrator: plan generation: %w", err)}
	}

	missing, fileMap, subs, _ := o.validateAll(files.Files, cfg.SourceExtensions, cloneAllow(cfg.InitialAllow))
	if len(missing) == 0 {
		return PlanResult{RunID: runID, MissingResolved: true}
	}

	outcome, detectErr := o.detector.Detect(cfg.ProjectRoot)
	if detectErr != nil {
		return PlanResult{RunID: runID, Err: fmt.Errorf("orchestrator: plan: %w", detectErr)}
	}
	manager, detected := outcome.Detected()
	if !detected {
		return PlanResult{RunID: runID, Err: ErrPlanAmbiguousManager}
	}

	names := specNames(missing)
	existence := o.registry.ExistsBatch(ctx, names)

	var regValid []string
	for _, name := range names {
		if r := existence[name]; r.Err == nil && r.Exists {
			regValid = append(regValid, name)
		}
	}

	approval, err := o.resolveConsent(ctx, Config{AutoApprove: false}, regValid, subs, fileMap, manager)
	if err != nil {
		return PlanResult{RunID: runID, Err: fmt.Errorf("orchestrator: plan consent: %w", err)}
	}

	entries := make([]categorize.Entry, 0, len(approval.Approved))
	for _, name := range approval.Approved {
		entries = append(entries, categorize.Entry{Name: name, ImportingPaths: fileMap[name]})
	}
	partition := categorize.CategorizeAll(entries)

	return PlanResult{
		RunID:            runID,
		WouldInstallProd: partition.Production,
		WouldInstallDev:  partition.Development,
		Rejected:         approval.Rejected,
	}
}

func (o *Orchestrator) validateAll(files []GeneratedFile, extensions []string, allow importscan.AllowSet) ([]importscan.Specifier, map[string][]string, map[importscan.Specifier]importscan.Substitute, map[string]string) {
	var missing []importscan.Specifier
	seen := make(map[importscan.Specifier]bool)
	fileMap := make(map[string][]string)
	subs := make(map[importscan.Specifier]importscan.Substitute)
	fixes := make(map[string]string)

	for _, f := range files {
		if !hasSourceExtension(f.Path, extensions) {
			continue
		}
		report := importscan.Validate(f.Content, allow)
		for i, spec := range report.Missing {
			fileMap[spec.String()] = append(fileMap[spec.String()], f.Path)
			if !seen[spec] {
				seen[spec] = true
				missing = append(missing, spec)
			}
			if i < len(report.Fixes) {
				fixes[spec.String()] = report.Fixes[i]
			}
		}
		for spec, sub := range report.Substitutes {
			subs[spec] = sub
		}
	}

	return missing, fileMap, subs, fixes
}

func (o *Orchestrator) resolveConsent(ctx context.Context, cfg Config, regValid []string, subs map[importscan.Specifier]importscan.Substitute, fileMap map[string][]string, manager pm.Manager) (consent.BatchResult, error) {
	if cfg.AutoApprove {
		return consent.BatchResult{Approved: regValid, Alternatives: map[string]string{}}, nil
	}

	altByName := make(map[string]importscan.Substitute, len(subs))
	for spec, sub := range subs {
		altByName[spec.String()] = sub
	}

	return o.consent.ApproveBatch(ctx, regValid, consent.BatchInput{
		Alternatives: altByName,
		FileContext:  fileMap,
		InstallArgv:  map[string][]string{},
	})
}

// installApproved categorises the approved set, runs up to two
// independent transactional installs (production, then development),
// and returns any feedback sections the install attempts produced.
func (o *Orchestrator) installApproved(ctx context.Context, cfg Config, manager pm.Manager, approved []string, fileMap map[string][]string, installedProd, installedDev map[string]bool) []string {
	entries := make([]categorize.Entry, 0, len(approved))
	for _, name := range approved {
		entries = append(entries, categorize.Entry{Name: name, ImportingPaths: fileMap[name]})
	}
	partition := categorize.CategorizeAll(entries)

	var sections []string

	if len(partition.Production) > 0 {
		if msg := o.installOne(ctx, cfg, manager, partition.Production, categorize.Production, installedProd); msg != "" {
			sections = append(sections, msg)
		}
	}
	if len(partition.Development) > 0 {
		if msg := o.installOne(ctx, cfg, manager, partition.Development, categorize.Development, installedDev); msg != "" {
			sections = append(sections, msg)
		}
	}

	return sections
}

func (o *Orchestrator) installOne(ctx context.Context, cfg Config, manager pm.Manager, packages []string, category categorize.Category, accumulator map[string]bool) string {
	state, err := o.backup.Create(cfg.ProjectRoot, manager)
	if err != nil {
		o.logger.Error(ctx, "backup creation failed, aborting install attempt", ports.F("error", err.Error()))
		return feedback.InstallFailure(packages, &installer.InstallError{Kind: installer.ExecutionFailed, Reason: err.Error()})
	}

	res := o.installer.Install(ctx, installer.Request{
		Manager:     manager,
		Packages:    packages,
		ProjectRoot: cfg.ProjectRoot,
		Category:    category,
	})

	if res.IsOk() {
		o.backup.Cleanup(state)
		for _, name := range packages {
			accumulator[name] = true
		}
		return ""
	}

	if restoreErr := o.backup.Restore(state); restoreErr != nil {
		o.logger.Error(ctx, "backup restore failed after install error", ports.F("error", restoreErr.Error()))
	}

	installErr, _ := res.Error()
	return feedback.InstallFailure(packages, installErr)
}

func hasSourceExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func specNames(specs []importscan.Specifier) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.String()
	}
	return names
}

func fixesFor(names []string, fixes map[string]string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if fix, ok := fixes[name]; ok {
			out[name] = fix
			continue
		}
		out[name] = "remove the import or implement its functionality manually"
	}
	return out
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func cloneAllow(allow importscan.AllowSet) importscan.AllowSet {
	clone := make(importscan.AllowSet, len(allow))
	for k := range allow {
		clone[k] = true
	}
	return clone
}
