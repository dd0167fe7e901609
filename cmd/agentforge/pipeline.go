package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/agentforge/agentforge/internal/adapters/logging"
	"github.com/agentforge/agentforge/internal/backup"
	"github.com/agentforge/agentforge/internal/config"
	"github.com/agentforge/agentforge/internal/consent"
	"github.com/agentforge/agentforge/internal/installer"
	"github.com/agentforge/agentforge/internal/orchestrator"
	"github.com/agentforge/agentforge/internal/pm"
	"github.com/agentforge/agentforge/internal/ports"
	"github.com/agentforge/agentforge/internal/registry"
)

// newOrchestrator wires one Orchestrator from the real adapters, ready
// for a single CLI invocation.
func newOrchestrator(cfg config.PipelineConfig) *orchestrator.Orchestrator {
	fs := ports.NewRealFileSystem()
	logger := newLogger()

	detector := pm.NewDetector(fs)
	reg := registry.NewClient().WithBaseURL(cfg.RegistryURL)
	store := consent.Load(fs, cfg.ProjectRoot)

	var prompter consent.Prompter = consent.NewInteractivePrompter()
	if cfg.NonInteractive {
		prompter = consent.AutoRejectPrompter{}
	}
	consentMgr := consent.NewManager(store, prompter, cfg.AutoApprove)

	runner := ports.NewRealCommandRunner()
	inst := installer.NewInstaller(runner)
	bk := backup.New(fs)

	return orchestrator.New(detector, reg, consentMgr, inst, bk, logger)
}

func newLogger() ports.Logger {
	var level ports.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = ports.LevelDebug
	case "warn":
		level = ports.LevelWarn
	case "error":
		level = ports.LevelError
	default:
		level = ports.LevelInfo
	}

	return logging.NewConsoleLogger(
		logging.WithOutput(os.Stderr),
		logging.WithLevel(level),
		logging.WithJSONFormat(logJSON),
	)
}

// loadConfig loads the pipeline config for the current working
// directory, layering the --auto-approve flag on top.
func loadConfig() (config.PipelineConfig, error) {
	fs := ports.NewRealFileSystem()
	wd, err := os.Getwd()
	if err != nil {
		return config.PipelineConfig{}, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.Load(fs, wd)
	if err != nil {
		return config.PipelineConfig{}, err
	}
	if autoApprove {
		cfg.AutoApprove = true
		cfg.NonInteractive = true
	}
	return cfg, nil
}
