// Package config loads the pipeline's PipelineConfig from an
// agentforge.toml file, layered with AGENTFORGE_LLM_* and CI
// environment variable overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/agentforge/agentforge/internal/ports"
)

// LLMConfig holds the coder agent's transport settings.
type LLMConfig struct {
	Endpoint  string `toml:"endpoint"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	MaxTokens int    `toml:"max_tokens"`
}

// PipelineConfig configures one orchestrator run.
type PipelineConfig struct {
	MaxImportRetries int           `toml:"max_import_retries"`
	AutoApprove      bool          `toml:"auto_approve"`
	RegistryURL      string        `toml:"registry_url"`
	RegistryTimeout  time.Duration `toml:"-"`
	ProjectRoot      string        `toml:"-"`
	// NonInteractive disables the bubbletea consent prompt in favor of
	// an auto-reject prompter, set by CI (any truthy value) or --auto-approve.
	NonInteractive bool      `toml:"-"`
	LLM            LLMConfig `toml:"llm"`
}

// fileConfig mirrors PipelineConfig's TOML-serializable fields.
type fileConfig struct {
	MaxImportRetries int       `toml:"max_import_retries"`
	AutoApprove      bool      `toml:"auto_approve"`
	RegistryURL      string    `toml:"registry_url"`
	RegistryTimeoutS int       `toml:"registry_timeout_seconds"`
	LLM              LLMConfig `toml:"llm"`
}

// Default returns the configuration used when no file and no
// environment overrides are present.
func Default() PipelineConfig {
	return PipelineConfig{
		MaxImportRetries: 3,
		AutoApprove:      false,
		RegistryURL:      "https://registry.npmjs.org",
		RegistryTimeout:  5 * time.Second,
		ProjectRoot:      ".",
	}
}

// Load reads agentforge.toml (if present) from projectRoot, then layers
// AGENTFORGE_LLM_* and CI environment variables on top. A missing file
// is not an error; the defaults carry through untouched. A malformed
// file produces a *UserError wrapping the parse failure.
func Load(fs ports.FileSystem, projectRoot string) (PipelineConfig, error) {
	cfg := Default()
	cfg.ProjectRoot = projectRoot

	path := projectRoot + "/agentforge.toml"
	if fs.Exists(path) {
		data, err := fs.ReadFile(path)
		if err != nil {
			return cfg, NewUserError(ErrCodeConfigNotFound, "could not read agentforge.toml").
				WithContext(path).
				WithUnderlying(err)
		}

		var fc fileConfig
		if err := toml.Unmarshal(data, &fc); err != nil {
			return cfg, NewUserError(ErrCodeConfigParse, "agentforge.toml is not valid TOML").
				WithContext(path).
				WithSuggestion("check for unescaped quotes or mismatched table headers").
				WithUnderlying(err)
		}

		if fc.MaxImportRetries > 0 {
			cfg.MaxImportRetries = fc.MaxImportRetries
		}
		cfg.AutoApprove = fc.AutoApprove
		if fc.RegistryURL != "" {
			cfg.RegistryURL = fc.RegistryURL
		}
		if fc.RegistryTimeoutS > 0 {
			cfg.RegistryTimeout = time.Duration(fc.RegistryTimeoutS) * time.Second
		}
		cfg.LLM = fc.LLM
	}

	applyEnv(&cfg, os.LookupEnv)
	return cfg, nil
}

// applyEnv layers environment overrides onto cfg. lookup is injected so
// tests can exercise it without mutating process-global state.
func applyEnv(cfg *PipelineConfig, lookup func(string) (string, bool)) {
	if v, ok := lookup("AGENTFORGE_LLM_ENDPOINT"); ok && v != "" {
		cfg.LLM.Endpoint = v
	}
	if v, ok := lookup("AGENTFORGE_LLM_MODEL"); ok && v != "" {
		cfg.LLM.Model = v
	}
	if v, ok := lookup("AGENTFORGE_LLM_API_KEY"); ok && v != "" {
		cfg.LLM.APIKey = v
	}
	if v, ok := lookup("AGENTFORGE_LLM_MAX_TOKENS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = n
		}
	}
	if v, ok := lookup("CI"); ok && isTruthy(v) {
		cfg.NonInteractive = true
	}
	if cfg.AutoApprove {
		cfg.NonInteractive = true
	}
}

// isTruthy reports whether an environment variable's value should be
// treated as "on" (any non-empty value other than explicit negatives).
func isTruthy(v string) bool {
	switch v {
	case "", "0", "false", "False", "FALSE":
		return false
	default:
		return true
	}
}

// IsCI reports whether the CI environment variable is set truthily.
func IsCI() bool {
	v, ok := os.LookupEnv("CI")
	return ok && isTruthy(v)
}
