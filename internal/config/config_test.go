package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/agentforge/internal/config"
	"github.com/agentforge/agentforge/internal/ports"
)

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	fs := ports.NewMockFileSystem()

	cfg, err := config.Load(fs, "/proj")

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxImportRetries)
	assert.False(t, cfg.AutoApprove)
	assert.Equal(t, "https://registry.npmjs.org", cfg.RegistryURL)
	assert.Equal(t, 5*time.Second, cfg.RegistryTimeout)
}

func TestLoad_ReadsFileValues(t *testing.T) {
	fs := ports.NewMockFileSystem()
	fs.AddFile("/proj/agentforge.toml", `
max_import_retries = 5
auto_approve = true
registry_url = "https://registry.example.internal"
registry_timeout_seconds = 10

[llm]
endpoint = "https://llm.example.internal"
model = "claude"
`)

	cfg, err := config.Load(fs, "/proj")

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxImportRetries)
	assert.True(t, cfg.AutoApprove)
	assert.True(t, cfg.NonInteractive, "auto_approve implies non-interactive")
	assert.Equal(t, "https://registry.example.internal", cfg.RegistryURL)
	assert.Equal(t, 10*time.Second, cfg.RegistryTimeout)
	assert.Equal(t, "claude", cfg.LLM.Model)
}

func TestLoad_MalformedFileReturnsUserError(t *testing.T) {
	fs := ports.NewMockFileSystem()
	fs.AddFile("/proj/agentforge.toml", `not = [valid toml`)

	_, err := config.Load(fs, "/proj")

	require.Error(t, err)
	var userErr *config.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, config.ErrCodeConfigParse, userErr.Code)
}

func TestLoad_EnvOverridesLLMFields(t *testing.T) {
	t.Setenv("AGENTFORGE_LLM_ENDPOINT", "https://llm.override.internal")
	t.Setenv("AGENTFORGE_LLM_MODEL", "override-model")
	t.Setenv("AGENTFORGE_LLM_MAX_TOKENS", "4096")

	fs := ports.NewMockFileSystem()
	cfg, err := config.Load(fs, "/proj")

	require.NoError(t, err)
	assert.Equal(t, "https://llm.override.internal", cfg.LLM.Endpoint)
	assert.Equal(t, "override-model", cfg.LLM.Model)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)
}

func TestLoad_CIEnvForcesNonInteractive(t *testing.T) {
	t.Setenv("CI", "true")

	fs := ports.NewMockFileSystem()
	cfg, err := config.Load(fs, "/proj")

	require.NoError(t, err)
	assert.True(t, cfg.NonInteractive)
}

func TestUserError_ErrorsIsMatchesByCode(t *testing.T) {
	a := config.NewUserError(config.ErrCodeConfigParse, "bad toml")
	b := config.NewUserError(config.ErrCodeConfigParse, "different message, same code")

	assert.ErrorIs(t, a, b)
}

func TestErrorList_Add_IgnoresNil(t *testing.T) {
	list := config.NewErrorList()
	list.Add(nil)
	assert.False(t, list.HasErrors())

	list.Add(config.NewUserError(config.ErrCodeValidationFailed, "bad field"))
	assert.True(t, list.HasErrors())
	assert.Contains(t, list.Error(), "bad field")
}
