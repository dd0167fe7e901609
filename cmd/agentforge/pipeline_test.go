package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/agentforge/internal/config"
)

func TestBuildCoder_NoEndpointIsAnError(t *testing.T) {
	_, err := buildCoder(config.PipelineConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGENTFORGE_LLM_ENDPOINT")
}

func TestBuildCoder_WithEndpointSucceeds(t *testing.T) {
	coder, err := buildCoder(config.PipelineConfig{LLM: config.LLMConfig{Endpoint: "https://example.test"}})
	require.NoError(t, err)
	assert.NotNil(t, coder)
}

func TestLoadConfig_AutoApproveFlagForcesNonInteractive(t *testing.T) {
	tmpDir := t.TempDir()
	withChdir(t, tmpDir)

	autoApprove = true
	t.Cleanup(func() { autoApprove = false })

	cfg, err := loadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.AutoApprove)
	assert.True(t, cfg.NonInteractive)
}
