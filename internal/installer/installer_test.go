package installer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/agentforge/internal/categorize"
	"github.com/agentforge/agentforge/internal/pm"
	"github.com/agentforge/agentforge/internal/ports"
)

func TestInstaller_Install_Success(t *testing.T) {
	runner := ports.NewMockCommandRunner()
	runner.AddResult("npm", []string{"install", "--save", "zod", "axios"}, ports.CommandResult{ExitCode: 0})

	inst := NewInstaller(runner)
	r := inst.Install(context.Background(), Request{
		Manager:     pm.NPM,
		Packages:    []string{"zod", "axios"},
		ProjectRoot: "/proj",
		Category:    categorize.Production,
	})

	require.True(t, r.IsOk())
	val, _ := r.Value()
	assert.Equal(t, []string{"zod", "axios"}, val.Packages)
}

func TestInstaller_Install_NonZeroExit(t *testing.T) {
	runner := ports.NewMockCommandRunner()
	runner.AddResult("npm", []string{"install", "--save-dev", "eslint"}, ports.CommandResult{ExitCode: 1})

	inst := NewInstaller(runner)
	r := inst.Install(context.Background(), Request{
		Manager:  pm.NPM,
		Packages: []string{"eslint"},
		Category: categorize.Development,
	})

	require.True(t, r.IsErr())
	err, _ := r.Error()
	assert.Equal(t, InstallFailed, err.Kind)
	assert.Equal(t, 1, err.ExitCode)
}

func TestInstaller_Install_RejectsMetacharacters(t *testing.T) {
	runner := ports.NewMockCommandRunner()
	inst := NewInstaller(runner)

	r := inst.Install(context.Background(), Request{
		Manager:  pm.NPM,
		Packages: []string{"zod; rm -rf /"},
		Category: categorize.Production,
	})

	require.True(t, r.IsErr())
	err, _ := r.Error()
	assert.Equal(t, InvalidArgument, err.Kind)
	assert.Empty(t, runner.Calls(), "spawn must never happen once validation rejects the name")
}

func TestInstaller_Install_SpawnFailure(t *testing.T) {
	runner := ports.NewMockCommandRunner() // no result registered -> Run returns an error
	inst := NewInstaller(runner)

	r := inst.Install(context.Background(), Request{
		Manager:  pm.Yarn,
		Packages: []string{"zod"},
		Category: categorize.Production,
	})

	require.True(t, r.IsErr())
	err, _ := r.Error()
	assert.Equal(t, ExecutionFailed, err.Kind)
}

func TestArgvTails_Pnpm(t *testing.T) {
	runner := ports.NewMockCommandRunner()
	runner.AddResult("pnpm", []string{"add", "--save-dev", "vitest"}, ports.CommandResult{ExitCode: 0})

	inst := NewInstaller(runner)
	r := inst.Install(context.Background(), Request{
		Manager:  pm.PNPM,
		Packages: []string{"vitest"},
		Category: categorize.Development,
	})
	require.True(t, r.IsOk())
}
