package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentforge/agentforge/internal/importscan"
	"github.com/agentforge/agentforge/internal/installer"
)

func TestRejection(t *testing.T) {
	msg := Rejection([]string{"left-pad"}, map[string]string{"left-pad": "remove or implement manually"})
	assert.Contains(t, msg, `"left-pad"`)
	assert.Contains(t, msg, `Package "left-pad" was rejected by user. Rewrite without using this package.`)
	assert.Contains(t, msg, "Rewrite the code without these packages")
}

func TestRejection_Empty(t *testing.T) {
	assert.Empty(t, Rejection(nil, nil))
}

func TestAmbiguousManager(t *testing.T) {
	msg := AmbiguousManager([]string{"zod", "axios"})
	assert.Contains(t, msg, "ambiguous")
	assert.Contains(t, msg, `"zod"`)
	assert.Contains(t, msg, `"axios"`)
}

func TestSubstitution(t *testing.T) {
	sub := importscan.Substitute{
		Module:      "node:crypto",
		Description: "UUID v4 generation",
		Example:     `import { randomUUID } from "node:crypto"; const id = randomUUID()`,
	}
	msg := Substitution("uuid", sub)
	assert.Contains(t, msg, "node:crypto")
	assert.Contains(t, msg, "randomUUID")
}

func TestRegistryInvalid_NotFound(t *testing.T) {
	msg := RegistryInvalid([]string{"not-a-real-pkg-xyz"}, nil)
	assert.Contains(t, msg, "not-a-real-pkg-xyz")
	assert.Contains(t, msg, "does not exist")
}

func TestInstallFailure(t *testing.T) {
	err := &installer.InstallError{Kind: installer.InstallFailed, ExitCode: 1}
	msg := InstallFailure([]string{"made-up-broken"}, err)
	assert.Contains(t, msg, "made-up-broken")
	assert.Contains(t, msg, "exit code 1")
}
