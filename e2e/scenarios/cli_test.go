//go:build e2e

package scenarios

import (
	"testing"

	"github.com/agentforge/agentforge/e2e/framework"
)

func TestVersion_ShowsVersion(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenario := framework.NewScenario(t)

	scenario.
		Given("the agentforge binary is built", func(env *framework.Environment) {
			// Binary is automatically built by NewEnvironment
		}).
		When("I run agentforge version", func(r *framework.Runner) *framework.Result {
			return r.Version()
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("the output shows version information", func(t *testing.T, r *framework.Result) {
			framework.AssertStdoutContains(t, r, "agentforge")
		})
}

func TestDoctor_NoEndpointConfigured(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenario := framework.NewScenario(t)

	scenario.
		Given("a project with no agentforge.toml", func(env *framework.Environment) {
			env.WriteManifest(`{"name":"demo","dependencies":{}}`)
		}).
		When("I run agentforge doctor", func(r *framework.Runner) *framework.Result {
			return r.Doctor()
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("it reports the missing endpoint", func(t *testing.T, r *framework.Result) {
			framework.AssertStdoutContains(t, r, "not configured")
		})
}

func TestDoctor_UnreachableEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenario := framework.NewScenario(t)

	scenario.
		Given("a config pointing at an endpoint nothing listens on", func(env *framework.Environment) {
			env.WriteConfig("[llm]\nendpoint = \"http://127.0.0.1:1\"\n")
		}).
		When("I run agentforge doctor", func(r *framework.Runner) *framework.Result {
			return r.Doctor()
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("it reports an unreachable endpoint", func(t *testing.T, r *framework.Result) {
			framework.AssertStdoutContains(t, r, "issue(s) found")
		})
}

func TestDoctor_Quiet_EmitsJSON(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenario := framework.NewScenario(t)

	scenario.
		Given("an unconfigured project", func(env *framework.Environment) {
			env.WriteManifest(`{"name":"demo"}`)
		}).
		When("I run agentforge doctor --quiet", func(r *framework.Runner) *framework.Result {
			return r.Run("doctor", "--quiet")
		}).
		Then("the command succeeds", func(t *testing.T, r *framework.Result) {
			framework.AssertSuccess(t, r)
		}).
		And("stdout is a JSON health report", func(t *testing.T, r *framework.Result) {
			framework.AssertStdoutContains(t, r, `"healthy":false`)
		})
}

func TestRun_NoEndpointConfigured_FailsFast(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenario := framework.NewScenario(t)

	scenario.
		Given("an npm project with no coder endpoint configured", func(env *framework.Environment) {
			env.WriteManifest(`{"name":"demo","dependencies":{}}`)
			env.WriteLockFile("package-lock.json", "{}")
		}).
		When("I run agentforge run", func(r *framework.Runner) *framework.Result {
			return r.RunRequest("add a uuid generator")
		}).
		Then("the command fails", func(t *testing.T, r *framework.Result) {
			framework.AssertFailed(t, r)
		}).
		And("it explains the missing endpoint rather than prompting", func(t *testing.T, r *framework.Result) {
			framework.AssertStderrContains(t, r, "AGENTFORGE_LLM_ENDPOINT")
		})
}

func TestPlan_NoEndpointConfigured_FailsFast(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenario := framework.NewScenario(t)

	scenario.
		Given("an npm project with no coder endpoint configured", func(env *framework.Environment) {
			env.WriteManifest(`{"name":"demo","dependencies":{}}`)
		}).
		When("I run agentforge plan", func(r *framework.Runner) *framework.Result {
			return r.Plan("add a uuid generator")
		}).
		Then("the command fails", func(t *testing.T, r *framework.Result) {
			framework.AssertFailed(t, r)
		}).
		And("the installer is never reached", func(t *testing.T, r *framework.Result) {
			framework.AssertStderrContains(t, r, "AGENTFORGE_LLM_ENDPOINT")
		})
}

func TestRun_MalformedConfig_ExitsWithConfigError(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenario := framework.NewScenario(t)

	scenario.
		Given("an agentforge.toml that is not valid TOML", func(env *framework.Environment) {
			env.WriteManifest(`{"name":"demo"}`)
			env.WriteConfig("this is not [ valid toml")
		}).
		When("I run agentforge run", func(r *framework.Runner) *framework.Result {
			return r.RunRequest("add a uuid generator")
		}).
		Then("the command exits with the config/connectivity code", func(t *testing.T, r *framework.Result) {
			framework.AssertExitCode(t, r, 2)
		}).
		And("the error names the malformed file", func(t *testing.T, r *framework.Result) {
			framework.AssertStderrContains(t, r, "agentforge.toml")
		})
}
