package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: small_ee
description: "Small leptonic run"
process: ee
ecm: 91.188
events: 5
samples: 5000
seed: 3
assertions:
  - type: event_count
    count: 5
  - type: momentum_conserved
  - type: incoming_energy
`

const failingScenario = `name: wrong_count
description: "Asks for the wrong number of events"
process: ee
events: 2
samples: 1000
seed: 4
assertions:
  - type: event_count
    count: 3
`

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestCheckCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestCheckCommandNonExistentDir(t *testing.T) {
	_, _, err := execute(t, "check", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestCheckCommandEmptyDir(t *testing.T) {
	out, _, err := execute(t, "check", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestCheckCommandEmptyDirJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "check", t.TempDir())
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data.Total)
	assert.Empty(t, resp.Data.Scenarios)
}

func TestCheckCommandPassing(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"small_ee.yaml": passingScenario})

	out, _, err := execute(t, "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ small_ee (")
	assert.Contains(t, out, "Check Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestCheckCommandFailing(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"small_ee.yaml":    passingScenario,
		"wrong_count.yaml": failingScenario,
		"broken.yaml":      "name: broken\n",
	})

	out, _, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 scenario(s) failed")
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "Load error:")
	assert.Contains(t, out, "✗ wrong_count")
	assert.Contains(t, out, "Expected: 3 events")
	assert.Contains(t, out, "Check Summary: 1 passed, 2 failed, 3 total")
}

func TestCheckCommandJSON(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"small_ee.yaml":    passingScenario,
		"wrong_count.yaml": failingScenario,
	})

	out, _, err := execute(t, "--format", "json", "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	require.Len(t, resp.Data.Scenarios, 2)
	assert.Equal(t, "small_ee", resp.Data.Scenarios[0].Name)
	assert.True(t, resp.Data.Scenarios[0].Pass)
	assert.Positive(t, resp.Data.Scenarios[0].SigmaPb)
	assert.False(t, resp.Data.Scenarios[1].Pass)
	assert.NotEmpty(t, resp.Data.Scenarios[1].Errors)
}

func TestCheckCommandFilter(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"small_ee.yaml":    passingScenario,
		"wrong_count.yaml": failingScenario,
	})

	out, _, err := execute(t, "check", dir, "--filter", "small_*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestCheckCommandShippedScenarios(t *testing.T) {
	out, _, err := execute(t, "check", filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
}
