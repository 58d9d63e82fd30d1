package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validScenario = `
name: test_scenario
description: "Test scenario for validation"
process: pp
ecm: 13000
events: 5
samples: 1000
seed: 3
pdf: builtin
assertions:
  - type: event_count
    count: 5
  - type: momentum_conserved
`

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "test.yaml", validScenario)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "pp", scenario.Process)
	assert.Equal(t, 13000.0, scenario.ECM)
	assert.Equal(t, 5, scenario.Events)
	assert.Equal(t, int64(1000), scenario.Samples)
	assert.Equal(t, uint64(3), scenario.Seed)
	assert.Equal(t, "builtin", scenario.PDF)
	require.Len(t, scenario.Assertions, 2)
	assert.Equal(t, Assertion{Type: AssertEventCount, Count: 5}, scenario.Assertions[0])
}

func TestLoadScenario_Testdata(t *testing.T) {
	for _, name := range []string{"ee_on_resonance.yaml", "pp_13tev.yaml"} {
		_, err := LoadScenario(filepath.Join("testdata", "scenarios", name))
		assert.NoError(t, err, name)
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", validScenario+"assertion: []\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no name", "description: d\nprocess: ee\nevents: 1\nsamples: 1\nassertions: [{type: event_count, count: 1}]", "name is required"},
		{"no description", "name: n\nprocess: ee\nevents: 1\nsamples: 1\nassertions: [{type: event_count, count: 1}]", "description is required"},
		{"bad process", "name: n\ndescription: d\nprocess: ep\nevents: 1\nsamples: 1\nassertions: [{type: event_count, count: 1}]", "process must be"},
		{"pp without ecm", "name: n\ndescription: d\nprocess: pp\nevents: 1\nsamples: 1\nassertions: [{type: event_count, count: 1}]", "ecm is required"},
		{"no events", "name: n\ndescription: d\nprocess: ee\nsamples: 1\nassertions: [{type: event_count, count: 1}]", "events must be positive"},
		{"no samples", "name: n\ndescription: d\nprocess: ee\nevents: 1\nassertions: [{type: event_count, count: 1}]", "samples must be positive"},
		{"no assertions", "name: n\ndescription: d\nprocess: ee\nevents: 1\nsamples: 1", "assertions list is required"},
		{"unknown type", "name: n\ndescription: d\nprocess: ee\nevents: 1\nsamples: 1\nassertions: [{type: bogus}]", "unknown assertion type"},
		{"count missing", "name: n\ndescription: d\nprocess: ee\nevents: 1\nsamples: 1\nassertions: [{type: particle_count}]", "count must be positive"},
		{"replicas missing", "name: n\ndescription: d\nprocess: ee\nevents: 1\nsamples: 1\nassertions: [{type: replicas_consistent}]", "needs at least 2 replicas"},
		{"analytic on pp", "name: n\ndescription: d\nprocess: pp\necm: 100\nevents: 1\nsamples: 1\nassertions: [{type: analytic_cross_section}]", "only available for ee"},
		{"negative tolerance", "name: n\ndescription: d\nprocess: ee\nevents: 1\nsamples: 1\nassertions: [{type: momentum_conserved, tolerance: -1}]", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "s.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	writeScenario(t, dir, "b.yaml", "")
	writeScenario(t, dir, "a.yml", "")
	writeScenario(t, dir, "notes.txt", "")
	writeScenario(t, filepath.Join(dir, "nested"), "c.yaml", "")

	files, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.yaml"),
	}, files)

	filtered, err := FindScenarios(dir, "[bc]")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	_, err = FindScenarios(dir, "[")
	assert.Error(t, err)
}
