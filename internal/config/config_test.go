package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "partonmc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseEnvDefaults(t *testing.T) {
	cfg, err := ParseEnv()
	require.NoError(t, err)

	assert.Equal(t, int64(1_000_000), cfg.Samples)
	assert.Equal(t, 2.0, cfg.Window)
	assert.Equal(t, "builtin", cfg.PDF)
	assert.Equal(t, 90.0, cfg.Leptonic.ECM)
	assert.Equal(t, HadronicConfig{QMin: 60, Mass: 60, Width: 60, Scale: 91.188}, cfg.Hadronic)
	assert.NoError(t, Validate(cfg))
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("PARTONMC_SAMPLES", "5000")
	t.Setenv("PARTONMC_WINDOW", "1.5")
	t.Setenv("PARTONMC_SEED", "99")
	t.Setenv("PARTONMC_EE_ECM", "91.188")
	t.Setenv("PARTONMC_PP_SCALE", "100")
	t.Setenv("LHAPDF_DATA_PATH", "/opt/lhapdf:/usr/share/LHAPDF")
	t.Setenv("PARTONMC_DB", "runs.db")

	cfg, err := ParseEnv()
	require.NoError(t, err)

	assert.Equal(t, int64(5000), cfg.Samples)
	assert.Equal(t, 1.5, cfg.Window)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 91.188, cfg.Leptonic.ECM)
	assert.Equal(t, 100.0, cfg.Hadronic.Scale)
	assert.Equal(t, []string{"/opt/lhapdf", "/usr/share/LHAPDF"}, cfg.PDFPath)
	assert.Equal(t, "runs.db", cfg.Database)
}

func TestParseEnvInvalid(t *testing.T) {
	t.Setenv("PARTONMC_SAMPLES", "lots")

	_, err := ParseEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoadFileOverridesEnv(t *testing.T) {
	t.Setenv("PARTONMC_SAMPLES", "5000")
	path := writeFile(t, `
samples: 2000
window: 1
ee:
  ecm: 91.188
pp:
  scale: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), cfg.Samples)
	assert.Equal(t, 1.0, cfg.Window)
	assert.Equal(t, 91.188, cfg.Leptonic.ECM)
	assert.Equal(t, 50.0, cfg.Hadronic.Scale)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60.0, cfg.Hadronic.QMin)
	assert.Equal(t, "builtin", cfg.PDF)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), cfg.Samples)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "sampels: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sampels")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	base, err := ParseEnv()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero samples", func(c *Config) { c.Samples = 0 }, "samples"},
		{"window too wide", func(c *Config) { c.Window = 2.5 }, "window"},
		{"zero window", func(c *Config) { c.Window = 0 }, "window"},
		{"negative trials", func(c *Config) { c.MaxTrials = -1 }, "max_trials"},
		{"empty pdf", func(c *Config) { c.PDF = "" }, "pdf"},
		{"zero ecm", func(c *Config) { c.Leptonic.ECM = 0 }, "ecm"},
		{"negative width", func(c *Config) { c.Hadronic.Width = -1 }, "width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := Validate(cfg)
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.NotEmpty(t, ve.Problems)
			assert.Contains(t, ve.Error(), tt.field)
		})
	}
}

func TestValidateAcceptsSearchPath(t *testing.T) {
	cfg, err := ParseEnv()
	require.NoError(t, err)
	cfg.PDFPath = []string{"/opt/lhapdf"}
	cfg.PDF = "CT18NLO"
	assert.NoError(t, Validate(cfg))
}
