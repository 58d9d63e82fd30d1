// Package config loads run configuration.
//
// Values are resolved in increasing precedence:
//
//  1. struct defaults (envDefault tags)
//  2. environment variables (PARTONMC_*, LHAPDF_DATA_PATH)
//  3. an optional YAML file passed with --config
//  4. command-line flags, applied by the caller
//
// The merged result is checked against an embedded CUE schema by Validate.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full run configuration.
type Config struct {
	Samples   int64    `env:"PARTONMC_SAMPLES" envDefault:"1000000" yaml:"samples" json:"samples"`
	Window    float64  `env:"PARTONMC_WINDOW" envDefault:"2" yaml:"window" json:"window"`
	Seed      uint64   `env:"PARTONMC_SEED" yaml:"seed" json:"seed"` // 0 picks a random seed
	MaxTrials int64    `env:"PARTONMC_MAX_TRIALS" yaml:"max_trials" json:"max_trials"`
	PDF       string   `env:"PARTONMC_PDF" envDefault:"builtin" yaml:"pdf" json:"pdf"`
	PDFPath   []string `env:"LHAPDF_DATA_PATH" envSeparator:":" yaml:"pdf_path" json:"pdf_path"`
	Database  string   `env:"PARTONMC_DB" yaml:"db" json:"db"`
	Quiet     bool     `env:"PARTONMC_QUIET" yaml:"quiet" json:"quiet"`

	Leptonic LeptonicConfig `envPrefix:"PARTONMC_EE_" yaml:"ee" json:"ee"`
	Hadronic HadronicConfig `envPrefix:"PARTONMC_PP_" yaml:"pp" json:"pp"`
}

// LeptonicConfig configures the e⁺e⁻ process.
type LeptonicConfig struct {
	ECM float64 `env:"ECM" envDefault:"90" yaml:"ecm" json:"ecm"`
}

// HadronicConfig configures the resonance transform and PDF scale of the
// pp process. The collision energy is a command argument.
type HadronicConfig struct {
	QMin  float64 `env:"QMIN" envDefault:"60" yaml:"qmin" json:"qmin"`
	Mass  float64 `env:"MASS" envDefault:"60" yaml:"mass" json:"mass"`
	Width float64 `env:"WIDTH" envDefault:"60" yaml:"width" json:"width"`
	Scale float64 `env:"SCALE" envDefault:"91.188" yaml:"scale" json:"scale"`
}

// ParseEnv loads defaults and environment variables into a Config.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load resolves defaults and environment, then overlays the YAML file at
// path when path is non-empty. Unknown keys in the file are an error.
func Load(path string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := decodeYAML(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}
