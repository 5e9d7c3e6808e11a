package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crateworks/ingest/internal/util"
)

// IngestConfig holds the operator-tunable settings for the ingest tools. The
// pipeline itself never reads configuration; callers resolve these values
// and pass them down.
type IngestConfig struct {
	// MaxUnpackSize caps the decompressed size of one tarball,
	// e.g. "512M" or "1G".
	MaxUnpackSize string `yaml:"max_unpack_size"`

	Rerender RerenderConfig `yaml:"rerender"`
}

// RerenderConfig controls the readme re-render worker.
type RerenderConfig struct {
	PageSize    int `yaml:"page_size"`   // versions fetched per page
	Concurrency int `yaml:"concurrency"` // extractions in flight per page
}

// DefaultIngestConfig returns an IngestConfig with default values.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		MaxUnpackSize: "512M",
		Rerender: RerenderConfig{
			PageSize:    25,
			Concurrency: 8,
		},
	}
}

// LoadIngestConfig loads and parses an ingest.yaml file.
func LoadIngestConfig(path string) (IngestConfig, error) {
	cfg := DefaultIngestConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading ingest config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing ingest config: %w", err)
	}

	// Apply defaults for missing values
	if cfg.MaxUnpackSize == "" {
		cfg.MaxUnpackSize = "512M"
	}
	if cfg.Rerender.PageSize <= 0 {
		cfg.Rerender.PageSize = 25
	}
	if cfg.Rerender.Concurrency <= 0 {
		cfg.Rerender.Concurrency = 8
	}

	if _, err := cfg.MaxUnpackBytes(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// MaxUnpackBytes resolves MaxUnpackSize to a byte count.
func (c IngestConfig) MaxUnpackBytes() (int64, error) {
	n, err := util.ParseSize(c.MaxUnpackSize)
	if err != nil {
		return 0, fmt.Errorf("parsing max_unpack_size %q: %w", c.MaxUnpackSize, err)
	}
	return n, nil
}
