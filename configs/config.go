// Package configs loads the YAML configuration that selects a Store
// backend, its connection string, the fingerprinting preset, and
// batch ingest concurrency.
package configs

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Database    Database    `yaml:"database"`
	Fingerprint Fingerprint `yaml:"fingerprint"`
	Ingest      Ingest      `yaml:"ingest"`
}

// Database selects and configures a Store backend.
type Database struct {
	// Type is one of "mysql", "postgres", "memory".
	Type string `yaml:"type"`
	DSN  string `yaml:"dsn"`
}

// Fingerprint selects a tuning preset for the extractor.
type Fingerprint struct {
	// Preset is "music" (default) or "audiobook".
	Preset string `yaml:"preset"`
}

// Ingest configures the batch coordinator.
type Ingest struct {
	Extensions   []string `yaml:"extensions"`
	Workers      int      `yaml:"workers"`
	LimitSeconds float64  `yaml:"limit_seconds"`
}

// Default returns a Config usable without a config file: the
// in-memory Store, the music preset, wav/mp3/flac extensions, and a
// worker count that defers to runtime.NumCPU().
func Default() Config {
	return Config{
		Database:    Database{Type: "memory"},
		Fingerprint: Fingerprint{Preset: "music"},
		Ingest: Ingest{
			Extensions:   []string{"wav", "mp3", "flac"},
			Workers:      0,
			LimitSeconds: -1,
		},
	}
}

// Load reads and parses the YAML document at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config file %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config file %s", path)
	}

	return cfg, nil
}
