// Package config loads treesum's optional configuration file.
//
// Configuration supplies defaults only; every setting can be overridden by a
// command-line flag. The file lives at ~/.config/treesum/config.toml unless
// TREESUM_CONFIG points elsewhere. A missing file is not an error: built-in
// defaults apply.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default values applied when the config file is absent or silent.
const (
	DefaultAlgorithm   = "SHA256"
	DefaultConcurrency = 8
)

// Config represents the treesum configuration.
type Config struct {
	// Algorithm is the default digest algorithm for generate and compare.
	Algorithm string `toml:"algorithm"`

	// Exclude holds default exclude patterns applied to every walk.
	Exclude []string `toml:"exclude"`

	// StrictNew counts NEW-only-in-target paths toward the error total.
	StrictNew bool `toml:"strict_new"`

	// Concurrency is the number of parallel hashing workers.
	Concurrency int `toml:"concurrency"`
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		Algorithm:   DefaultAlgorithm,
		Concurrency: DefaultConcurrency,
	}
}

// Path returns the configuration file location: $TREESUM_CONFIG if set,
// otherwise ~/.config/treesum/config.toml.
func Path() (string, error) {
	if path := os.Getenv("TREESUM_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "treesum", "config.toml"), nil
}

// Load reads the configuration file, falling back to defaults when the file
// does not exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	cfg, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes a Config from the provided reader, filling in defaults for
// unset fields.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return cfg, nil
}
