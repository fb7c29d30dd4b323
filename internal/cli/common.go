package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/danieljhkim/treesum/internal/clock"
	"github.com/danieljhkim/treesum/internal/config"
	"github.com/danieljhkim/treesum/internal/engine"
	"github.com/danieljhkim/treesum/internal/fsops"
	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/manifest"
)

// newEngine creates an engine with real implementations of all dependencies,
// along with the loaded configuration.
func newEngine() (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	fs := fsops.NewRealFS()
	eng := engine.New(fs, hash.NewFileHasher(), manifest.NewCSVStore(fs), &clock.RealClock{})
	return eng, cfg, nil
}

// resolveAlgorithm picks the algorithm from the flag, falling back to the
// configured default.
func resolveAlgorithm(flagValue string, cfg *config.Config) (hash.Algorithm, error) {
	name := flagValue
	if name == "" {
		name = cfg.Algorithm
	}
	algo, err := hash.ParseAlgorithm(name)
	if err != nil {
		return "", err
	}
	return algo, nil
}

// mergeExcludes combines configured and flag-supplied exclude patterns.
func mergeExcludes(cfg *config.Config, flagValues []string) []string {
	if len(cfg.Exclude) == 0 {
		return flagValues
	}
	merged := make([]string, 0, len(cfg.Exclude)+len(flagValues))
	merged = append(merged, cfg.Exclude...)
	merged = append(merged, flagValues...)
	return merged
}

// resolveConcurrency picks the worker count from the flag, falling back to
// the configured default.
func resolveConcurrency(flagValue int, cfg *config.Config) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.Concurrency
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// errDifferences signals a run that completed but found differences. The
// summary is already on screen, so Execute exits non-zero without printing
// the error again.
var errDifferences = errors.New("differences found")

// errorCountError converts a non-zero reconciliation error count into a
// command error so scripts get a non-zero exit code.
func errorCountError(errorCount int) error {
	if errorCount == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d", errDifferences, errorCount)
}
