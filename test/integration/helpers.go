// Package integration exercises treesum end to end: real filesystem, real
// hashing, real manifests.
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/treesum/internal/clock"
	"github.com/danieljhkim/treesum/internal/engine"
	"github.com/danieljhkim/treesum/internal/fsops"
	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/manifest"
	"github.com/danieljhkim/treesum/internal/reconcile"
)

// newEngine wires a fully real engine.
func newEngine() *engine.Engine {
	fs := fsops.NewRealFS()
	return engine.New(fs, hash.NewFileHasher(), manifest.NewCSVStore(fs), &clock.RealClock{})
}

// writeTree creates relative-path → content files under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// statusByPath indexes diff entries by relative path.
func statusByPath(entries []reconcile.Entry) map[string]reconcile.Status {
	m := make(map[string]reconcile.Status, len(entries))
	for _, entry := range entries {
		m[entry.RelPath] = entry.Status
	}
	return m
}
