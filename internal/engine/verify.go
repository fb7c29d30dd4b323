package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/treesum/internal/manifest"
	"github.com/danieljhkim/treesum/internal/reconcile"
	"github.com/danieljhkim/treesum/internal/walker"
)

// Verify re-walks the tree a manifest was generated from and reconciles the
// stored hashes against the current state. The tree root and the digest
// algorithm are both taken from the manifest: a manifest generated with MD5
// is verified with MD5 no matter what the configuration says.
func (e *Engine) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error) {
	start := e.clk.Now()

	stored, err := e.store.Load(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	root, err := deriveRoot(stored)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", req.ManifestPath, err)
	}

	w, err := walker.New(root, nil)
	if err != nil {
		return nil, fmt.Errorf("tree recorded in manifest is not walkable: %w", err)
	}

	files, err := w.Walk()
	if err != nil {
		return nil, err
	}

	current, skipped, err := e.hashFiles(ctx, files, stored.Algorithm(), req.Concurrency)
	if err != nil {
		return nil, err
	}

	result, err := reconcile.Reconcile(stored, current, reconcile.Options{NewIsError: req.StrictNew})
	if err != nil {
		return nil, err
	}

	// A file that vanished between walk and hash still counts as an error:
	// it is neither verified nor classifiable.
	errorCount := result.ErrorCount + len(skipped)

	return &VerifyResult{
		Root:       root,
		Algorithm:  stored.Algorithm().String(),
		Entries:    result.Entries,
		ErrorCount: errorCount,
		Skipped:    skipped,
		Elapsed:    e.clk.Now().Sub(start),
	}, nil
}

// deriveRoot recovers the tree root from a manifest by stripping each
// record's relative path from its recorded absolute path. All records must
// agree on the root.
func deriveRoot(set *manifest.Set) (string, error) {
	if set.Len() == 0 {
		return "", fmt.Errorf("cannot derive tree root: manifest has no records")
	}

	root := ""
	for _, rec := range set.Records() {
		absSlash := filepath.ToSlash(rec.AbsPath)
		suffix := "/" + rec.RelPath
		if !strings.HasSuffix(absSlash, suffix) {
			return "", fmt.Errorf("record %q: absolute path %q does not end with relative path", rec.RelPath, rec.AbsPath)
		}
		recRoot := filepath.FromSlash(strings.TrimSuffix(absSlash, suffix))
		if root == "" {
			root = recRoot
		} else if root != recRoot {
			return "", fmt.Errorf("records disagree on tree root: %q vs %q", root, recRoot)
		}
	}

	return root, nil
}
