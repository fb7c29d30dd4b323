package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/walker"
)

// Generate hashes every file under the requested root and saves the result
// as a manifest.
func (e *Engine) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	start := e.clk.Now()

	algo := req.Algorithm
	if algo == "" {
		algo = hash.DefaultAlgorithm
	}

	w, err := walker.New(req.Root, req.Excludes)
	if err != nil {
		return nil, err
	}

	files, err := w.Walk()
	if err != nil {
		return nil, err
	}

	set, skipped, err := e.hashFiles(ctx, files, algo, req.Concurrency)
	if err != nil {
		return nil, err
	}

	if err := e.store.Save(req.ManifestPath, set); err != nil {
		return nil, fmt.Errorf("failed to save manifest: %w", err)
	}

	return &GenerateResult{
		ManifestPath: req.ManifestPath,
		Root:         w.Root(),
		Algorithm:    algo.String(),
		FileCount:    set.Len(),
		Skipped:      skipped,
		Elapsed:      e.clk.Now().Sub(start),
	}, nil
}
