package engine

import (
	"bytes"
	"context"
	"fmt"

	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/reconcile"
	"github.com/danieljhkim/treesum/internal/walker"
)

// Compare walks and hashes two directory trees and reconciles source
// against target. The sync plan in the result lists the paths a Sync would
// copy; nothing is modified by Compare itself.
func (e *Engine) Compare(ctx context.Context, req *CompareRequest) (*CompareResult, error) {
	start := e.clk.Now()

	algo := req.Algorithm
	if algo == "" {
		algo = hash.DefaultAlgorithm
	}

	sourceWalker, err := walker.New(req.SourceRoot, req.Excludes)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	targetWalker, err := walker.New(req.TargetRoot, req.Excludes)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	sourceFiles, err := sourceWalker.Walk()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	targetFiles, err := targetWalker.Walk()
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	source, sourceSkipped, err := e.hashFiles(ctx, sourceFiles, algo, req.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, targetSkipped, err := e.hashFiles(ctx, targetFiles, algo, req.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	result, err := reconcile.Reconcile(source, target, reconcile.Options{NewIsError: req.StrictNew})
	if err != nil {
		return nil, err
	}

	skipped := append(sourceSkipped, targetSkipped...)
	errorCount := result.ErrorCount + len(skipped)

	if req.ReportPath != "" {
		var buf bytes.Buffer
		if err := reconcile.WriteReport(&buf, result.Entries); err != nil {
			return nil, err
		}
		if err := e.fs.AtomicWrite(req.ReportPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
	}

	return &CompareResult{
		SourceRoot: sourceWalker.Root(),
		TargetRoot: targetWalker.Root(),
		Algorithm:  algo.String(),
		Entries:    result.Entries,
		ErrorCount: errorCount,
		SyncPaths:  result.SyncPaths,
		Skipped:    skipped,
		Elapsed:    e.clk.Now().Sub(start),
		Source:     source,
	}, nil
}
