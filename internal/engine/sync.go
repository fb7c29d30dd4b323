package engine

import (
	"context"
	"fmt"
	"path/filepath"
)

// Sync copies the requested relative paths from the source set into the
// target root, creating parent directories as needed and overwriting
// existing files. A failed copy is recorded and the remaining copies
// continue; an interrupted sync may leave the target partially updated.
func (e *Engine) Sync(ctx context.Context, req *SyncRequest) (*SyncResult, error) {
	start := e.clk.Now()

	exists, err := e.fs.Exists(req.TargetRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to check target root: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("target root does not exist: %s", req.TargetRoot)
	}

	result := &SyncResult{}
	for _, relPath := range req.Paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, ok := req.Source.Get(relPath)
		if !ok {
			result.Failed = append(result.Failed, newFileError(relPath, fmt.Errorf("not present in source set")))
			continue
		}

		if err := e.fs.ValidateRelPath(relPath); err != nil {
			result.Failed = append(result.Failed, newFileError(relPath, err))
			continue
		}

		dst := filepath.Join(req.TargetRoot, filepath.FromSlash(relPath))
		if err := e.fs.CopyFile(rec.AbsPath, dst); err != nil {
			result.Failed = append(result.Failed, newFileError(relPath, err))
			continue
		}

		result.Copied++
	}

	result.Elapsed = e.clk.Now().Sub(start)
	return result, nil
}
