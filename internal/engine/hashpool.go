package engine

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/manifest"
	"github.com/danieljhkim/treesum/internal/walker"
)

type hashOutcome struct {
	file   walker.FileInfo
	digest string
	err    error
}

// hashFiles digests every file with a bounded worker pool and builds a Set.
// Unreadable files are skipped and reported rather than aborting the run.
// Output is deterministic: the Set orders by path and the skip list is
// sorted, regardless of worker scheduling.
func (e *Engine) hashFiles(ctx context.Context, files []walker.FileInfo, algo hash.Algorithm, concurrency int) (*manifest.Set, []FileError, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	set := manifest.NewSet()
	if len(files) == 0 {
		return set, nil, nil
	}

	jobs := make(chan walker.FileInfo, len(files))
	outcomes := make(chan hashOutcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				select {
				case <-ctx.Done():
					outcomes <- hashOutcome{file: file, err: ctx.Err()}
					continue
				default:
				}
				digest, err := e.hasher.HashFile(file.AbsPath, algo)
				outcomes <- hashOutcome{file: file, digest: digest, err: err}
			}
		}()
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)

	wg.Wait()
	close(outcomes)

	var skipped []FileError
	for outcome := range outcomes {
		if outcome.err != nil {
			if errors.Is(outcome.err, context.Canceled) || errors.Is(outcome.err, context.DeadlineExceeded) {
				return nil, nil, outcome.err
			}
			skipped = append(skipped, newFileError(outcome.file.RelPath, outcome.err))
			continue
		}
		rec := manifest.Record{
			RelPath:   outcome.file.RelPath,
			Hash:      outcome.digest,
			Algorithm: algo,
			AbsPath:   outcome.file.AbsPath,
		}
		if err := set.Add(rec); err != nil {
			return nil, nil, err
		}
	}

	sort.Slice(skipped, func(i, j int) bool {
		return skipped[i].RelPath < skipped[j].RelPath
	})

	return set, skipped, nil
}
