// Package reconcile classifies every relative path across two hash sets.
//
// Given a "left" set (the stored manifest, or the source tree) and a "right"
// set (the freshly hashed tree, or the target tree), each path in the union
// of the two key sets is classified as MATCH, MISMATCH, MISSING (present only
// in left) or NEW (present only in right). The classification drives both
// verification reporting and the additive sync plan: MISMATCH and MISSING
// paths are slated for a copy from left to right, NEW paths never are, since
// deletions are out of scope.
package reconcile

import (
	"fmt"
	"sort"

	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/manifest"
)

// Status classifies one relative path across the two sets.
type Status string

const (
	// StatusMatch means the path exists on both sides with equal hashes.
	StatusMatch Status = "MATCH"

	// StatusMismatch means the path exists on both sides with differing
	// hashes.
	StatusMismatch Status = "MISMATCH"

	// StatusMissing means the path exists only in the left set.
	StatusMissing Status = "MISSING"

	// StatusNew means the path exists only in the right set.
	StatusNew Status = "NEW"
)

// Entry is the classification of one relative path. Computed once per run
// and never mutated.
type Entry struct {
	// RelPath is the slash-form relative path.
	RelPath string

	// Status is the classification outcome.
	Status Status

	// LeftHash is the left-side digest, empty when the path is NEW.
	LeftHash string

	// RightHash is the right-side digest, empty when the path is MISSING.
	RightHash string
}

// Options controls classification policy.
type Options struct {
	// NewIsError counts NEW paths toward the error total. Off by default:
	// a path present only on the right side is informational unless the
	// caller opts in.
	NewIsError bool
}

// Result is the outcome of one reconciliation run.
type Result struct {
	// Entries holds one entry per union key, in lexical path order.
	Entries []Entry

	// ErrorCount is the number of MISMATCH and MISSING entries, plus NEW
	// entries when Options.NewIsError is set.
	ErrorCount int

	// SyncPaths lists the relative paths requiring a copy from left to
	// right (MISMATCH and MISSING), in lexical order. NEW paths are never
	// included.
	SyncPaths []string
}

// Reconcile classifies every path in the union of the two sets. Both sets
// must carry the same algorithm; comparing digests produced by different
// algorithms is undefined and rejected.
func Reconcile(left, right *manifest.Set, opts Options) (*Result, error) {
	if left.Len() > 0 && right.Len() > 0 && left.Algorithm() != right.Algorithm() {
		return nil, fmt.Errorf("algorithm mismatch: left set uses %s, right set uses %s",
			left.Algorithm(), right.Algorithm())
	}

	keys := unionKeys(left, right)

	result := &Result{
		Entries: make([]Entry, 0, len(keys)),
	}

	for _, key := range keys {
		leftRec, inLeft := left.Get(key)
		rightRec, inRight := right.Get(key)

		entry := Entry{RelPath: key}
		switch {
		case inLeft && inRight:
			entry.LeftHash = leftRec.Hash
			entry.RightHash = rightRec.Hash
			if hash.Equal(leftRec.Hash, rightRec.Hash) {
				entry.Status = StatusMatch
			} else {
				entry.Status = StatusMismatch
				result.ErrorCount++
				result.SyncPaths = append(result.SyncPaths, key)
			}
		case inLeft:
			entry.LeftHash = leftRec.Hash
			entry.Status = StatusMissing
			result.ErrorCount++
			result.SyncPaths = append(result.SyncPaths, key)
		default:
			entry.RightHash = rightRec.Hash
			entry.Status = StatusNew
			if opts.NewIsError {
				result.ErrorCount++
			}
		}

		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

// unionKeys returns the union of the relative paths of both sets in lexical
// order, for deterministic output.
func unionKeys(left, right *manifest.Set) []string {
	seen := make(map[string]struct{}, left.Len()+right.Len())
	for _, key := range left.Paths() {
		seen[key] = struct{}{}
	}
	for _, key := range right.Paths() {
		seen[key] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
