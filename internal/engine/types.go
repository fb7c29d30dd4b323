package engine

import (
	"time"

	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/manifest"
	"github.com/danieljhkim/treesum/internal/reconcile"
)

// FileError records a per-file failure that did not abort the run.
type FileError struct {
	// RelPath is the slash-form relative path of the affected file.
	RelPath string `json:"relPath"`

	// Err is the underlying failure.
	Err error `json:"-"`

	// Message carries Err's text for JSON output.
	Message string `json:"error"`
}

// GenerateRequest asks for a manifest of a directory tree.
type GenerateRequest struct {
	// Root is the directory to hash.
	Root string

	// ManifestPath is where the manifest CSV is written.
	ManifestPath string

	// Algorithm selects the digest; DefaultAlgorithm when empty.
	Algorithm hash.Algorithm

	// Excludes holds doublestar patterns matched against relative paths.
	Excludes []string

	// Concurrency is the number of parallel hashing workers.
	Concurrency int
}

// GenerateResult reports a completed manifest generation.
type GenerateResult struct {
	ManifestPath string        `json:"manifestPath"`
	Root         string        `json:"root"`
	Algorithm    string        `json:"algorithm"`
	FileCount    int           `json:"fileCount"`
	Skipped      []FileError   `json:"skipped,omitempty"`
	Elapsed      time.Duration `json:"elapsedNs"`
}

// VerifyRequest asks for a tree to be checked against a saved manifest.
type VerifyRequest struct {
	// ManifestPath locates the manifest CSV. The tree root and the digest
	// algorithm are both taken from the manifest itself.
	ManifestPath string

	// StrictNew counts files present on disk but absent from the manifest
	// toward the error total.
	StrictNew bool

	// Concurrency is the number of parallel hashing workers.
	Concurrency int
}

// VerifyResult reports a completed verification.
type VerifyResult struct {
	Root       string            `json:"root"`
	Algorithm  string            `json:"algorithm"`
	Entries    []reconcile.Entry `json:"entries"`
	ErrorCount int               `json:"errorCount"`
	Skipped    []FileError       `json:"skipped,omitempty"`
	Elapsed    time.Duration     `json:"elapsedNs"`
}

// CompareRequest asks for two directory trees to be reconciled.
type CompareRequest struct {
	// SourceRoot is the left-hand tree, the source of truth for sync.
	SourceRoot string

	// TargetRoot is the right-hand tree.
	TargetRoot string

	// Algorithm selects the digest; DefaultAlgorithm when empty.
	Algorithm hash.Algorithm

	// Excludes holds doublestar patterns applied to both walks.
	Excludes []string

	// Concurrency is the number of parallel hashing workers.
	Concurrency int

	// StrictNew counts NEW-in-target paths toward the error total.
	StrictNew bool

	// ReportPath, when non-empty, saves the diff as CSV.
	ReportPath string
}

// CompareResult reports a completed comparison. Source is retained so a
// following Sync can resolve absolute source paths.
type CompareResult struct {
	SourceRoot string            `json:"sourceRoot"`
	TargetRoot string            `json:"targetRoot"`
	Algorithm  string            `json:"algorithm"`
	Entries    []reconcile.Entry `json:"entries"`
	ErrorCount int               `json:"errorCount"`
	SyncPaths  []string          `json:"syncPaths,omitempty"`
	Skipped    []FileError       `json:"skipped,omitempty"`
	Elapsed    time.Duration     `json:"elapsedNs"`

	Source *manifest.Set `json:"-"`
}

// SyncRequest asks for the sync plan of a comparison to be executed:
// a one-directional, additive copy from source to target.
type SyncRequest struct {
	// Source resolves relative paths to absolute source paths.
	Source *manifest.Set

	// TargetRoot is the tree receiving the copies.
	TargetRoot string

	// Paths are the relative paths to copy, usually CompareResult.SyncPaths.
	Paths []string
}

// SyncResult reports a completed sync execution.
type SyncResult struct {
	Copied  int           `json:"copied"`
	Failed  []FileError   `json:"failed,omitempty"`
	Elapsed time.Duration `json:"elapsedNs"`
}
