// Package engine orchestrates walking, hashing, reconciliation and sync.
//
// The engine owns no state between operations: each request walks, hashes
// and reconciles from scratch and returns an immutable result. Per-file
// hashing failures do not abort a run; they are collected and reported so a
// single unreadable file cannot mask the state of the rest of the tree.
package engine

import (
	"github.com/danieljhkim/treesum/internal/clock"
	"github.com/danieljhkim/treesum/internal/fsops"
	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/manifest"
)

// Engine executes treesum operations against the real filesystem through
// its injected collaborators.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
	store  manifest.Store
	clk    clock.Clock
}

// New creates an Engine with the given collaborators.
func New(fs fsops.FS, hasher hash.Hasher, store manifest.Store, clk clock.Clock) *Engine {
	return &Engine{
		fs:     fs,
		hasher: hasher,
		store:  store,
		clk:    clk,
	}
}

func newFileError(relPath string, err error) FileError {
	return FileError{RelPath: relPath, Err: err, Message: err.Error()}
}
