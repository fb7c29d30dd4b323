// Package walker enumerates the files of a directory tree.
//
// The walker produces relative paths in slash form regardless of platform so
// that manifests and diffs are portable between operating systems. Symlinks
// are never followed: a symlinked file or directory is skipped entirely to
// avoid cycles and double-counting.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileInfo describes one regular file found during a walk.
type FileInfo struct {
	// AbsPath is the absolute path of the file.
	AbsPath string

	// RelPath is the path relative to the walk root, in slash form.
	RelPath string

	// Size is the file size in bytes.
	Size int64
}

// Walker walks a directory tree with exclude pattern support.
type Walker struct {
	root     string
	excludes []string
}

// New creates a Walker rooted at the given directory. The root must exist and
// be a directory; it is resolved to an absolute path so that relative path
// computation is stable regardless of trailing separators in the argument.
func New(root string, excludes []string) (*Walker, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", absRoot)
	}

	return &Walker{
		root:     absRoot,
		excludes: excludes,
	}, nil
}

// Root returns the absolute walk root.
func (w *Walker) Root() string {
	return w.root
}

// Walk enumerates all regular files under the root, excluding symlinks and
// anything matching an exclude pattern.
func (w *Walker) Walk() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Never follow symlinks. WalkDir does not descend into symlinked
		// directories, so skipping the entry itself is sufficient.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			return nil
		}

		// Skip sockets, devices and other non-regular files
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(w.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path: %w", err)
		}
		relPath = filepath.ToSlash(relPath)

		excluded, err := w.isExcluded(relPath)
		if err != nil {
			return err
		}
		if excluded {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %w", err)
		}

		files = append(files, FileInfo{
			AbsPath: path,
			RelPath: relPath,
			Size:    info.Size(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", w.root, err)
	}

	return files, nil
}

// isExcluded checks the slash-form relative path against all exclude patterns.
func (w *Walker) isExcluded(relPath string) (bool, error) {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
