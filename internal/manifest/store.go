package manifest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danieljhkim/treesum/internal/fsops"
	"github.com/danieljhkim/treesum/internal/hash"
)

// Manifest file columns, in order.
const (
	colHash      = "Hash"
	colFilePath  = "FilePath"
	colRelative  = "Relative"
	colAlgorithm = "Algorithm"
)

// ErrFormat reports a malformed manifest file.
var ErrFormat = errors.New("malformed manifest")

// Store persists manifests.
type Store interface {
	// Save writes the set to path, replacing any existing file.
	Save(path string, set *Set) error

	// Load reads a manifest from path.
	Load(path string) (*Set, error)
}

// CSVStore implements Store as a flat CSV table with a header row:
// Hash,FilePath,Relative,Algorithm.
type CSVStore struct {
	fs fsops.FS
}

// NewCSVStore creates a CSVStore writing through the given filesystem.
func NewCSVStore(fs fsops.FS) *CSVStore {
	return &CSVStore{fs: fs}
}

// Save writes the set to path atomically, rows in lexical path order.
func (s *CSVStore) Save(path string, set *Set) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{colHash, colFilePath, colRelative, colAlgorithm}); err != nil {
		return fmt.Errorf("failed to write manifest header: %w", err)
	}
	for _, rec := range set.Records() {
		row := []string{rec.Hash, rec.AbsPath, rec.RelPath, rec.Algorithm.String()}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write manifest row for %q: %w", rec.RelPath, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := s.fs.AtomicWrite(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// Load reads a manifest from path. A missing file, a missing or wrong header,
// or a row with an unknown algorithm fails with an error wrapping ErrFormat
// where the content is at fault.
func (s *CSVStore) Load(path string) (*Set, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 4

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s is empty", ErrFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	if header[0] != colHash || header[1] != colFilePath || header[2] != colRelative || header[3] != colAlgorithm {
		return nil, fmt.Errorf("%w: %s has header %v, want [%s %s %s %s]",
			ErrFormat, path, header, colHash, colFilePath, colRelative, colAlgorithm)
	}

	set := NewSet()
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
		}

		algo, err := hash.ParseAlgorithm(row[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
		}

		rec := Record{
			Hash:      row[0],
			AbsPath:   row[1],
			RelPath:   row[2],
			Algorithm: algo,
		}
		if err := set.Add(rec); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
		}
	}

	return set, nil
}
