// Package manifest defines the persisted hash manifest and its in-memory
// form.
//
// A manifest maps relative file paths to content digests. All records in one
// manifest share a single algorithm; verification and comparison across mixed
// algorithms is meaningless and is rejected when a set is built.
package manifest

import (
	"fmt"
	"sort"

	"github.com/danieljhkim/treesum/internal/hash"
)

// Record is one manifest row: a file identified by its relative path.
type Record struct {
	// RelPath is the slash-form path relative to the tree root. It is the
	// identity key within one manifest.
	RelPath string

	// Hash is the hex content digest.
	Hash string

	// Algorithm is the digest algorithm that produced Hash.
	Algorithm hash.Algorithm

	// AbsPath is the absolute path of the file as recorded at generation
	// time.
	AbsPath string
}

// Set is a collection of records keyed by relative path. All records share
// one algorithm.
type Set struct {
	records map[string]Record
	algo    hash.Algorithm
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{records: make(map[string]Record)}
}

// Add inserts a record. It fails on a duplicate relative path or on an
// algorithm differing from the records already present.
func (s *Set) Add(rec Record) error {
	if rec.RelPath == "" {
		return fmt.Errorf("record has empty relative path")
	}
	if _, exists := s.records[rec.RelPath]; exists {
		return fmt.Errorf("duplicate relative path %q", rec.RelPath)
	}
	if len(s.records) == 0 {
		s.algo = rec.Algorithm
	} else if rec.Algorithm != s.algo {
		return fmt.Errorf("algorithm mismatch: set uses %s, record %q uses %s", s.algo, rec.RelPath, rec.Algorithm)
	}
	s.records[rec.RelPath] = rec
	return nil
}

// Get returns the record for a relative path.
func (s *Set) Get(relPath string) (Record, bool) {
	rec, ok := s.records[relPath]
	return rec, ok
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.records)
}

// Algorithm returns the algorithm shared by all records. It is the zero
// value for an empty set.
func (s *Set) Algorithm() hash.Algorithm {
	return s.algo
}

// Paths returns all relative paths in lexical order.
func (s *Set) Paths() []string {
	paths := make([]string, 0, len(s.records))
	for path := range s.records {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Records returns all records in lexical path order.
func (s *Set) Records() []Record {
	records := make([]Record, 0, len(s.records))
	for _, path := range s.Paths() {
		records = append(records, s.records[path])
	}
	return records
}
