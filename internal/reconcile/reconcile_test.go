package reconcile

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/danieljhkim/treesum/internal/hash"
	"github.com/danieljhkim/treesum/internal/manifest"
)

// newSet builds a Set from relative-path → hash pairs.
func newSet(t *testing.T, algo hash.Algorithm, hashes map[string]string) *manifest.Set {
	t.Helper()
	set := manifest.NewSet()
	for rel, h := range hashes {
		err := set.Add(manifest.Record{
			RelPath:   rel,
			Hash:      h,
			Algorithm: algo,
			AbsPath:   "/src/" + rel,
		})
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", rel, err)
		}
	}
	return set
}

func statuses(entries []Entry) map[string]Status {
	m := make(map[string]Status, len(entries))
	for _, e := range entries {
		m[e.RelPath] = e.Status
	}
	return m
}

func TestReconcile_IdenticalSets(t *testing.T) {
	left := newSet(t, hash.SHA256, map[string]string{"a.txt": "h1", "b.txt": "h2"})
	right := newSet(t, hash.SHA256, map[string]string{"a.txt": "h1", "b.txt": "h2"})

	result, err := Reconcile(left, right, Options{})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if result.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", result.ErrorCount)
	}
	if len(result.SyncPaths) != 0 {
		t.Errorf("SyncPaths = %v, want none", result.SyncPaths)
	}
	for _, entry := range result.Entries {
		if entry.Status != StatusMatch {
			t.Errorf("entry %s status = %s, want MATCH", entry.RelPath, entry.Status)
		}
	}
}

func TestReconcile_Scenario(t *testing.T) {
	// source has {a.txt: H1, b.txt: H2}; target has {a.txt: H1, c.txt: H3}
	left := newSet(t, hash.SHA256, map[string]string{"a.txt": "H1", "b.txt": "H2"})
	right := newSet(t, hash.SHA256, map[string]string{"a.txt": "H1", "c.txt": "H3"})

	result, err := Reconcile(left, right, Options{NewIsError: true})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	want := []Entry{
		{RelPath: "a.txt", Status: StatusMatch, LeftHash: "H1", RightHash: "H1"},
		{RelPath: "b.txt", Status: StatusMissing, LeftHash: "H2"},
		{RelPath: "c.txt", Status: StatusNew, RightHash: "H3"},
	}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("Entries = %+v, want %+v", result.Entries, want)
	}
	if result.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", result.ErrorCount)
	}
	if !reflect.DeepEqual(result.SyncPaths, []string{"b.txt"}) {
		t.Errorf("SyncPaths = %v, want [b.txt]", result.SyncPaths)
	}
}

func TestReconcile_Mismatch(t *testing.T) {
	left := newSet(t, hash.SHA256, map[string]string{"a.txt": "h1"})
	right := newSet(t, hash.SHA256, map[string]string{"a.txt": "h2"})

	result, err := Reconcile(left, right, Options{})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if len(result.Entries) != 1 || result.Entries[0].Status != StatusMismatch {
		t.Fatalf("Entries = %+v, want one MISMATCH", result.Entries)
	}
	if result.Entries[0].LeftHash != "h1" || result.Entries[0].RightHash != "h2" {
		t.Errorf("hashes = %q/%q, want h1/h2", result.Entries[0].LeftHash, result.Entries[0].RightHash)
	}
	if result.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", result.ErrorCount)
	}
	if !reflect.DeepEqual(result.SyncPaths, []string{"a.txt"}) {
		t.Errorf("SyncPaths = %v, want [a.txt]", result.SyncPaths)
	}
}

func TestReconcile_HashCaseInsensitive(t *testing.T) {
	left := newSet(t, hash.SHA256, map[string]string{"a.txt": "ABCDEF"})
	right := newSet(t, hash.SHA256, map[string]string{"a.txt": "abcdef"})

	result, err := Reconcile(left, right, Options{})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if result.Entries[0].Status != StatusMatch {
		t.Errorf("status = %s, want MATCH for case-differing digests", result.Entries[0].Status)
	}
}

func TestReconcile_NewPolicy(t *testing.T) {
	left := newSet(t, hash.SHA256, map[string]string{})
	right := newSet(t, hash.SHA256, map[string]string{"extra.txt": "h9"})

	t.Run("informational by default", func(t *testing.T) {
		result, err := Reconcile(left, right, Options{})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if result.ErrorCount != 0 {
			t.Errorf("ErrorCount = %d, want 0", result.ErrorCount)
		}
		if got := statuses(result.Entries)["extra.txt"]; got != StatusNew {
			t.Errorf("status = %s, want NEW", got)
		}
		if len(result.SyncPaths) != 0 {
			t.Errorf("SyncPaths = %v, NEW paths must never be synced", result.SyncPaths)
		}
	})

	t.Run("counts as error when strict", func(t *testing.T) {
		result, err := Reconcile(left, right, Options{NewIsError: true})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if result.ErrorCount != 1 {
			t.Errorf("ErrorCount = %d, want 1", result.ErrorCount)
		}
		if len(result.SyncPaths) != 0 {
			t.Errorf("SyncPaths = %v, NEW paths must never be synced", result.SyncPaths)
		}
	})
}

func TestReconcile_EmptySets(t *testing.T) {
	result, err := Reconcile(manifest.NewSet(), manifest.NewSet(), Options{})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(result.Entries) != 0 || result.ErrorCount != 0 || len(result.SyncPaths) != 0 {
		t.Errorf("empty sets produced %+v", result)
	}
}

func TestReconcile_DeterministicOrder(t *testing.T) {
	left := newSet(t, hash.SHA256, map[string]string{"c.txt": "h3", "a.txt": "h1", "b.txt": "h2"})
	right := newSet(t, hash.SHA256, map[string]string{"d.txt": "h4", "b.txt": "h2x"})

	first, err := Reconcile(left, right, Options{})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	wantOrder := []string{"a.txt", "b.txt", "c.txt", "d.txt"}
	for i, entry := range first.Entries {
		if entry.RelPath != wantOrder[i] {
			t.Fatalf("entry order = %v at %d, want %v", entry.RelPath, i, wantOrder[i])
		}
	}

	// Idempotence: a second run yields the identical sequence
	second, err := Reconcile(left, right, Options{})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated reconciliation produced different results")
	}

	// Sync paths sorted as well
	if !reflect.DeepEqual(first.SyncPaths, []string{"b.txt", "c.txt"}) {
		t.Errorf("SyncPaths = %v, want [b.txt c.txt]", first.SyncPaths)
	}
}

func TestReconcile_AlgorithmMismatch(t *testing.T) {
	left := newSet(t, hash.SHA256, map[string]string{"a.txt": "h1"})
	right := newSet(t, hash.MD5, map[string]string{"a.txt": "h1"})

	if _, err := Reconcile(left, right, Options{}); err == nil {
		t.Error("expected error for mismatched algorithms")
	}

	t.Run("empty side is compatible with any algorithm", func(t *testing.T) {
		if _, err := Reconcile(left, manifest.NewSet(), Options{}); err != nil {
			t.Errorf("Reconcile with empty right failed: %v", err)
		}
	})
}

func TestWriteReport(t *testing.T) {
	entries := []Entry{
		{RelPath: "a.txt", Status: StatusMatch, LeftHash: "h1", RightHash: "h1"},
		{RelPath: "b.txt", Status: StatusMissing, LeftHash: "h2"},
		{RelPath: "c.txt", Status: StatusNew, RightHash: "h3"},
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, entries); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"Status,RelativePath,SourceHash,TargetHash",
		"MATCH,a.txt,h1,h1",
		"MISSING,b.txt,h2,",
		"NEW,c.txt,,h3",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("report = %v, want %v", lines, want)
	}
}
