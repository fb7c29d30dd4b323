package hash

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	t.Run("accepts canonical names", func(t *testing.T) {
		for _, algo := range Algorithms() {
			parsed, err := ParseAlgorithm(algo.String())
			if err != nil {
				t.Fatalf("ParseAlgorithm(%q) failed: %v", algo, err)
			}
			if parsed != algo {
				t.Errorf("ParseAlgorithm(%q) = %q, want %q", algo, parsed, algo)
			}
		}
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		cases := map[string]Algorithm{
			"md5":    MD5,
			"Sha1":   SHA1,
			"sha256": SHA256,
			"sHa384": SHA384,
			"sha512": SHA512,
		}
		for input, want := range cases {
			got, err := ParseAlgorithm(input)
			if err != nil {
				t.Fatalf("ParseAlgorithm(%q) failed: %v", input, err)
			}
			if got != want {
				t.Errorf("ParseAlgorithm(%q) = %q, want %q", input, got, want)
			}
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := ParseAlgorithm(" sha256 ")
		if err != nil {
			t.Fatalf("ParseAlgorithm failed: %v", err)
		}
		if got != SHA256 {
			t.Errorf("ParseAlgorithm(\" sha256 \") = %q, want SHA256", got)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		if _, err := ParseAlgorithm("crc32"); err == nil {
			t.Error("expected error for unknown algorithm")
		}
		if _, err := ParseAlgorithm(""); err == nil {
			t.Error("expected error for empty algorithm")
		}
	})
}

func TestEqual(t *testing.T) {
	if !Equal("ABCDEF01", "abcdef01") {
		t.Error("Equal should ignore hex case")
	}
	if Equal("abcdef01", "abcdef02") {
		t.Error("Equal should reject different digests")
	}
}

func TestFileHasher_HashFile(t *testing.T) {
	tmpDir := t.TempDir()
	hasher := NewFileHasher()

	writeFile := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
		return path
	}

	t.Run("produces known SHA-256 digest", func(t *testing.T) {
		path := writeFile(t, "known.txt", "hello world")

		got, err := hasher.HashFile(path, SHA256)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}

		// sha256("hello world")
		want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
		if got != want {
			t.Errorf("HashFile = %s, want %s", got, want)
		}
	})

	t.Run("produces known MD5 digest", func(t *testing.T) {
		path := writeFile(t, "known-md5.txt", "hello world")

		got, err := hasher.HashFile(path, MD5)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}

		want := "5eb63bbbe01eeed093cb22bb8f5acdc3"
		if got != want {
			t.Errorf("HashFile = %s, want %s", got, want)
		}
	})

	t.Run("digest lengths match algorithm", func(t *testing.T) {
		path := writeFile(t, "lengths.txt", "some content")

		wantLen := map[Algorithm]int{
			MD5:    32,
			SHA1:   40,
			SHA256: 64,
			SHA384: 96,
			SHA512: 128,
		}
		for algo, want := range wantLen {
			got, err := hasher.HashFile(path, algo)
			if err != nil {
				t.Fatalf("HashFile(%s) failed: %v", algo, err)
			}
			if len(got) != want {
				t.Errorf("HashFile(%s) digest length = %d, want %d", algo, len(got), want)
			}
		}
	})

	t.Run("same content produces same hash", func(t *testing.T) {
		file1 := writeFile(t, "same1.txt", "identical content")
		file2 := writeFile(t, "same2.txt", "identical content")

		hash1, err := hasher.HashFile(file1, SHA256)
		if err != nil {
			t.Fatalf("HashFile failed for file1: %v", err)
		}
		hash2, err := hasher.HashFile(file2, SHA256)
		if err != nil {
			t.Fatalf("HashFile failed for file2: %v", err)
		}

		if hash1 != hash2 {
			t.Errorf("Identical files produced different hashes: %s vs %s", hash1, hash2)
		}
	})

	t.Run("different files have different hashes", func(t *testing.T) {
		file1 := writeFile(t, "diff1.txt", "content A")
		file2 := writeFile(t, "diff2.txt", "content B")

		hash1, err := hasher.HashFile(file1, SHA256)
		if err != nil {
			t.Fatalf("HashFile failed for file1: %v", err)
		}
		hash2, err := hasher.HashFile(file2, SHA256)
		if err != nil {
			t.Fatalf("HashFile failed for file2: %v", err)
		}

		if hash1 == hash2 {
			t.Error("Different files produced same hash")
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := hasher.HashFile(filepath.Join(tmpDir, "does-not-exist.txt"), SHA256)
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestFakeHasher(t *testing.T) {
	t.Run("returns configured hash", func(t *testing.T) {
		fake := NewFakeHasher()
		fake.SetHash("/some/path", "h1")

		got, err := fake.HashFile("/some/path", SHA256)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}
		if got != "h1" {
			t.Errorf("HashFile = %q, want %q", got, "h1")
		}
	})

	t.Run("returns default hash for unconfigured path", func(t *testing.T) {
		fake := NewFakeHasher()

		got, err := fake.HashFile("/other/path", SHA256)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}
		if got != "fakehash" {
			t.Errorf("HashFile = %q, want %q", got, "fakehash")
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		fake := NewFakeHasher()
		wantErr := errors.New("permission denied")
		fake.SetError("/broken/path", wantErr)

		_, err := fake.HashFile("/broken/path", SHA256)
		if !errors.Is(err, wantErr) {
			t.Errorf("HashFile error = %v, want %v", err, wantErr)
		}
	})
}
