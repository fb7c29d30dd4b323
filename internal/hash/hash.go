// Package hash provides file hashing for content comparison.
//
// Treesum identifies file changes purely by content digest. The package
// supports the five algorithms a manifest may record (MD5 through SHA-512)
// and provides both a real implementation backed by the crypto packages and
// a fake implementation for testing.
package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	gohash "hash"
	"io"
	"os"
	"strings"
)

// Algorithm identifies a supported digest algorithm.
type Algorithm string

const (
	MD5    Algorithm = "MD5"
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA384 Algorithm = "SHA384"
	SHA512 Algorithm = "SHA512"
)

// DefaultAlgorithm is used when neither flag nor config selects one.
const DefaultAlgorithm = SHA256

// Algorithms lists all supported algorithms in display order.
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA1, SHA256, SHA384, SHA512}
}

// ParseAlgorithm resolves a case-insensitive algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "MD5":
		return MD5, nil
	case "SHA1":
		return SHA1, nil
	case "SHA256":
		return SHA256, nil
	case "SHA384":
		return SHA384, nil
	case "SHA512":
		return SHA512, nil
	default:
		return "", fmt.Errorf("unknown hash algorithm %q (supported: MD5, SHA1, SHA256, SHA384, SHA512)", name)
	}
}

// String returns the canonical upper-case name.
func (a Algorithm) String() string {
	return string(a)
}

// New returns a fresh digest state for the algorithm.
func (a Algorithm) New() (gohash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", string(a))
	}
}

// Equal compares two hex digests. Digests are compared case-insensitively
// since manifests produced by other tools may record upper-case hex.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Hasher provides an abstraction for file hashing operations.
type Hasher interface {
	// HashFile computes the digest of the file at the given path using the
	// given algorithm and returns it as a lower-case hex string.
	HashFile(path string, algo Algorithm) (string, error)
}

// FileHasher implements Hasher by streaming file contents through the
// selected crypto digest.
type FileHasher struct{}

// NewFileHasher creates a new FileHasher.
func NewFileHasher() *FileHasher {
	return &FileHasher{}
}

// HashFile computes the digest of the file at the given path.
func (h *FileHasher) HashFile(path string, algo Algorithm) (string, error) {
	digest, err := algo.New()
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := io.Copy(digest, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// FakeHasher implements Hasher with deterministic hashes for testing.
type FakeHasher struct {
	hashes map[string]string
	errs   map[string]error
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
		errs:   make(map[string]error),
	}
}

// SetHash sets the hash for a specific path (for testing).
func (h *FakeHasher) SetHash(path, hash string) {
	h.hashes[path] = hash
}

// SetError makes HashFile fail for a specific path (for testing).
func (h *FakeHasher) SetError(path string, err error) {
	h.errs[path] = err
}

// HashFile returns the predetermined hash for the given path.
func (h *FakeHasher) HashFile(path string, _ Algorithm) (string, error) {
	if err, ok := h.errs[path]; ok {
		return "", err
	}
	if hash, ok := h.hashes[path]; ok {
		return hash, nil
	}
	// Default hash if not set
	return "fakehash", nil
}
