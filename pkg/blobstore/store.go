// Package blobstore reads dictionaries and writes result files on local disk or in
// object storage.
package blobstore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction over the places blobs are kept.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Create creates or truncates a blob. The blob is only complete once the writer is closed.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// LocalStore implements Store using the local file system.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory. Names are
// resolved relative to root; absolute names are used as is.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.root, name)
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *LocalStore) Create(_ context.Context, name string) (io.WriteCloser, error) {
	f, err := os.Create(s.path(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Location is a parsed blob URI.
type Location struct {
	// Scheme is "s3", "minio" or "" for the local file system.
	Scheme string
	Bucket string
	// Key is the object key, or the file path for local locations.
	Key string
}

// ParseURI splits uri into a Location. Anything without a known scheme is a local path.
func ParseURI(uri string) (Location, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return Location{Key: uri}, nil
	}
	switch scheme {
	case "s3", "minio":
	case "file":
		return Location{Key: rest}, nil
	default:
		return Location{}, fmt.Errorf("unsupported scheme %q in %s", scheme, uri)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return Location{}, fmt.Errorf("%s: want %s://bucket/key", uri, scheme)
	}
	return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
}

// ReadLines returns the lines of r without their line endings.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}
