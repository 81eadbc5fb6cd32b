package blobstore

import (
	"errors"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is a blob encoding, chosen by file name suffix.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

// CompressionFor returns the compression implied by name's suffix.
func CompressionFor(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		return CompressionZstd
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// NewReader decodes r according to name's suffix. Closing the result closes r.
func NewReader(name string, r io.ReadCloser) (io.ReadCloser, error) {
	switch CompressionFor(name) {
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: dec, close: func() error {
			dec.Close()
			return r.Close()
		}}, nil
	case CompressionLZ4:
		return &readCloser{Reader: lz4.NewReader(r), close: r.Close}, nil
	default:
		return r, nil
	}
}

// NewWriter encodes into w according to name's suffix. Closing the result flushes the
// encoder and then closes w.
func NewWriter(name string, w io.WriteCloser) (io.WriteCloser, error) {
	switch CompressionFor(name) {
	case CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return &writeCloser{Writer: enc, close: func() error {
			return errors.Join(enc.Close(), w.Close())
		}}, nil
	case CompressionLZ4:
		enc := lz4.NewWriter(w)
		return &writeCloser{Writer: enc, close: func() error {
			return errors.Join(enc.Close(), w.Close())
		}}, nil
	default:
		return w, nil
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error { return r.close() }

type writeCloser struct {
	io.Writer
	close func() error
}

func (w *writeCloser) Close() error { return w.close() }
