package blobstore

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	for _, name := range []string{"words.txt", "words.txt.zst", "words.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			raw, err := store.Create(t.Context(), name)
			require.NoError(t, err)
			w, err := NewWriter(name, raw)
			require.NoError(t, err)

			_, err = io.WriteString(w, "ant\r\ntan\n\nnat\n")
			require.NoError(t, err)
			require.NoError(t, w.Close())

			rawR, err := store.Open(t.Context(), name)
			require.NoError(t, err)
			r, err := NewReader(name, rawR)
			require.NoError(t, err)
			defer r.Close()

			lines, err := ReadLines(r)
			require.NoError(t, err)
			assert.Equal(t, []string{"ant", "tan", "", "nat"}, lines)
		})
	}
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(t.Context(), "missing.txt")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCompressionFor(t *testing.T) {
	tests := []struct {
		name string
		want Compression
	}{
		{"wordlist", CompressionNone},
		{"wordlist.txt", CompressionNone},
		{"wordlist.zst", CompressionZstd},
		{"wordlist.zstd", CompressionZstd},
		{"wordlist.lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		if got := CompressionFor(tt.name); got != tt.want {
			t.Errorf("CompressionFor(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    Location
		wantErr string
	}{
		{uri: "wordlist", want: Location{Key: "wordlist"}},
		{uri: "/tmp/wordlist.zst", want: Location{Key: "/tmp/wordlist.zst"}},
		{uri: "file:///tmp/anagrams", want: Location{Key: "/tmp/anagrams"}},
		{uri: "s3://words/en/wordlist.lz4", want: Location{Scheme: "s3", Bucket: "words", Key: "en/wordlist.lz4"}},
		{uri: "minio://words/wordlist", want: Location{Scheme: "minio", Bucket: "words", Key: "wordlist"}},
		{uri: "s3://words", wantErr: "bucket/key"},
		{uri: "s3:///key", wantErr: "bucket/key"},
		{uri: "gs://words/wordlist", wantErr: "unsupported scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseURI(tt.uri)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLines_Empty(t *testing.T) {
	lines, err := ReadLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}
