package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/anagram/pkg/blobstore"
)

var errNotImplemented = errors.New("not implemented")

// fakeClient is an in-memory S3 for single part uploads.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string][]byte)}
}

func (c *fakeClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[*params.Bucket+"/"+*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (c *fakeClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.objects[*params.Bucket+"/"+*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (c *fakeClient) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errNotImplemented
}

func (c *fakeClient) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errNotImplemented
}

func (c *fakeClient) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errNotImplemented
}

func (c *fakeClient) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errNotImplemented
}

func TestStore_CreateAndOpen(t *testing.T) {
	client := newFakeClient()
	store := NewStore(client, "test-bucket", "prefix")

	w, err := store.Create(t.Context(), "anagrams")
	require.NoError(t, err)
	_, err = io.WriteString(w, "digest an ant\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, []byte("digest an ant\n"), client.objects["test-bucket/prefix/anagrams"])

	r, err := store.Open(t.Context(), "anagrams")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "digest an ant\n", string(data))
}

func TestStore_OpenNotFound(t *testing.T) {
	store := NewStore(newFakeClient(), "test-bucket", "prefix")

	_, err := store.Open(t.Context(), "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
