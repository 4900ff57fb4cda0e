package minio

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/mdlsel/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Options(t *testing.T) {
	s, err := New("localhost:9000", "key", "secret", "bucket", false, func(o *Options) {
		o.Prefix = "runs/"
		o.PartSize = 16 << 20
	})
	require.NoError(t, err)

	assert.Equal(t, "runs/trace", s.key("trace"))
	assert.Equal(t, DefaultOptions.ContentType, s.putOptions().ContentType)
	assert.Equal(t, uint64(16<<20), s.putOptions().PartSize)

	_, err = New("", "key", "secret", "bucket", false)
	assert.Error(t, err)
}

// TestStore_Integration needs a MinIO server on localhost:9000 and skips
// otherwise.
func TestStore_Integration(t *testing.T) {
	ctx := context.Background()

	store, err := New("localhost:9000", "minioadmin", "minioadmin", "test-mdlsel", false,
		func(o *Options) { o.Prefix = "test-prefix/" })
	require.NoError(t, err)

	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}
	require.NoError(t, store.EnsureBucket(ctx))

	data := []byte("3, 4\n1, 2\n")
	require.NoError(t, store.Put(ctx, "clusters.csv", data))

	b, err := store.Open(ctx, "clusters.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, 4)
	n, err := b.ReadAt(ctx, buf, 5)
	require.NoError(t, err)
	assert.Equal(t, "1, 2", string(buf[:n]))

	rc, err := b.ReadRange(ctx, 0, 4)
	require.NoError(t, err)
	head, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "3, 4", string(head))
	require.NoError(t, b.Close())

	w, err := store.Create(ctx, "trace")
	require.NoError(t, err)
	_, err = w.Write([]byte("0, 2, 4,\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "clusters.csv")
	assert.Contains(t, names, "trace")

	got, err := blobstore.ReadAll(ctx, store, "trace")
	require.NoError(t, err)
	assert.Equal(t, "0, 2, 4,\n", string(got))

	require.NoError(t, store.Delete(ctx, "clusters.csv"))
	require.NoError(t, store.Delete(ctx, "trace"))

	_, err = store.Open(ctx, "clusters.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
