package s3

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/mdlsel/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	store, err := New(ctx, bucket, WithPrefix(fmt.Sprintf("test-mdlsel-%d/", time.Now().UnixNano())))
	require.NoError(t, err)

	data := []byte("0, 2, 4,\n1, 1, 3,\n")

	w, err := store.Create(ctx, "trace")
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "trace")

	got, err := blobstore.ReadAll(ctx, store, "trace")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "trace"))

	_, err = store.Open(ctx, "trace")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
