package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/mdlsel/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStore_Open(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "bucket", WithPrefix("runs"))

	t.Run("NotFound", func(t *testing.T) {
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return *in.Bucket == "bucket" && *in.Key == "runs/missing.csv"
		})).Return(nil, &types.NotFound{}).Once()

		_, err := store.Open(context.Background(), "missing.csv")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("ReadAt", func(t *testing.T) {
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return *in.Key == "runs/events.csv"
		})).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(8)}, nil).Once()

		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return *in.Key == "runs/events.csv" && *in.Range == "bytes=4-7"
		})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("3,4\n"))}, nil).Once()

		b, err := store.Open(context.Background(), "events.csv")
		require.NoError(t, err)
		defer b.Close()
		assert.Equal(t, int64(8), b.Size())

		buf := make([]byte, 10)
		n, err := b.ReadAt(context.Background(), buf, 4)
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "3,4\n", string(buf[:n]))

		n, err = b.ReadAt(context.Background(), buf, 8)
		assert.Equal(t, io.EOF, err)
		assert.Zero(t, n)
	})

	client.AssertExpectations(t)
}

func TestStore_ReadAll(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "bucket")

	client.On("HeadObject", mock.Anything, mock.Anything).
		Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(6)}, nil).Once()
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Key == "m.csv" && *in.Range == "bytes=0-5"
	})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("1,2\n3\n"))}, nil).Once()

	data, err := blobstore.ReadAll(context.Background(), store, "m.csv")
	require.NoError(t, err)
	assert.Equal(t, "1,2\n3\n", string(data))
	client.AssertExpectations(t)
}

func TestStore_Put(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "bucket", WithPrefix("runs/"))

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Key == "runs/trace" &&
			*in.ContentLength == 4 &&
			*in.ChecksumCRC32C == crc32cBase64([]byte("0, 1"))
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, store.Put(context.Background(), "trace", []byte("0, 1")))
	client.AssertExpectations(t)
}

func TestStore_Create(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "bucket", WithPrefix("runs"))

	var uploaded string
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "bucket" && *in.Key == "runs/trace.zst"
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(*s3.PutObjectInput)
		body, _ := io.ReadAll(in.Body)
		uploaded = string(body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	w, err := store.Create(context.Background(), "trace.zst")
	require.NoError(t, err)

	_, err = w.Write([]byte("0, 2, 4,\n"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	assert.Equal(t, "0, 2, 4,\n", uploaded)
	client.AssertExpectations(t)
}

func TestStore_Delete(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "bucket", WithPrefix("runs"))

	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Key == "runs/old"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	require.NoError(t, store.Delete(context.Background(), "old"))
	client.AssertExpectations(t)
}

func TestStore_List_Pagination(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "bucket", WithPrefix("runs/"))

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return *in.Prefix == "runs" && in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("next"),
		Contents:              []types.Object{{Key: aws.String("runs/b_tabu_search_results_table_4")}},
	}, nil).Once()

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.ContinuationToken != nil && *in.ContinuationToken == "next"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("runs/a/events.csv")}},
	}, nil).Once()

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/events.csv", "b_tabu_search_results_table_4"}, names)
	client.AssertExpectations(t)
}

func TestCRC32CBase64(t *testing.T) {
	// CRC32C("123456789") = 0xE3069283.
	assert.Equal(t, "4waSgw==", crc32cBase64([]byte("123456789")))
}
