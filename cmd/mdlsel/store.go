package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/mdlsel/blobstore"
	"github.com/hupe1980/mdlsel/blobstore/minio"
	"github.com/hupe1980/mdlsel/blobstore/s3"
	"github.com/spf13/cobra"
)

type storeFlags struct {
	kind      string
	root      string
	bucket    string
	prefix    string
	region    string
	endpoint  string
	pathStyle bool
	accessKey string
	secretKey string
	insecure  bool
}

func (f *storeFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.kind, "store", "local", "blob store backend (local, s3, minio)")
	fs.StringVar(&f.root, "root", ".", "root directory of the local store")
	fs.StringVar(&f.bucket, "bucket", "", "bucket name (s3, minio)")
	fs.StringVar(&f.prefix, "prefix", "", "key prefix (s3, minio)")
	fs.StringVar(&f.region, "region", "", "AWS region (s3)")
	fs.StringVar(&f.endpoint, "endpoint", "", "custom endpoint (s3, minio)")
	fs.BoolVar(&f.pathStyle, "path-style", false, "use path-style addressing (s3)")
	fs.StringVar(&f.accessKey, "access-key", "", "access key (minio)")
	fs.StringVar(&f.secretKey, "secret-key", "", "secret key (minio)")
	fs.BoolVar(&f.insecure, "insecure", false, "disable TLS (minio)")
}

func (f *storeFlags) open(ctx context.Context) (blobstore.BlobStore, error) {
	switch f.kind {
	case "local":
		return blobstore.NewLocalStore(f.root), nil

	case "s3":
		if f.bucket == "" {
			return nil, fmt.Errorf("--bucket is required for --store s3")
		}
		opts := []s3.Option{s3.WithPrefix(f.prefix)}
		if f.region != "" {
			opts = append(opts, s3.WithRegion(f.region))
		}
		if f.endpoint != "" {
			opts = append(opts, s3.WithEndpoint(f.endpoint, f.pathStyle))
		}
		return s3.New(ctx, f.bucket, opts...)

	case "minio":
		if f.bucket == "" || f.endpoint == "" {
			return nil, fmt.Errorf("--bucket and --endpoint are required for --store minio")
		}
		store, err := minio.New(f.endpoint, f.accessKey, f.secretKey, f.bucket, !f.insecure, func(o *minio.Options) {
			o.Prefix = f.prefix
		})
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown --store %q", f.kind)
	}
}
