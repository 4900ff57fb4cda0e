// Package minio stores datasets and search traces on MinIO or any other
// S3-compatible server.
//
//	store, err := minio.New("localhost:9000", "minioadmin", "minioadmin", "mdlsel", false,
//	    func(o *minio.Options) { o.Prefix = "runs/" },
//	)
//	if err != nil { ... }
//	if err := store.EnsureBucket(ctx); err != nil { ... }
package minio
