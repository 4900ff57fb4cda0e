// Package blobstore abstracts where input datasets are read from and where
// search traces are written to.
//
// Implementations:
//
//   - LocalStore: a directory on the local file system, reads memory-mapped
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible servers
//
// Every method takes a context so remote backends can be cancelled.
// ReadAll is the convenience used by dataset loaders.
package blobstore
