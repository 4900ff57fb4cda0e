// Package s3 stores datasets and search traces in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("mdlsel/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	sel, err := mdlsel.New(cfg, mdlsel.WithTraceStore(store))
//
// Reads use ranged GETs. Create streams through the multipart uploader and
// Put sends a single request carrying a CRC32C checksum.
package s3
