// Package dataset loads event vectors and cluster centroids.
//
// Both inputs are Matrix values: one vector per row. They are read from any
// blobstore.BlobStore in CSV or a compact little-endian binary layout; the
// format follows the blob name (see FormatOf).
package dataset
