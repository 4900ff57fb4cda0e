// Package testutil provides testing utilities for mdlsel.
//
// This package is intended for use in tests and benchmarks only.
//
// # Synthetic Clusterings
//
//	rng := testutil.NewRNG(seed)
//	events, centres := rng.Blobs(4, 100, 2, 1.0) // 4 blobs of 100 events in 2-D
package testutil
