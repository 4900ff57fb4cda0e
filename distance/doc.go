// Package distance provides distances between events and cluster centroids.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance (default, matches the c-means engine)
//   - MetricSquaredL2: squared L2 distance
//   - MetricManhattan: L1 distance
//
// # Sources
//
// A Source answers "how far is event e from cluster c". Two implementations
// are provided and are interchangeable for the quality builders:
//
//   - VectorSource computes distances on demand from the raw vectors.
//   - Table holds a dense, precomputed clusters×events distance table. It is
//     the shape an accelerator-backed producer hands back.
//
// # Usage
//
//	src, _ := distance.NewVectorSource(events, clusters, dim, distance.MetricEuclidean)
//	tbl, _ := distance.Precompute(ctx, src, 0)
//	d := tbl.Distance(clusterIdx, eventIdx)
package distance
