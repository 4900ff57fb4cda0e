// Package quality builds the MDL quality matrix of a fuzzy clustering.
//
// For N clusters the matrix is N×N. The diagonal holds a cluster's standalone
// value:
//
//	Q[i][i] = K1·members(i) − K2·error(i) − K3·dimensions
//
// where an event is a member of cluster i when its membership weight w exceeds
// the threshold, and error(i) accumulates w²·d² over those members. Off the
// diagonal the matrix holds the pairwise redundancy cost:
//
//	Q[i][j] = −K1·shared(i, j) + K2·max(error(i), error(j))
//
// with shared(i, j) counting events that are members of both clusters.
//
// # Builders
//
// Builder is the single entry point used by the optimizer side. Two
// implementations exist:
//
//   - Sequential computes every cell in its own pass over the events. It is the
//     reference path and allocates O(N) scratch memory.
//   - Parallel makes one batched pass over the events split into chunks, with
//     per-chunk accumulators merged at the end. It allocates O(workers·N²).
//
// Both produce the same matrix up to floating-point summation order.
package quality
