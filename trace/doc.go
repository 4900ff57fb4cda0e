// Package trace persists the per-iteration log of a tabu search.
//
// A trace is plain text, one record per line:
//
//	<iteration>, <popcount>, <score>,
//
// where popcount is the number of included clusters after the iteration and
// score is the iteration's candidate score. Traces are written for offline
// inspection; nothing in the search reads them back.
//
// Traces may optionally be framed with zstd or lz4. The file name carries the
// matching extension (see FileName), and Read undoes the framing.
package trace
