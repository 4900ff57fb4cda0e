package tabu

// Matrix is the read-only view of a quality matrix the search needs.
type Matrix interface {
	N() int
	At(i, j int) float64
}

// Score evaluates an inclusion vector against the matrix.
//
// Every included cluster i contributes the sum of column i over all rows,
// whether or not the row's own cluster is included:
//
//	score = Σ_{i included} Σ_{j} Q[j][i]
//
// Only the outer index is gated. For a symmetric matrix this is the same as
// summing rows. Recorded traces depend on this exact indexing; it is not a
// sum over included pairs.
func Score(m Matrix, v *Inclusion) float64 {
	n := m.N()

	var score float64
	for i := 0; i < n; i++ {
		if !v.Included(i) {
			continue
		}
		var partial float64
		for j := 0; j < n; j++ {
			partial += m.At(j, i)
		}
		score += partial
	}
	return score
}

// IsCandidateScore reports whether a tentative flip score may be selected.
//
// A score of exactly zero is never a candidate, however it ranks. An empty
// configuration always scores zero.
func IsCandidateScore(score float64) bool {
	return score != 0
}
