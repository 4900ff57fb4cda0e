package tabu

// Memory holds the tabu tenure countdown of every cluster.
// Entries never go below zero.
type Memory struct {
	tenure []int
}

// NewMemory returns a Memory of length n with nothing tabu.
func NewMemory(n int) *Memory {
	return &Memory{tenure: make([]int, n)}
}

// Tabu reports whether cluster i may not be flipped.
func (m *Memory) Tabu(i int) bool { return m.tenure[i] > 0 }

// Remaining returns how many more iterations cluster i stays tabu.
func (m *Memory) Remaining(i int) int { return m.tenure[i] }

// Set makes cluster i tabu for tenure iterations.
func (m *Memory) Set(i, tenure int) {
	if tenure < 0 {
		tenure = 0
	}
	m.tenure[i] = tenure
}

// Decrement counts cluster i's tenure down by one.
func (m *Memory) Decrement(i int) {
	if m.tenure[i] > 0 {
		m.tenure[i]--
	}
}

// AllTabu reports whether no cluster can currently be flipped.
func (m *Memory) AllTabu() bool {
	for _, t := range m.tenure {
		if t == 0 {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the countdowns.
func (m *Memory) Snapshot() []int {
	out := make([]int, len(m.tenure))
	copy(out, m.tenure)
	return out
}
