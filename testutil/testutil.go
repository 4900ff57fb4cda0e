package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float32, minVal, maxVal float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float32()*span
	}
}

// BlobSpacing is the per-axis distance between neighbouring Blobs centres.
const BlobSpacing = 10

// Blobs generates perCluster events around each of k centres and returns the
// flattened events (k*perCluster*dim) and centres (k*dim).
//
// Centre c sits at BlobSpacing·c on every axis; events are drawn uniformly
// within ±spread of their centre. Events are interleaved (event i belongs to
// centre i%k) so contiguous event ranges cover every blob.
func (r *RNG) Blobs(k, perCluster, dim int, spread float32) (events, centres []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	centres = make([]float32, k*dim)
	for c := range k {
		for d := range dim {
			centres[c*dim+d] = float32(BlobSpacing * c)
		}
	}

	num := k * perCluster
	events = make([]float32, num*dim)
	for i := range num {
		c := i % k
		for d := range dim {
			events[i*dim+d] = centres[c*dim+d] + (r.rand.Float32()*2-1)*spread
		}
	}

	return events, centres
}
