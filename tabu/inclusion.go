package tabu

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/goccy/go-json"
)

// Inclusion is the set of clusters that take part in a solution.
//
// It has a fixed length N; cluster indices outside [0, N) are programming
// errors and panic.
type Inclusion struct {
	bm *roaring.Bitmap
	n  int
}

// NewInclusion returns an Inclusion of length n with every cluster excluded.
func NewInclusion(n int) *Inclusion {
	return &Inclusion{bm: roaring.New(), n: n}
}

// AllIncluded returns an Inclusion of length n with every cluster included.
func AllIncluded(n int) *Inclusion {
	v := NewInclusion(n)
	v.bm.AddRange(0, uint64(n))
	return v
}

// InclusionFromFlags builds an Inclusion from per-cluster flags.
func InclusionFromFlags(flags []bool) *Inclusion {
	v := NewInclusion(len(flags))
	for i, f := range flags {
		if f {
			v.bm.Add(uint32(i))
		}
	}
	return v
}

func (v *Inclusion) check(i int) {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("tabu: cluster index %d out of range [0, %d)", i, v.n))
	}
}

// Len returns N.
func (v *Inclusion) Len() int { return v.n }

// Included reports whether cluster i is included.
func (v *Inclusion) Included(i int) bool {
	v.check(i)
	return v.bm.Contains(uint32(i))
}

// Flip toggles cluster i.
func (v *Inclusion) Flip(i int) {
	v.check(i)
	if !v.bm.CheckedRemove(uint32(i)) {
		v.bm.Add(uint32(i))
	}
}

// Count returns the number of included clusters.
func (v *Inclusion) Count() int { return int(v.bm.GetCardinality()) }

// Clone returns an independent copy.
func (v *Inclusion) Clone() *Inclusion {
	return &Inclusion{bm: v.bm.Clone(), n: v.n}
}

// Equal reports whether both vectors have the same length and members.
func (v *Inclusion) Equal(o *Inclusion) bool {
	return v.n == o.n && v.bm.Equals(o.bm)
}

// Indices returns the included cluster indices in ascending order.
func (v *Inclusion) Indices() []int {
	out := make([]int, 0, v.Count())
	it := v.bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Flags returns one flag per cluster.
func (v *Inclusion) Flags() []bool {
	out := make([]bool, v.n)
	for _, i := range v.Indices() {
		out[i] = true
	}
	return out
}

// Bitmap returns a copy of the underlying bitmap.
func (v *Inclusion) Bitmap() *roaring.Bitmap { return v.bm.Clone() }

// String renders the vector as a 0/1 string, cluster 0 first.
func (v *Inclusion) String() string {
	var sb strings.Builder
	sb.Grow(v.n)
	for _, f := range v.Flags() {
		if f {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// MarshalJSON encodes the vector as an array of 0/1 flags.
func (v *Inclusion) MarshalJSON() ([]byte, error) {
	bits := make([]int, v.n)
	for _, i := range v.Indices() {
		bits[i] = 1
	}
	return json.Marshal(bits)
}

// UnmarshalJSON decodes an array of 0/1 flags.
func (v *Inclusion) UnmarshalJSON(data []byte) error {
	var bits []int
	if err := json.Unmarshal(data, &bits); err != nil {
		return err
	}
	v.n = len(bits)
	v.bm = roaring.New()
	for i, b := range bits {
		switch b {
		case 0:
		case 1:
			v.bm.Add(uint32(i))
		default:
			return fmt.Errorf("tabu: invalid inclusion flag %d at %d", b, i)
		}
	}
	return nil
}
