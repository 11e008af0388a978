package venn

import "math/bits"

// cycleSetWords is the fixed word count of a CycleSet. The largest
// arrangement supported (six curves) has 394 cycles, which fits in seven
// 64-bit words. A fixed-size array keeps CycleSet a value type: sets are
// copied and compared without allocation, which matters because the solver
// snapshots and intersects them constantly.
const cycleSetWords = 7

// MaxCycles is the largest cycle count representable by a CycleSet.
const MaxCycles = cycleSetWords * 64

// CycleSet is a bitset over cycle identifiers. Constraint tables and
// per-face candidate sets are all CycleSets; propagation is set
// intersection.
type CycleSet struct {
	w [cycleSetWords]uint64
}

// Has reports whether cycle id is a member of the set.
func (s CycleSet) Has(id int) bool {
	return s.w[id>>6]&(1<<uint(id&63)) != 0
}

// Add returns the set with cycle id included.
func (s CycleSet) Add(id int) CycleSet {
	s.w[id>>6] |= 1 << uint(id&63)
	return s
}

// Remove returns the set with cycle id excluded.
func (s CycleSet) Remove(id int) CycleSet {
	s.w[id>>6] &^= 1 << uint(id&63)
	return s
}

// Intersect returns the intersection of s and t.
func (s CycleSet) Intersect(t CycleSet) CycleSet {
	for i := range s.w {
		s.w[i] &= t.w[i]
	}
	return s
}

// Union returns the union of s and t.
func (s CycleSet) Union(t CycleSet) CycleSet {
	for i := range s.w {
		s.w[i] |= t.w[i]
	}
	return s
}

// Count returns the number of cycles in the set.
func (s CycleSet) Count() int {
	n := 0
	for _, w := range s.w {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s CycleSet) IsEmpty() bool {
	for _, w := range s.w {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether s and t have identical membership.
func (s CycleSet) Equal(t CycleSet) bool {
	return s.w == t.w
}

// First returns the smallest cycle id in the set, or -1 if the set is empty.
func (s CycleSet) First() int {
	for i, w := range s.w {
		if w != 0 {
			return i<<6 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// NextAfter returns the smallest cycle id strictly greater than id, or -1
// if no such member exists. Callers iterate candidates in ascending order
// with First followed by repeated NextAfter.
func (s CycleSet) NextAfter(id int) int {
	i := (id + 1) >> 6
	if i >= cycleSetWords {
		return -1
	}
	w := s.w[i] &^ (1<<uint((id+1)&63) - 1)
	for {
		if w != 0 {
			return i<<6 + bits.TrailingZeros64(w)
		}
		i++
		if i >= cycleSetWords {
			return -1
		}
		w = s.w[i]
	}
}

// word returns the i-th backing word. The trail stores candidate sets
// word-by-word so a rewind only touches words that actually changed.
func (s CycleSet) word(i int) uint64 {
	return s.w[i]
}

// setWord returns the set with the i-th backing word replaced.
func (s CycleSet) setWord(i int, v uint64) CycleSet {
	s.w[i] = v
	return s
}

// allCycles returns the set containing every id in [0, n).
func allCycles(n int) CycleSet {
	var s CycleSet
	for i := 0; i < n>>6; i++ {
		s.w[i] = ^uint64(0)
	}
	if r := n & 63; r != 0 {
		s.w[n>>6] = 1<<uint(r) - 1
	}
	return s
}
