package venn

import "strings"

// Color identifies one curve of the arrangement, 0..N-1. Colors print as
// lowercase letters: 0 is "a", 1 is "b", and so on.
type Color = int

// ColorSet is a bitset over colors. A face of the arrangement is identified
// by the ColorSet of curves whose interior contains it, so ColorSet doubles
// as the face identifier (0..NFaces-1).
type ColorSet uint32

// Has reports whether color c is a member of the set.
func (s ColorSet) Has(c Color) bool {
	return s&(1<<uint(c)) != 0
}

// With returns the set with color c added.
func (s ColorSet) With(c Color) ColorSet {
	return s | 1<<uint(c)
}

// Without returns the set with color c removed.
func (s ColorSet) Without(c Color) ColorSet {
	return s &^ (1 << uint(c))
}

// Toggle returns the set with color c flipped. Toggling a bounding color of
// a face yields the adjacent face across that curve.
func (s ColorSet) Toggle(c Color) ColorSet {
	return s ^ 1<<uint(c)
}

// Count returns the number of colors in the set.
func (s ColorSet) Count() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// String renders the set as contiguous color letters, e.g. "acd".
// The empty set renders as "-".
func (s ColorSet) String() string {
	if s == 0 {
		return "-"
	}
	var b strings.Builder
	for c := 0; c < 32; c++ {
		if s.Has(c) {
			b.WriteByte(byte('a' + c))
		}
	}
	return b.String()
}

// colorName returns the single-letter name of a color.
func colorName(c Color) byte {
	return byte('a' + c)
}
