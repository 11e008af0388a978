package venn

import "strings"

// Cycle is a cyclic sequence of distinct colors. A face whose boundary is
// crossed by curves x0, x1, ..., xk-1 in that rotational order is assigned
// the cycle (x0 x1 ... xk-1). Two normalization rules make the
// representation unique: the sequence starts at its smallest color, and the
// rotational direction is fixed by the enumeration (both directions appear
// as distinct cycles).
type Cycle struct {
	// ID is the cycle's index in the geometry's enumeration order.
	ID int
	// Colors is the normalized color sequence. Length is at least 3.
	Colors []Color
	// Members is the set of colors appearing in the sequence.
	Members ColorSet
}

// Len returns the number of colors in the cycle.
func (c *Cycle) Len() int {
	return len(c.Colors)
}

// At returns the color at position i, wrapping modulo the length. Negative
// positions wrap from the end, so At(-1) is the last color.
func (c *Cycle) At(i int) Color {
	n := len(c.Colors)
	i %= n
	if i < 0 {
		i += n
	}
	return c.Colors[i]
}

// Successor returns the color following x in the cycle, and whether x is a
// member at all.
func (c *Cycle) Successor(x Color) (Color, bool) {
	for i, v := range c.Colors {
		if v == x {
			return c.At(i + 1), true
		}
	}
	return 0, false
}

// HasEdge reports whether the directed pair x followed immediately by y
// appears in the cycle (wrapping from last to first).
func (c *Cycle) HasEdge(x, y Color) bool {
	for i, v := range c.Colors {
		if v == x && c.At(i+1) == y {
			return true
		}
	}
	return false
}

// String renders the cycle in parenthesized rotational form, e.g. "(a c d)".
func (c *Cycle) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range c.Colors {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(colorName(v))
	}
	b.WriteByte(')')
	return b.String()
}

// enumerateCycles generates every valid cycle over n colors in a fixed
// deterministic order: grouped by the largest color present, then by
// length, then in decreasing lexicographic order of the raw sequence.
// Dependent tables and the search's candidate-iteration order all key off
// this ordering, so it must never change. The final cycle generated is
// (0 1 2 ... n-1), the canonical all-colors cycle.
func enumerateCycles(n int) []*Cycle {
	var cycles []*Cycle
	for maxColor := 2; maxColor < n; maxColor++ {
		for length := 3; length <= maxColor+1; length++ {
			seq := make([]Color, length)
			for i := range seq {
				seq[i] = maxColor
			}
			for {
				if cycleValid(seq, maxColor) {
					cs := make([]Color, length)
					copy(cs, seq)
					var members ColorSet
					for _, c := range cs {
						members = members.With(c)
					}
					cycles = append(cycles, &Cycle{
						ID:      len(cycles),
						Colors:  cs,
						Members: members,
					})
				}
				// Decrement the rightmost nonzero position and reset
				// everything to its right; stop once all positions are zero.
				i := length - 1
				for i >= 0 && seq[i] == 0 {
					i--
				}
				if i < 0 {
					break
				}
				seq[i]--
				for j := i + 1; j < length; j++ {
					seq[j] = maxColor
				}
			}
		}
	}
	return cycles
}

// cycleValid reports whether a raw sequence is a normalized cycle: it must
// contain maxColor (so each group introduces its largest color exactly
// once), contain no repeated color, and start at its smallest color.
func cycleValid(seq []Color, maxColor Color) bool {
	var seen ColorSet
	hasMax := false
	for i, c := range seq {
		if i > 0 && c < seq[0] {
			return false
		}
		if seen.Has(c) {
			return false
		}
		seen = seen.With(c)
		if c == maxColor {
			hasMax = true
		}
	}
	return hasMax
}
