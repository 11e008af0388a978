package venn

import (
	"fmt"
	"sort"
)

// MinColors and MaxColors bound the supported arrangement sizes. Three
// curves is the smallest arrangement with interior crossing structure; six
// is the largest whose cycle space fits a CycleSet.
const (
	MinColors = 3
	MaxColors = 6
)

// Geometry holds everything about an arrangement of n curves that does not
// change during search: the cycle enumeration, the constraint tables the
// propagator intersects against, the ring-adjacency tables, and the
// dihedral symmetry group used for canonicality checks.
//
// A Geometry is immutable once built and safe to share across concurrent
// searches.
type Geometry struct {
	// N is the number of curves.
	N int
	// NFaces is 2^N, the number of faces including the outer face 0.
	NFaces int
	// Cycles enumerates every cycle over N colors in the fixed order
	// produced by enumerateCycles. The last entry is the canonical
	// all-colors cycle assigned to the innermost face.
	Cycles []*Cycle

	// pairs[x][y] holds the cycles containing x immediately followed by y.
	pairs [][]CycleSet
	// triples[x][y][z] holds the cycles containing the consecutive run
	// x, y, z (wrapping).
	triples [][][]CycleSet
	// omitColor[x] holds the cycles that do not contain color x.
	omitColor []CycleSet
	// omitEdge[x][y], for x < y, holds the cycles that do not contain the
	// directed pair x followed by y.
	omitEdge [][]CycleSet
	// byLength[k] holds the cycles of exactly k colors.
	byLength []CycleSet

	// sameDir[id][i] constrains the face across both curves of the cycle's
	// i-th edge: it must traverse that edge in the same direction.
	sameDir [][]CycleSet
	// oppDir[id][i] constrains the face across the first curve of the
	// cycle's i-th edge: it sees the edge reversed, preceded by the
	// previous color.
	oppDir [][]CycleSet

	// nextRing[f][id] and prevRing[f][id] give the neighboring face along
	// the ring of equal-size faces when face f is assigned cycle id, or -1
	// when the assignment induces no unique transition.
	nextRing [][]int
	prevRing [][]int

	// perms is the dihedral group D_N: N rotations followed by N
	// reflections, each a permutation of colors.
	perms [][]int

	// seqOrder lists every face in canonical reporting order: the inner
	// face first, then its N neighbors, then the rest by decreasing color
	// count and decreasing identifier. invSeqOrder inverts it.
	seqOrder    []ColorSet
	invSeqOrder []int

	// monotone[f] holds the cycles whose membership sequence relative to
	// face f has exactly two transitions, the boundary shape of a middle
	// face in a monotone arrangement. The inner and outer faces instead
	// admit the cycles with no transitions at all.
	monotone []CycleSet

	// idBySeq resolves a normalized color sequence back to its cycle id.
	idBySeq map[string]int

	// binom[k] is C(N, k).
	binom []int
}

// NewGeometry builds the immutable tables for an arrangement of n curves.
// n must be between MinColors and MaxColors.
func NewGeometry(n int) (*Geometry, error) {
	if n < MinColors || n > MaxColors {
		return nil, fmt.Errorf("venn: unsupported curve count %d (want %d..%d)", n, MinColors, MaxColors)
	}
	g := &Geometry{
		N:      n,
		NFaces: 1 << uint(n),
		Cycles: enumerateCycles(n),
	}
	g.buildMembershipTables()
	g.buildDirectionTables()
	g.buildRingTables()
	g.buildSymmetryGroup()
	g.buildSequenceOrder()
	g.buildMonotoneTables()
	g.buildSequenceIndex()
	g.binom = make([]int, n+1)
	for k := 0; k <= n; k++ {
		g.binom[k] = binomial(n, k)
	}
	return g, nil
}

// NCycles returns the number of cycles over N colors.
func (g *Geometry) NCycles() int {
	return len(g.Cycles)
}

// InnerFace returns the identifier of the innermost face, bounded by every
// curve.
func (g *Geometry) InnerFace() ColorSet {
	return ColorSet(g.NFaces - 1)
}

// CanonicalInnerCycle returns the id of the all-colors cycle
// (0 1 ... N-1), the fixed assignment of the innermost face.
func (g *Geometry) CanonicalInnerCycle() int {
	return len(g.Cycles) - 1
}

// TotalCentralDegree returns the required sum of the boundary lengths of
// the inner face's N neighbors: each of the N faces with N-1 colors is
// counted twice and each face with N-2 colors once.
func (g *Geometry) TotalCentralDegree() int {
	return 2*g.binom[g.N-1] + g.binom[g.N-2]
}

func (g *Geometry) buildMembershipTables() {
	n := g.N
	g.pairs = make([][]CycleSet, n)
	g.triples = make([][][]CycleSet, n)
	g.omitColor = make([]CycleSet, n)
	g.omitEdge = make([][]CycleSet, n)
	for x := 0; x < n; x++ {
		g.pairs[x] = make([]CycleSet, n)
		g.omitEdge[x] = make([]CycleSet, n)
		g.triples[x] = make([][]CycleSet, n)
		for y := 0; y < n; y++ {
			g.triples[x][y] = make([]CycleSet, n)
		}
	}
	g.byLength = make([]CycleSet, n+1)

	for _, c := range g.Cycles {
		g.byLength[c.Len()] = g.byLength[c.Len()].Add(c.ID)
		for i := range c.Colors {
			x, y, z := c.At(i), c.At(i+1), c.At(i+2)
			g.pairs[x][y] = g.pairs[x][y].Add(c.ID)
			g.triples[x][y][z] = g.triples[x][y][z].Add(c.ID)
		}
	}
	for x := 0; x < n; x++ {
		for _, c := range g.Cycles {
			if !c.Members.Has(x) {
				g.omitColor[x] = g.omitColor[x].Add(c.ID)
			}
		}
	}
	all := allCycles(len(g.Cycles))
	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			for id := all.First(); id >= 0; id = all.NextAfter(id) {
				if !g.Cycles[id].HasEdge(x, y) {
					g.omitEdge[x][y] = g.omitEdge[x][y].Add(id)
				}
			}
		}
	}
}

func (g *Geometry) buildDirectionTables() {
	g.sameDir = make([][]CycleSet, len(g.Cycles))
	g.oppDir = make([][]CycleSet, len(g.Cycles))
	for _, c := range g.Cycles {
		same := make([]CycleSet, c.Len())
		opp := make([]CycleSet, c.Len())
		for i := range c.Colors {
			x, y := c.At(i), c.At(i+1)
			// The face across both x and y shares the edge sequence, so it
			// traverses x then y as well. The face across x alone sees the
			// crossing from the other side: y then x, with the previous
			// color following.
			same[i] = g.pairs[x][y]
			opp[i] = g.triples[y][x][c.At(i-1)]
		}
		g.sameDir[c.ID] = same
		g.oppDir[c.ID] = opp
	}
}

func (g *Geometry) buildRingTables() {
	g.nextRing = make([][]int, g.NFaces)
	g.prevRing = make([][]int, g.NFaces)
	for f := 0; f < g.NFaces; f++ {
		g.nextRing[f] = make([]int, len(g.Cycles))
		g.prevRing[f] = make([]int, len(g.Cycles))
		face := ColorSet(f)
		for _, c := range g.Cycles {
			g.nextRing[f][c.ID] = ringStep(face, c, true)
			g.prevRing[f][c.ID] = ringStep(face, c, false)
		}
	}
}

// ringStep finds the unique boundary transition of face across cycle c:
// inside-to-outside for the next pointer, outside-to-inside for the
// previous. Crossing both curves of the transition edge lands on the
// neighboring face with the same number of colors. Returns -1 when the
// transition is absent or ambiguous.
func ringStep(face ColorSet, c *Cycle, inToOut bool) int {
	found := -1
	for i := range c.Colors {
		x, y := c.At(i), c.At(i+1)
		in, out := face.Has(x), face.Has(y)
		if inToOut && in && !out || !inToOut && !in && out {
			if found >= 0 {
				return -1
			}
			found = int(face.Toggle(x).Toggle(y))
		}
	}
	return found
}

func (g *Geometry) buildSymmetryGroup() {
	n := g.N
	g.perms = make([][]int, 2*n)
	for i := 0; i < n; i++ {
		rot := make([]int, n)
		ref := make([]int, n)
		for j := 0; j < n; j++ {
			rot[j] = (i + j) % n
			ref[j] = (n - 1 - j + i) % n
		}
		g.perms[i] = rot
		g.perms[n+i] = ref
	}
}

func (g *Geometry) buildSequenceOrder() {
	inner := g.InnerFace()
	order := []ColorSet{inner}
	for c := 0; c < g.N; c++ {
		order = append(order, inner.Without(c))
	}
	var rest []ColorSet
	for f := 0; f < g.NFaces; f++ {
		face := ColorSet(f)
		if face == inner || (face.Count() == g.N-1) {
			continue
		}
		rest = append(rest, face)
	}
	sort.Slice(rest, func(i, j int) bool {
		ci, cj := rest[i].Count(), rest[j].Count()
		if ci != cj {
			return ci > cj
		}
		return rest[i] > rest[j]
	})
	order = append(order, rest...)

	g.seqOrder = order
	g.invSeqOrder = make([]int, g.NFaces)
	for i, f := range order {
		g.invSeqOrder[f] = i
	}
}

// buildMonotoneTables restricts each face's starting candidates to the
// cycles a monotone arrangement allows on its boundary. Walking around a
// middle face, the boundary curves switch between containing and not
// containing the face exactly twice. Only the inner and outer faces are
// bounded entirely by curves on one side.
func (g *Geometry) buildMonotoneTables() {
	g.monotone = make([]CycleSet, g.NFaces)
	inner := g.InnerFace()
	for fi := 0; fi < g.NFaces; fi++ {
		face := ColorSet(fi)
		want := 2
		if face == 0 || face == inner {
			want = 0
		}
		for _, c := range g.Cycles {
			t := 0
			for i := range c.Colors {
				if face.Has(c.At(i)) != face.Has(c.At(i+1)) {
					t++
				}
			}
			if t == want {
				g.monotone[fi] = g.monotone[fi].Add(c.ID)
			}
		}
	}
}

// InitialCandidates returns the starting candidate set of face f.
func (g *Geometry) InitialCandidates(f ColorSet) CycleSet {
	return g.monotone[f]
}

func (g *Geometry) buildSequenceIndex() {
	g.idBySeq = make(map[string]int, len(g.Cycles))
	for _, c := range g.Cycles {
		g.idBySeq[seqKey(c.Colors)] = c.ID
	}
}

func seqKey(colors []Color) string {
	b := make([]byte, len(colors))
	for i, c := range colors {
		b[i] = byte('a' + c)
	}
	return string(b)
}

// permuteCycle maps each color of cycle id through perm and renormalizes
// the result to start at its smallest color.
func (g *Geometry) permuteCycle(id int, perm []int) int {
	src := g.Cycles[id].Colors
	out := make([]Color, len(src))
	min := 0
	for i, c := range src {
		out[i] = perm[c]
		if out[i] < out[min] {
			min = i
		}
	}
	rotated := make([]Color, 0, len(out))
	rotated = append(rotated, out[min:]...)
	rotated = append(rotated, out[:min]...)
	return g.idBySeq[seqKey(rotated)]
}

// permuteColorSet maps each member color through perm.
func permuteColorSet(s ColorSet, perm []int) ColorSet {
	var out ColorSet
	for c, pc := range perm {
		if s.Has(c) {
			out = out.With(pc)
		}
	}
	return out
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 0; i < k; i++ {
		r = r * (n - i) / (i + 1)
	}
	return r
}
