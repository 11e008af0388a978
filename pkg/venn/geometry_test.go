package venn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeometryBounds(t *testing.T) {
	for n := MinColors; n <= MaxColors; n++ {
		g, err := NewGeometry(n)
		require.NoError(t, err)
		assert.Equal(t, 1<<n, g.NFaces)
	}
	for _, n := range []int{0, 2, 7} {
		_, err := NewGeometry(n)
		assert.Error(t, err, "n=%d", n)
	}
}

func TestTotalCentralDegree(t *testing.T) {
	g5, err := NewGeometry(5)
	require.NoError(t, err)
	assert.Equal(t, 20, g5.TotalCentralDegree())

	g6, err := NewGeometry(6)
	require.NoError(t, err)
	assert.Equal(t, 27, g6.TotalCentralDegree())
}

func TestPairAndTripleTables(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)
	for x := 0; x < g.N; x++ {
		for y := 0; y < g.N; y++ {
			set := g.pairs[x][y]
			for id := set.First(); id >= 0; id = set.NextAfter(id) {
				assert.True(t, g.Cycles[id].HasEdge(x, y))
			}
			if x == y {
				assert.True(t, set.IsEmpty())
			}
		}
	}
	// Spot check a triple: every member must contain the run x,y,z.
	set := g.triples[0][2][4]
	assert.False(t, set.IsEmpty())
	for id := set.First(); id >= 0; id = set.NextAfter(id) {
		c := g.Cycles[id]
		found := false
		for i := range c.Colors {
			if c.At(i) == 0 && c.At(i+1) == 2 && c.At(i+2) == 4 {
				found = true
			}
		}
		assert.True(t, found, "cycle %s", c)
	}
}

func TestOmissionTables(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)
	for x := 0; x < g.N; x++ {
		set := g.omitColor[x]
		for id := set.First(); id >= 0; id = set.NextAfter(id) {
			assert.False(t, g.Cycles[id].Members.Has(x))
		}
		// Complement must be exactly the cycles containing x.
		for _, c := range g.Cycles {
			assert.Equal(t, !c.Members.Has(x), set.Has(c.ID))
		}
	}
	for x := 0; x < g.N; x++ {
		for y := x + 1; y < g.N; y++ {
			set := g.omitEdge[x][y]
			for _, c := range g.Cycles {
				assert.Equal(t, !c.HasEdge(x, y), set.Has(c.ID))
			}
		}
	}
}

func TestByLengthPartition(t *testing.T) {
	g, err := NewGeometry(6)
	require.NoError(t, err)
	total := 0
	for k := 3; k <= g.N; k++ {
		total += g.byLength[k].Count()
		for id := g.byLength[k].First(); id >= 0; id = g.byLength[k].NextAfter(id) {
			assert.Equal(t, k, g.Cycles[id].Len())
		}
	}
	assert.Equal(t, g.NCycles(), total)
}

func TestDirectionTables(t *testing.T) {
	g, err := NewGeometry(4)
	require.NoError(t, err)
	id := g.CanonicalInnerCycle()
	c := g.Cycles[id]
	for i := range c.Colors {
		x, y := c.At(i), c.At(i+1)
		assert.True(t, g.sameDir[id][i].Equal(g.pairs[x][y]))
		assert.True(t, g.oppDir[id][i].Equal(g.triples[y][x][c.At(i-1)]))
	}
}

func TestRingStep(t *testing.T) {
	g, err := NewGeometry(3)
	require.NoError(t, err)
	inner := g.InnerFace() // abc
	id := g.CanonicalInnerCycle()
	c := g.Cycles[id] // (a b c)

	// Inner face: every transition is inside-to-inside, no ring step.
	assert.Equal(t, -1, ringStep(inner, c, true))

	// Face ab with cycle (a b c): b inside, c outside gives the unique
	// inside-to-outside transition, landing on face ac.
	ab := ColorSet(0).With(0).With(1)
	ac := ColorSet(0).With(0).With(2)
	assert.Equal(t, int(ac), ringStep(ab, c, true))
	// The reverse transition comes from c outside to a inside: face bc.
	bc := ColorSet(0).With(1).With(2)
	assert.Equal(t, int(bc), ringStep(ab, c, false))
}

func TestSequenceOrder(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)
	require.Len(t, g.seqOrder, g.NFaces)

	// Inner face first, then its neighbors in ascending color order.
	assert.Equal(t, g.InnerFace(), g.seqOrder[0])
	for c := 0; c < g.N; c++ {
		assert.Equal(t, g.InnerFace().Without(c), g.seqOrder[1+c])
	}
	// Remaining faces by decreasing size; the outer face comes last.
	for i := g.N + 2; i < g.NFaces; i++ {
		assert.LessOrEqual(t, g.seqOrder[i].Count(), g.seqOrder[i-1].Count())
	}
	assert.Equal(t, ColorSet(0), g.seqOrder[g.NFaces-1])

	// invSeqOrder inverts.
	for i, f := range g.seqOrder {
		assert.Equal(t, i, g.invSeqOrder[f])
	}
}

func TestDihedralGroup(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)
	require.Len(t, g.perms, 2*g.N)

	unique := map[string]bool{}
	for _, perm := range g.perms {
		used := make([]bool, g.N)
		key := ""
		for _, v := range perm {
			require.False(t, used[v])
			used[v] = true
			key += string(rune('0' + v))
		}
		assert.False(t, unique[key], "duplicate permutation %v", perm)
		unique[key] = true
	}
	// Identity is the zeroth rotation.
	assert.Equal(t, []int{0, 1, 2, 3, 4}, g.perms[0])
}

func TestPermuteColorSet(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)
	rot1 := g.perms[1] // i -> i+1 mod 5
	s := ColorSet(0).With(0).With(4)
	assert.Equal(t, ColorSet(0).With(1).With(0), permuteColorSet(s, rot1))
}

func TestColorSetOps(t *testing.T) {
	s := ColorSet(0).With(0).With(2).With(3)
	assert.Equal(t, "acd", s.String())
	assert.Equal(t, 3, s.Count())
	assert.True(t, s.Has(2))
	assert.False(t, s.Has(1))
	assert.Equal(t, "ad", s.Without(2).String())
	assert.Equal(t, "-", ColorSet(0).String())
	assert.Equal(t, s.With(1), s.Toggle(1))
	assert.Equal(t, s.Without(0), s.Toggle(0))
}

func TestInitialCandidatesAreMonotone(t *testing.T) {
	g, err := NewGeometry(4)
	require.NoError(t, err)
	for f := 0; f < g.NFaces; f++ {
		face := ColorSet(f)
		want := 2
		if face == 0 || face == g.InnerFace() {
			want = 0
		}
		set := g.InitialCandidates(face)
		require.False(t, set.IsEmpty(), "face %s", face)
		for id := set.First(); id >= 0; id = set.NextAfter(id) {
			c := g.Cycles[id]
			transitions := 0
			for i := range c.Colors {
				if face.Has(c.At(i)) != face.Has(c.At(i+1)) {
					transitions++
				}
			}
			assert.Equal(t, want, transitions, "face %s cycle %s", face, c)
		}
	}
}

func TestPermuteCycle(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)

	identity := g.perms[0]
	for _, c := range g.Cycles {
		assert.Equal(t, c.ID, g.permuteCycle(c.ID, identity))
	}

	rot1 := g.perms[1] // i -> i+1 mod 5
	inner := g.CanonicalInnerCycle()
	assert.Equal(t, inner, g.permuteCycle(inner, rot1))
	assert.Equal(t, g.idBySeq["bcd"], g.permuteCycle(g.idBySeq["abc"], rot1))
}
