package venn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignaturePredicateChoices(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)
	s := NewSearch(g, SearchConfig{})
	p := SignaturePredicate{}

	for round := 0; round < g.N; round++ {
		assert.Equal(t, Choices(g.N-2), p.Try(s, round))
	}

	// Degrees run from N down to 3, largest choice first.
	assert.Equal(t, SameRound(), p.Retry(s, 0, 0))
	assert.Equal(t, 5, s.degrees[0])
	assert.Equal(t, SameRound(), p.Retry(s, 1, 2))
	assert.Equal(t, 3, s.degrees[1])
}

func TestSignaturePredicateFinalRound(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)

	// Wrong total.
	s := NewSearch(g, SearchConfig{})
	copy(s.degrees, []int{3, 3, 3, 3, 3})
	assert.Equal(t, Fail(), SignaturePredicate{}.Try(s, g.N))

	// Right total, non-canonical ordering.
	s = NewSearch(g, SearchConfig{})
	copy(s.degrees, []int{3, 3, 4, 5, 5})
	assert.Equal(t, Fail(), SignaturePredicate{}.Try(s, g.N))

	// Canonical and satisfiable.
	s = NewSearch(g, SearchConfig{})
	copy(s.degrees, []int{5, 5, 4, 3, 3})
	assert.Equal(t, Advance(), SignaturePredicate{}.Try(s, g.N))
	_, ok := s.AssignedCycle(g.InnerFace())
	assert.True(t, ok)
}

func TestFixedSignaturePredicate(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)

	s := NewSearch(g, SearchConfig{})
	assert.Equal(t, Advance(), FixedSignature{Degrees: []int{5, 5, 4, 3, 3}}.Try(s, 0))

	s = NewSearch(g, SearchConfig{})
	assert.Equal(t, Fail(), FixedSignature{Degrees: []int{3, 3, 3, 3, 3}}.Try(s, 0))
}

func TestFacePredicatePicksFewestCandidates(t *testing.T) {
	g, err := NewGeometry(4)
	require.NoError(t, err)
	s := NewSearch(g, SearchConfig{})

	target := ColorSet(0).With(1).With(2)
	s.setCandidates(target, g.byLength[3])

	p := NewFacePredicate(g)
	out := p.Try(s, 0)
	assert.Equal(t, Choices(g.byLength[3].Count()), out)
	assert.Equal(t, target, p.faces[0])
}

func TestFacePredicateCursorWalksCandidates(t *testing.T) {
	g, err := NewGeometry(3)
	require.NoError(t, err)
	s := NewSearch(g, SearchConfig{})
	p := NewFacePredicate(g)

	out := p.Try(s, 0)
	require.Equal(t, Choices(g.NCycles()), out)
	face := p.faces[0]

	require.Equal(t, SameRound(), p.Retry(s, 0, 0))
	first, ok := s.AssignedCycle(face)
	require.True(t, ok)
	assert.Equal(t, 0, first)

	// A fresh search replays the second alternative the way the engine
	// would after a rewind: the cursor survives, the candidates return.
	s2 := NewSearch(g, SearchConfig{})
	p2 := NewFacePredicate(g)
	require.Equal(t, Choices(g.NCycles()), p2.Try(s2, 0))
	f2 := p2.faces[0]
	mark := s2.Trail.Mark()
	require.Equal(t, SameRound(), p2.Retry(s2, 0, 0))
	s2.Trail.RewindTo(mark)
	require.Equal(t, SameRound(), p2.Retry(s2, 0, 1))
	second, ok := s2.AssignedCycle(f2)
	require.True(t, ok)
	assert.Equal(t, 1, second)
}

func TestCountPredicate(t *testing.T) {
	g, err := NewGeometry(3)
	require.NoError(t, err)
	s := NewSearch(g, SearchConfig{})

	var observed int
	p := CountPredicate{Counter: "x", Each: func(*Search) { observed++ }}
	assert.Equal(t, Advance(), p.Try(s, 0))
	assert.Equal(t, Advance(), p.Try(s, 0))
	assert.Equal(t, uint64(2), s.Stats.Counts["x"])
	assert.Equal(t, 2, observed)
}

func TestStatsAdd(t *testing.T) {
	a := NewStats()
	a.Tries = 2
	a.Counts["solutions"] = 3
	a.Conflicts["crossing_limit"] = 1

	b := NewStats()
	b.Tries = 5
	b.Counts["solutions"] = 4
	b.Conflicts["crossing_limit"] = 2

	a.Add(b)
	assert.Equal(t, uint64(7), a.Tries)
	assert.Equal(t, uint64(7), a.Counts["solutions"])
	assert.Equal(t, uint64(3), a.Conflicts["crossing_limit"])
}
