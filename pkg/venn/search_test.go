package venn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateThreeCurves(t *testing.T) {
	g, err := NewGeometry(3)
	require.NoError(t, err)

	var solutions int
	stats, err := Enumerate(context.Background(), g, SearchConfig{}, func(s *Search) {
		solutions++
		for _, fa := range s.Assignments() {
			assert.NotNil(t, fa.Cycle, "face %s unassigned in solution", fa.Face)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Counts[CountSolutions])
	assert.Equal(t, 2, solutions)
}

func TestEnumerateFourCurves(t *testing.T) {
	g, err := NewGeometry(4)
	require.NoError(t, err)

	stats, err := Enumerate(context.Background(), g, SearchConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.Counts[CountSolutions])
	assert.Equal(t, uint64(0), stats.Counts[CountEquivocal])
}

func TestEnumerateFiveCurves(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)

	stats, err := Enumerate(context.Background(), g, SearchConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), stats.Counts[CountSolutions])
	assert.Equal(t, uint64(2), stats.Counts[CountEquivocal])
}

func TestEnumerateFiveCurveSignatures(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)

	cases := []struct {
		degrees   []int
		starts    uint64
		canonical uint64
		equivocal uint64
	}{
		{[]int{5, 5, 4, 3, 3}, 1, 6, 0},
		{[]int{3, 3, 3, 3, 3}, 0, 0, 0},
		{[]int{4, 4, 4, 4, 4}, 1, 0, 2},
		{[]int{5, 5, 3, 4, 3}, 0, 0, 0},
		{[]int{5, 4, 4, 4, 3}, 1, 4, 0},
		{[]int{5, 4, 4, 3, 4}, 1, 5, 0},
		// Passes root propagation but closes off before any complete
		// assignment.
		{[]int{5, 4, 5, 3, 3}, 1, 0, 0},
		{[]int{5, 4, 3, 5, 3}, 0, 0, 0},
	}
	for _, tc := range cases {
		stats, err := EnumerateSignature(context.Background(), g, tc.degrees, SearchConfig{}, nil)
		require.NoError(t, err, "degrees %v", tc.degrees)
		assert.Equal(t, tc.starts, stats.Counts[CountSignatures], "degrees %v", tc.degrees)
		assert.Equal(t, tc.canonical+tc.equivocal, stats.Counts[CountSolutions], "degrees %v", tc.degrees)
		assert.Equal(t, tc.equivocal, stats.Counts[CountEquivocal], "degrees %v", tc.degrees)
	}
}

func TestSweepMatchesFullEnumeration(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)

	total := NewStats()
	for _, sig := range g.CanonicalSignatures() {
		stats, err := EnumerateSignature(context.Background(), g, sig, SearchConfig{}, nil)
		require.NoError(t, err)
		total.Add(stats)
	}
	assert.Equal(t, uint64(17), total.Counts[CountSolutions])
	assert.Equal(t, uint64(2), total.Counts[CountEquivocal])
}

func TestEnumerateSweep(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)

	stats, err := EnumerateSweep(context.Background(), g, 4, SearchConfig{})
	require.NoError(t, err)
	assert.Equal(t, uint64(17), stats.Counts[CountSolutions])
	assert.Equal(t, uint64(2), stats.Counts[CountEquivocal])

	// No signature stage below five curves: the sweep degenerates to a
	// single search.
	g3, err := NewGeometry(3)
	require.NoError(t, err)
	stats, err = EnumerateSweep(context.Background(), g3, 2, SearchConfig{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Counts[CountSolutions])
}

func TestEnumerateSixCurves(t *testing.T) {
	if testing.Short() {
		t.Skip("full six-curve enumeration")
	}
	g, err := NewGeometry(6)
	require.NoError(t, err)

	stats, err := Enumerate(context.Background(), g, SearchConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(233), stats.Counts[CountSolutions])
	assert.Equal(t, uint64(39), stats.Counts[CountSignatures])
}

func TestEnumerateSixCurveSignatures(t *testing.T) {
	if testing.Short() {
		t.Skip("per-signature six-curve searches")
	}
	g, err := NewGeometry(6)
	require.NoError(t, err)

	cases := []struct {
		degrees   []int
		solutions uint64
	}{
		{[]int{6, 6, 4, 4, 4, 3}, 5},
		{[]int{6, 6, 4, 4, 3, 4}, 2},
		{[]int{6, 5, 5, 4, 4, 3}, 6},
	}
	for _, tc := range cases {
		stats, err := EnumerateSignature(context.Background(), g, tc.degrees, SearchConfig{}, nil)
		require.NoError(t, err, "degrees %v", tc.degrees)
		assert.Equal(t, uint64(1), stats.Counts[CountSignatures], "degrees %v", tc.degrees)
		assert.Equal(t, tc.solutions, stats.Counts[CountSolutions], "degrees %v", tc.degrees)
	}
}

func TestEnumerateCancellation(t *testing.T) {
	g, err := NewGeometry(5)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Enumerate(ctx, g, SearchConfig{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssignmentsOrder(t *testing.T) {
	g, err := NewGeometry(3)
	require.NoError(t, err)

	_, err = Enumerate(context.Background(), g, SearchConfig{}, func(s *Search) {
		fas := s.Assignments()
		require.Len(t, fas, g.NFaces)
		assert.Equal(t, g.InnerFace(), fas[0].Face)
		assert.Equal(t, ColorSet(0), fas[len(fas)-1].Face)
	})
	require.NoError(t, err)
}
