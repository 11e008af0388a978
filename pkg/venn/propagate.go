package venn

import "errors"

// Limits on propagation. A cascade nesting deeper than the depth limit, a
// curve pair crossing more than six times, or a curve turning more than
// three corners all reject the branch rather than aborting the run.
const (
	maxPropagationDepth = 128
	maxCrossingsPerPair = 6
	maxCorners          = 3
)

// Propagation failures. Each rejects the current branch; the engine
// backtracks and tries the next alternative.
var (
	ErrNoMatchingCycles       = errors.New("venn: no candidate cycle satisfies the constraints")
	ErrConflictingConstraints = errors.New("venn: assigned cycle excluded by a new constraint")
	ErrDepthExceeded          = errors.New("venn: propagation cascade exceeded depth limit")
	ErrCrossingLimit          = errors.New("venn: curve pair crosses too many times")
	ErrTooManyCorners         = errors.New("venn: curve turns too many corners")
	ErrDisconnectedCurve      = errors.New("venn: completed curve excludes a face still requiring it")
)

// PropagateAssignment applies the consequences of assigning cycle id to
// face. The caller has already written the assignment cell; this installs
// the singleton candidate set, checks the crossing and corner geometry,
// and restricts every face the assignment constrains. Restrictions that
// collapse a face to a single candidate assign it and propagate
// immediately, so one choice can cascade into many assignments before the
// predicate sees control again.
func (s *Search) PropagateAssignment(face ColorSet, id int) error {
	err := s.propagateCycle(face, id, 0)
	if err != nil {
		s.Stats.Conflicts[failureName(err)]++
	}
	return err
}

// propagateCycle applies one assignment and recurses into every assignment
// it forces. The top-level call additionally runs completed-curve removal
// for the colors whose walks first closed anywhere in the cascade.
func (s *Search) propagateCycle(face ColorSet, id int, depth int) error {
	if depth > maxPropagationDepth {
		return ErrDepthExceeded
	}
	if depth == 0 {
		s.colorsCompleted = 0
	}
	g := s.Geo
	single := CycleSet{}.Add(id)
	if !s.Candidates(face).Equal(single) {
		s.setCandidates(face, single)
	}
	s.Stats.Propagations++

	if err := s.checkFaceVertices(face, g.Cycles[id]); err != nil {
		return err
	}

	if next := g.nextRing[face][id]; next >= 0 {
		if _, ok := s.RingNext(face); !ok {
			s.setRingNext(face, ColorSet(next))
		}
	}
	if prev := g.prevRing[face][id]; prev >= 0 {
		if _, ok := s.RingPrev(face); !ok {
			s.setRingPrev(face, ColorSet(prev))
		}
	}

	if err := s.propagateEdgeAdjacency(face, id, depth); err != nil {
		return err
	}
	if err := s.propagateNonAdjacent(face, id, depth); err != nil {
		return err
	}
	if err := s.propagateNonVertexAdjacent(face, id, depth); err != nil {
		return err
	}

	if depth == 0 && s.colorsCompleted != 0 {
		for c := 0; c < g.N; c++ {
			if s.colorsCompleted.Has(c) {
				if err := s.removeCompletedColor(c); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// propagateEdgeAdjacency constrains the faces that share each crossing of
// the assigned cycle. For the cycle's i-th edge (x then y), the face across
// both curves traverses the same edge in the same direction; the face
// across x alone sees it reversed.
func (s *Search) propagateEdgeAdjacency(face ColorSet, id int, depth int) error {
	g := s.Geo
	c := g.Cycles[id]
	for i := range c.Colors {
		x, y := c.At(i), c.At(i+1)
		if err := s.restrict(face.Toggle(x).Toggle(y), g.sameDir[id][i], depth); err != nil {
			return err
		}
		if err := s.restrict(face.Toggle(x), g.oppDir[id][i], depth); err != nil {
			return err
		}
	}
	return nil
}

// propagateNonAdjacent constrains the neighbors across curves absent from
// the assigned cycle: those curves do not touch this face's boundary, so
// the neighbor across one of them cannot contain it either.
func (s *Search) propagateNonAdjacent(face ColorSet, id int, depth int) error {
	g := s.Geo
	members := g.Cycles[id].Members
	for x := 0; x < g.N; x++ {
		if members.Has(x) {
			continue
		}
		if err := s.restrict(face.Toggle(x), g.omitColor[x], depth); err != nil {
			return err
		}
	}
	return nil
}

// propagateNonVertexAdjacent constrains the diagonal neighbors across curve
// pairs that do not cross on this face's boundary: the face across both
// cannot traverse that crossing either.
func (s *Search) propagateNonVertexAdjacent(face ColorSet, id int, depth int) error {
	g := s.Geo
	c := g.Cycles[id]
	for x := 0; x < g.N; x++ {
		for y := x + 1; y < g.N; y++ {
			if c.HasEdge(x, y) {
				continue
			}
			if err := s.restrict(face.Toggle(x).Toggle(y), g.omitEdge[x][y], depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// restrict intersects a face's candidates with an allowed set. An assigned
// face only gets a consistency check. A face collapsing to one candidate is
// assigned and propagated immediately; collapsing to zero rejects the
// branch.
func (s *Search) restrict(face ColorSet, allowed CycleSet, depth int) error {
	if depth > maxPropagationDepth {
		return ErrDepthExceeded
	}
	if id, ok := s.AssignedCycle(face); ok {
		if !allowed.Has(id) {
			return ErrConflictingConstraints
		}
		return nil
	}
	cur := s.Candidates(face)
	next := cur.Intersect(allowed)
	if next.IsEmpty() {
		return ErrNoMatchingCycles
	}
	if !next.Equal(cur) {
		s.setCandidates(face, next)
		s.Stats.Propagations++
	}
	if id := next.First(); next.NextAfter(id) < 0 {
		s.assignCycle(face, id)
		return s.propagateCycle(face, id, depth+1)
	}
	return nil
}

// removeCompletedColor runs once a curve's walk first closes. The closed
// loop fixes exactly which faces the curve borders; every unassigned face
// with no wired edge of the curve is off it and loses all candidates
// containing the color. Any restriction failing here means the curve would
// need a second component.
func (s *Search) removeCompletedColor(x Color) error {
	g := s.Geo
	for fi := 0; fi < g.NFaces; fi++ {
		face := ColorSet(fi)
		if _, ok := s.AssignedCycle(face); ok {
			continue
		}
		if _, _, ok := s.edgeLink(face, x); ok {
			continue
		}
		if err := s.restrict(face, g.omitColor[x], 0); err != nil {
			return ErrDisconnectedCurve
		}
	}
	return nil
}

// SetupCentralFace installs the root state: each central neighbor is
// restricted to cycles of its chosen boundary length (zero meaning
// unconstrained), then the innermost face is fixed to the canonical
// all-colors cycle and propagated. degrees is indexed by the color the
// neighbor omits.
func (s *Search) SetupCentralFace(degrees []int) error {
	g := s.Geo
	copy(s.degrees, degrees)
	inner := g.InnerFace()
	for i, d := range degrees {
		if d == 0 {
			continue
		}
		if err := s.restrict(inner.Without(i), g.byLength[d], 0); err != nil {
			s.Stats.Conflicts[failureName(err)]++
			return err
		}
	}
	s.assignCycle(inner, g.CanonicalInnerCycle())
	if err := s.propagateCycle(inner, g.CanonicalInnerCycle(), 0); err != nil {
		s.Stats.Conflicts[failureName(err)]++
		s.log.Debug("central face setup rejected", "degrees", degrees, "cause", failureName(err))
		return err
	}
	return nil
}

// ValidateRings checks the global ring structure of a fully assigned
// arrangement: for each size class, the faces bounded by exactly m curves
// must form a single closed loop under the outgoing ring pointers.
func (s *Search) ValidateRings() bool {
	g := s.Geo
	for m := 1; m < g.N; m++ {
		expected := g.binom[m]
		start := ColorSet(0)
		found := false
		for fi := 0; fi < g.NFaces; fi++ {
			if ColorSet(fi).Count() == m {
				start = ColorSet(fi)
				found = true
				break
			}
		}
		if !found {
			return false
		}
		var visited uint64
		f := start
		steps := 0
		for {
			if visited&(1<<uint(f)) != 0 {
				return false
			}
			visited |= 1 << uint(f)
			steps++
			next, ok := s.RingNext(f)
			if !ok || steps > expected {
				return false
			}
			f = next
			if f == start {
				break
			}
		}
		if steps != expected {
			return false
		}
		for fi := 0; fi < g.NFaces; fi++ {
			if ColorSet(fi).Count() == m && visited&(1<<uint(fi)) == 0 {
				return false
			}
		}
	}
	return true
}

// failureName maps a propagation failure to its statistics key.
func failureName(err error) string {
	switch {
	case errors.Is(err, ErrNoMatchingCycles):
		return "no_matching_cycles"
	case errors.Is(err, ErrConflictingConstraints):
		return "conflicting_constraints"
	case errors.Is(err, ErrDepthExceeded):
		return "depth_exceeded"
	case errors.Is(err, ErrCrossingLimit):
		return "crossing_limit"
	case errors.Is(err, ErrTooManyCorners):
		return "too_many_corners"
	case errors.Is(err, ErrDisconnectedCurve):
		return "disconnected_curve"
	default:
		return "other"
	}
}
