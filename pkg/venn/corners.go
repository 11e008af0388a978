package venn

// checkFaceVertices accounts for the crossing points an assignment pins
// down. Each consecutive color pair of the cycle is one crossing on the
// face's boundary, shared with the three neighboring quadrant faces; the
// arcs terminating there are wired into edge links even on faces whose own
// cycle is still open. A crossing is counted against the pair's limit once
// no matter which of its four quadrants reaches it first.
func (s *Search) checkFaceVertices(face ColorSet, c *Cycle) error {
	g := s.Geo
	for i := range c.Colors {
		x, y := c.At(i), c.At(i+1)
		outside := face.Without(x).Without(y)
		// All four faces around a crossing derive the same identity. A
		// face holding both curves or neither sees the pair in cycle
		// order; a face holding exactly one sees it reversed.
		p, q := x, y
		if face.Has(x) != face.Has(y) {
			p, q = y, x
		}

		fx := face.Toggle(x)
		fy := face.Toggle(y)
		fxy := fx.Toggle(y)
		// The four arcs ending at this crossing, one per quadrant: the
		// assigned face's x-arc continues across y; the diagonal quadrant
		// runs the same direction; the side quadrants run the reverse.
		quads := [4]struct {
			owner ColorSet
			col   Color
			next  ColorSet
			other Color
		}{
			{face, x, fy, y},
			{fxy, x, fx, y},
			{fx, y, face, x},
			{fy, y, fxy, x},
		}
		var wired [4]struct {
			owner ColorSet
			col   Color
		}
		nWired := 0
		for _, qd := range quads {
			if _, _, ok := s.edgeLink(qd.owner, qd.col); ok {
				// Already wired by a neighboring assignment; the identity
				// was checked when the earlier propagation derived it.
				continue
			}
			s.setEdgeLink(qd.owner, qd.col, qd.next, qd.other)
			side := 1
			if qd.owner.Has(qd.col) {
				side = 0
			}
			cell := s.edgeCountCell(side, qd.col)
			s.Trail.Set(cell, s.Trail.Get(cell)+1)
			wired[nWired] = struct {
				owner ColorSet
				col   Color
			}{qd.owner, qd.col}
			nWired++
		}

		vcell := s.vertexCell(outside, p, q)
		if s.Trail.Get(vcell) == 0 {
			s.Trail.Set(vcell, 1)
			cc := s.crossingCell(x, y)
			n := s.Trail.Get(cc) + 1
			if n > maxCrossingsPerPair {
				return ErrCrossingLimit
			}
			s.Trail.Set(cc, n)
		}

		for w := 0; w < nWired; w++ {
			if err := s.edgeCurveCheck(wired[w].owner, wired[w].col); err != nil {
				return err
			}
		}
	}

	// Corner structure only constrains five curves and up; smaller
	// arrangements draw every curve convex.
	if g.N >= 5 {
		return s.checkCornersFromCentral()
	}
	return nil
}

// walkLoop follows edge links of curve x starting at face. It reports
// whether the walk closed back on its start and how many edges it covered.
func (s *Search) walkLoop(face ColorSet, x Color) (closed bool, length int) {
	limit := s.Geo.NFaces*2 + 4
	f := face
	for {
		next, _, ok := s.edgeLink(f, x)
		if !ok {
			return false, length
		}
		length++
		if length > limit {
			return false, length
		}
		f = next
		if f == face {
			return true, length
		}
	}
}

// edgeCurveCheck runs after wiring one edge of curve x. A closed walk
// through the new edge that covers fewer edges than have been wired on its
// side means the curve has split into separate loops. A closed walk
// covering all of them completes the curve.
func (s *Search) edgeCurveCheck(face ColorSet, x Color) error {
	if s.Trail.Get(s.colorCheckedCell(x)) != 0 {
		return nil
	}
	closed, length := s.walkLoop(face, x)
	if !closed {
		return nil
	}
	side := 1
	if face.Has(x) {
		side = 0
	}
	if uint64(length) < s.Trail.Get(s.edgeCountCell(side, x)) {
		return ErrDisconnectedCurve
	}
	s.markCurveComplete(x)
	return nil
}

// markCurveComplete flags curve x's first closure on this branch and queues
// it for completed-color removal at the top of the propagation.
func (s *Search) markCurveComplete(x Color) {
	if s.Trail.Get(s.colorCheckedCell(x)) == 0 {
		s.Trail.Set(s.colorCheckedCell(x), 1)
		s.colorsCompleted = s.colorsCompleted.With(x)
	}
}

// cornerWalk follows curve x's edge links from start, counting corners. A
// corner is detected when the walk re-crosses a curve it has already
// crossed since the last corner without any intervening exit: the curve
// must have turned back on itself. Exceeding the corner limit rejects the
// branch even mid-walk; an interrupted walk otherwise judges nothing and
// returns ok=false.
func (s *Search) cornerWalk(start ColorSet, x Color) (corners int, ok bool, err error) {
	g := s.Geo
	var out, passed ColorSet
	for c := 0; c < g.N; c++ {
		if !start.Has(c) && c != x {
			out = out.With(c)
		}
	}
	f := start
	steps := 0
	for {
		next, other, wired := s.edgeLink(f, x)
		if !wired {
			return corners, false, nil
		}
		if out.Has(other) {
			out = out.Without(other)
			if passed.Has(other) {
				passed = 0
				corners++
				if corners > maxCorners {
					return corners, false, ErrTooManyCorners
				}
			}
		} else {
			out = out.With(other)
			passed = passed.With(other)
		}
		f = next
		steps++
		if steps > g.NFaces*2+4 {
			return corners, false, nil
		}
		if f == start {
			return corners, true, nil
		}
	}
}

// checkCornersFromCentral walks every curve with a wired edge on the
// innermost face. A closed walk proves the curve complete; its corners
// were counted along the way.
func (s *Search) checkCornersFromCentral() error {
	g := s.Geo
	inner := g.InnerFace()
	for x := 0; x < g.N; x++ {
		if _, _, ok := s.edgeLink(inner, x); !ok {
			continue
		}
		_, closed, err := s.cornerWalk(inner, x)
		if err != nil {
			return err
		}
		if closed {
			s.markCurveComplete(x)
		}
	}
	return nil
}
