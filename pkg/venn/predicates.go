package venn

import "fmt"

// SignaturePredicate enumerates degree signatures: one boundary length per
// central neighbor, chosen from N down to 3. Rounds 0..N-1 each open a
// choice point; round N checks the signature's total and canonicality,
// installs the root state, and advances. Non-canonical signatures are
// pruned here so each symmetry class is explored once.
type SignaturePredicate struct{}

func (SignaturePredicate) Name() string { return "signature" }

func (SignaturePredicate) Try(s *Search, round int) Outcome {
	g := s.Geo
	if round < g.N {
		return Choices(g.N - 2)
	}
	total := 0
	for _, d := range s.degrees {
		total += d
	}
	if total != g.TotalCentralDegree() {
		return Fail()
	}
	if g.CheckSignature(s.degrees) == NonCanonical {
		return Fail()
	}
	if err := s.SetupCentralFace(s.degrees); err != nil {
		return Fail()
	}
	return Advance()
}

func (SignaturePredicate) Retry(s *Search, round, choice int) Outcome {
	// Degrees are tried largest first. The write is deliberately not
	// trailed: each retry overwrites it, and round N reads the current
	// values.
	s.degrees[round] = s.Geo.N - choice
	return SameRound()
}

// FixedSignature installs one specific degree signature and advances, or
// fails when the root propagation rejects it. Zero entries leave the
// corresponding neighbor unconstrained. Used to search a single signature.
type FixedSignature struct {
	Degrees []int
}

func (FixedSignature) Name() string { return "fixed-signature" }

func (p FixedSignature) Try(s *Search, round int) Outcome {
	if err := s.SetupCentralFace(p.Degrees); err != nil {
		return Fail()
	}
	return Advance()
}

func (FixedSignature) Retry(*Search, int, int) Outcome {
	return Fail()
}

// FacePredicate assigns cycles to faces one round at a time. Each round
// picks the unassigned face with the fewest candidates (lowest identifier
// on ties) and opens one choice per candidate; each retry assigns the next
// candidate in ascending id order and propagates. When no unassigned face
// remains the ring structure is validated and the predicate advances.
type FacePredicate struct {
	faces []ColorSet
}

// NewFacePredicate returns a face predicate sized for geometry g.
func NewFacePredicate(g *Geometry) *FacePredicate {
	return &FacePredicate{faces: make([]ColorSet, g.NFaces)}
}

func (*FacePredicate) Name() string { return "face" }

func (p *FacePredicate) Try(s *Search, round int) Outcome {
	g := s.Geo
	face := ColorSet(0)
	best := -1
	for fi := 0; fi < g.NFaces; fi++ {
		f := ColorSet(fi)
		if s.cursor(f) != 0 {
			continue
		}
		if n := s.CandidateCount(f); best < 0 || n < best {
			face, best = f, n
		}
	}
	if best < 0 {
		if !s.ValidateRings() {
			return Fail()
		}
		return Advance()
	}
	p.faces[round] = face
	// Trailed write below the frame's checkpoint: popping the frame
	// restores the face to unassigned, erasing the untrailed cursor the
	// retries leave behind.
	s.Trail.Set(faceBase(face)+fcCycle, 0)
	if best == 0 {
		return Fail()
	}
	return Choices(best)
}

func (p *FacePredicate) Retry(s *Search, round, choice int) Outcome {
	face := p.faces[round]
	cands := s.Candidates(face)
	var next int
	if cur := s.cursor(face); cur == 0 {
		next = cands.First()
	} else {
		next = cands.NextAfter(int(cur) - 1)
	}
	if next < 0 {
		return Fail()
	}
	s.setCursor(face, uint64(next+1))
	if err := s.PropagateAssignment(face, next); err != nil {
		return Fail()
	}
	return SameRound()
}

// CanonicalSolutionPredicate prunes fully assigned arrangements that are
// not the greatest member of their symmetry orbit, and counts the
// equivocal ones that survive.
type CanonicalSolutionPredicate struct{}

func (CanonicalSolutionPredicate) Name() string { return "canonical-solution" }

func (CanonicalSolutionPredicate) Try(s *Search, round int) Outcome {
	switch s.SolutionCanonicality() {
	case NonCanonical:
		return Fail()
	case Equivocal:
		s.Stats.Counts[CountEquivocal]++
	}
	return Advance()
}

func (CanonicalSolutionPredicate) Retry(*Search, int, int) Outcome {
	return Fail()
}

// Count names used by the standard pipelines.
const (
	CountSignatures = "signatures"
	CountSolutions  = "solutions"
	CountEquivocal  = "equivocal"
)

// CountPredicate increments a named counter and advances. Placed after a
// stage, it tallies how many branches reach past it.
type CountPredicate struct {
	Counter string
	// Each reports every counted state, when set.
	Each func(s *Search)
}

func (p CountPredicate) Name() string { return fmt.Sprintf("count(%s)", p.Counter) }

func (p CountPredicate) Try(s *Search, round int) Outcome {
	s.Stats.Counts[p.Counter]++
	if p.Each != nil {
		p.Each(s)
	}
	return Advance()
}

func (CountPredicate) Retry(*Search, int, int) Outcome {
	return Fail()
}

// failPredicate terminates a pipeline: rejecting every branch forces the
// engine to backtrack through the whole tree, so the counters upstream see
// every state exactly once.
type failPredicate struct{}

func (failPredicate) Name() string { return "fail" }

func (failPredicate) Try(*Search, int) Outcome { return Fail() }

func (failPredicate) Retry(*Search, int, int) Outcome { return Fail() }
