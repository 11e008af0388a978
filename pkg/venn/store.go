package venn

import (
	"io"
	"log/slog"
)

// Per-face cell layout within the arena. Each face owns a fixed stride of
// cells: the assigned cycle (encoded id+1, 0 meaning unassigned), the
// candidate count, the two ring pointers (encoded face+1, 0 meaning unset),
// and the candidate set's backing words.
const (
	fcCycle    = 0
	fcCount    = 1
	fcNext     = 2
	fcPrev     = 3
	fcWords    = 4
	faceStride = fcWords + cycleSetWords
)

// Search is the mutable state of one enumeration run: the trail-backed
// arena holding per-face assignments and candidate sets, crossing and
// corner bookkeeping, and the run's statistics. A Search is not safe for
// concurrent use; parallel sweeps give each goroutine its own.
type Search struct {
	Geo   *Geometry
	Trail *Trail
	Stats *Stats

	log *slog.Logger

	// degrees holds the chosen boundary length of each central-neighbor
	// face, indexed by the color the neighbor omits. Written by the
	// degree-signature predicate before the trail is live for it; not
	// undone on backtrack because the predicate overwrites per retry.
	degrees []int

	// colorsCompleted accumulates, within a single top-level propagation,
	// the colors whose corner walk first completed. Reset at depth zero.
	colorsCompleted ColorSet

	crossingBase int
	vertexBase   int
	checkedBase  int
	edgeBase     int
	eccBase      int
}

// SearchConfig carries optional knobs for NewSearch.
type SearchConfig struct {
	// TrailLimit bounds the undo log; zero selects DefaultTrailLimit.
	TrailLimit int
	// Logger receives debug events. Nil disables logging.
	Logger *slog.Logger
}

// NewSearch allocates the state for one run over geometry g. Every face
// starts unassigned with the full cycle set as candidates.
func NewSearch(g *Geometry, cfg SearchConfig) *Search {
	n := g.N
	crossingBase := g.NFaces * faceStride
	vertexBase := crossingBase + n*n
	checkedBase := vertexBase + g.NFaces*n*n
	edgeBase := checkedBase + n
	eccBase := edgeBase + g.NFaces*n
	size := eccBase + 2*n

	s := &Search{
		Geo:          g,
		Trail:        NewTrail(size, cfg.TrailLimit),
		Stats:        NewStats(),
		log:          cfg.Logger,
		degrees:      make([]int, n),
		crossingBase: crossingBase,
		vertexBase:   vertexBase,
		checkedBase:  checkedBase,
		edgeBase:     edgeBase,
		eccBase:      eccBase,
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for f := 0; f < g.NFaces; f++ {
		base := f * faceStride
		init := g.InitialCandidates(ColorSet(f))
		s.Trail.SetRaw(base+fcCount, uint64(init.Count()))
		for i := 0; i < cycleSetWords; i++ {
			s.Trail.SetRaw(base+fcWords+i, init.word(i))
		}
	}
	return s
}

func faceBase(f ColorSet) int {
	return int(f) * faceStride
}

// AssignedCycle returns the cycle assigned to face f, or ok=false when the
// face is unassigned.
func (s *Search) AssignedCycle(f ColorSet) (int, bool) {
	v := s.Trail.Get(faceBase(f) + fcCycle)
	if v == 0 {
		return 0, false
	}
	return int(v) - 1, true
}

// assignCycle records the assignment of cycle id to face f on the trail.
func (s *Search) assignCycle(f ColorSet, id int) {
	s.Trail.Set(faceBase(f)+fcCycle, uint64(id+1))
}

// cursor reads the raw assignment cell of face f. The face predicate uses
// the cell as its retry cursor, writing it without trailing.
func (s *Search) cursor(f ColorSet) uint64 {
	return s.Trail.Get(faceBase(f) + fcCycle)
}

// setCursor writes the assignment cell of face f without trailing, so the
// value persists across the per-retry rewind.
func (s *Search) setCursor(f ColorSet, v uint64) {
	s.Trail.SetRaw(faceBase(f)+fcCycle, v)
}

// Candidates returns the candidate cycle set of face f.
func (s *Search) Candidates(f ColorSet) CycleSet {
	base := faceBase(f) + fcWords
	var cs CycleSet
	for i := 0; i < cycleSetWords; i++ {
		cs = cs.setWord(i, s.Trail.Get(base+i))
	}
	return cs
}

// CandidateCount returns the cached size of face f's candidate set.
func (s *Search) CandidateCount(f ColorSet) int {
	return int(s.Trail.Get(faceBase(f) + fcCount))
}

// setCandidates installs a new candidate set for face f, trailing only the
// words that changed plus the count cell.
func (s *Search) setCandidates(f ColorSet, cs CycleSet) {
	base := faceBase(f)
	for i := 0; i < cycleSetWords; i++ {
		s.Trail.MaybeSet(base+fcWords+i, cs.word(i))
	}
	s.Trail.Set(base+fcCount, uint64(cs.Count()))
}

// RingNext returns the face f's outgoing ring pointer, or ok=false when it
// has not been set.
func (s *Search) RingNext(f ColorSet) (ColorSet, bool) {
	v := s.Trail.Get(faceBase(f) + fcNext)
	if v == 0 {
		return 0, false
	}
	return ColorSet(v - 1), true
}

// RingPrev returns the face f's incoming ring pointer, or ok=false when it
// has not been set.
func (s *Search) RingPrev(f ColorSet) (ColorSet, bool) {
	v := s.Trail.Get(faceBase(f) + fcPrev)
	if v == 0 {
		return 0, false
	}
	return ColorSet(v - 1), true
}

func (s *Search) setRingNext(f, to ColorSet) {
	s.Trail.Set(faceBase(f)+fcNext, uint64(to)+1)
}

func (s *Search) setRingPrev(f, to ColorSet) {
	s.Trail.Set(faceBase(f)+fcPrev, uint64(to)+1)
}

// crossingCell addresses the crossing counter of an unordered color pair.
func (s *Search) crossingCell(a, b Color) int {
	if a > b {
		a, b = b, a
	}
	return s.crossingBase + a*s.Geo.N + b
}

// vertexCell addresses the seen flag of a crossing point. A point is
// identified by the face outside both curves plus the ordered pair of
// curve colors meeting there; every face around the crossing derives the
// same triple.
func (s *Search) vertexCell(outside ColorSet, primary, secondary Color) int {
	n := s.Geo.N
	return s.vertexBase + (int(outside)*n+primary)*n + secondary
}

// colorCheckedCell addresses the flag recording that color c's corner walk
// has completed at least once on the current branch.
func (s *Search) colorCheckedCell(c Color) int {
	return s.checkedBase + c
}

// edgeCell addresses the outgoing link of face f's edge along curve c.
func (s *Search) edgeCell(f ColorSet, c Color) int {
	return s.edgeBase + int(f)*s.Geo.N + c
}

// edgeLink decodes face f's edge link along curve c: the face the curve
// continues into and the other curve met at the terminating crossing.
func (s *Search) edgeLink(f ColorSet, c Color) (next ColorSet, other Color, ok bool) {
	v := s.Trail.Get(s.edgeCell(f, c))
	if v == 0 {
		return 0, 0, false
	}
	return ColorSet(v >> 1 & 0x7f), Color(v >> 8 & 0x7), true
}

// setEdgeLink wires face f's edge along curve c into face next, recording
// the other curve of the crossing for the corner walk.
func (s *Search) setEdgeLink(f ColorSet, c Color, next ColorSet, other Color) {
	s.Trail.Set(s.edgeCell(f, c), 1|uint64(next)<<1|uint64(other)<<8)
}

// edgeCountCell addresses the running count of wired edges of curve c on
// one side: 0 inside the curve, 1 outside.
func (s *Search) edgeCountCell(side int, c Color) int {
	return s.eccBase + side*s.Geo.N + c
}

// Degrees returns the central-neighbor boundary lengths chosen so far.
func (s *Search) Degrees() []int {
	return s.degrees
}
