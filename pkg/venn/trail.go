package venn

import "fmt"

// DefaultTrailLimit is the trail capacity used when none is configured.
// Exceeding it indicates runaway propagation and is treated as fatal.
const DefaultTrailLimit = 1 << 20

// Trail is an undo log over a flat arena of uint64 cells. All mutable
// search state lives in the arena; every reversible write goes through Set,
// which records the previous value so RewindTo can restore it. Backtracking
// is then a single rewind, independent of how many faces a propagation
// cascade touched.
//
// Writes that must survive backtracking (the root state installed before
// search begins) are protected with Freeze. Writes that are deliberately
// not undone (the candidate cursor a predicate walks across retries) bypass
// the log via SetRaw.
type Trail struct {
	cells  []uint64
	log    []trailEntry
	limit  int
	frozen int
}

type trailEntry struct {
	cell int32
	prev uint64
}

// NewTrail creates a trail over an arena of size cells. limit bounds the
// number of log entries; zero selects DefaultTrailLimit.
func NewTrail(size, limit int) *Trail {
	if limit <= 0 {
		limit = DefaultTrailLimit
	}
	return &Trail{
		cells: make([]uint64, size),
		log:   make([]trailEntry, 0, 256),
		limit: limit,
	}
}

// Get returns the current value of a cell.
func (t *Trail) Get(cell int) uint64 {
	return t.cells[cell]
}

// Set writes a cell, logging its previous value for rewind. Writing an
// unchanged value is still logged; hot paths use MaybeSet instead.
// Exceeding the trail limit panics: the search cannot continue correctly
// once an undo record is lost.
func (t *Trail) Set(cell int, v uint64) {
	if len(t.log) >= t.limit {
		panic(fmt.Sprintf("venn: trail overflow at %d entries", t.limit))
	}
	t.log = append(t.log, trailEntry{cell: int32(cell), prev: t.cells[cell]})
	t.cells[cell] = v
}

// MaybeSet writes a cell through the log only when the value changes.
func (t *Trail) MaybeSet(cell int, v uint64) {
	if t.cells[cell] != v {
		t.Set(cell, v)
	}
}

// SetRaw writes a cell without logging. The write survives rewinds.
func (t *Trail) SetRaw(cell int, v uint64) {
	t.cells[cell] = v
}

// Mark returns a checkpoint identifying the current log position.
func (t *Trail) Mark() int {
	return len(t.log)
}

// RewindTo undoes every logged write at or after mark, most recent first.
// Rewinding below a frozen mark panics.
func (t *Trail) RewindTo(mark int) {
	if mark < t.frozen {
		panic(fmt.Sprintf("venn: rewind to %d below frozen mark %d", mark, t.frozen))
	}
	for i := len(t.log) - 1; i >= mark; i-- {
		e := t.log[i]
		t.cells[e.cell] = e.prev
	}
	t.log = t.log[:mark]
}

// Freeze makes every write logged so far permanent. Used once the root
// state is installed, so backtracking can never unwind past it.
func (t *Trail) Freeze() {
	t.frozen = len(t.log)
}

// Len returns the number of live log entries.
func (t *Trail) Len() int {
	return len(t.log)
}
