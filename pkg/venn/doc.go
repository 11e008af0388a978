// Package venn enumerates simple monotone Venn diagrams by constraint
// search over face boundary cycles.
//
// An arrangement of N closed curves divides the plane into 2^N faces, one
// per subset of curve interiors. Each face's boundary is crossed by some of
// the curves in a rotational order, recorded as a cycle of colors. The
// package enumerates every consistent assignment of cycles to faces, up to
// the rotation and reflection symmetries of the arrangement.
//
// # Architecture
//
// The search is a backtracking engine over a pipeline of predicates
// (Predicate, Engine). Predicates announce choice points; the engine
// explores them depth-first, undoing state between alternatives through a
// trail (Trail), an undo log over a flat arena of cells holding every
// reversible piece of search state.
//
// Each face carries a candidate set of cycles (CycleSet). Assigning a cycle
// to a face propagates: neighboring faces' candidates are intersected with
// precomputed constraint tables (Geometry), faces collapsing to a single
// candidate are assigned in turn, and geometric checks reject branches
// whose curves would cross too often, turn too many corners, or fall apart
// into multiple components.
//
// # Usage
//
// Build a Geometry for 3 to 6 curves, then enumerate:
//
//	g, err := venn.NewGeometry(6)
//	if err != nil {
//		log.Fatal(err)
//	}
//	stats, err := venn.Enumerate(ctx, g, venn.SearchConfig{}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(stats.Counts[venn.CountSolutions])
//
// EnumerateSignature restricts the run to one degree signature, which is
// how large runs are split across workers; EnumerateSweep does the
// splitting itself on a worker pool.
//
// A Geometry is immutable and shared; a Search is single-goroutine state
// for one run.
package venn
