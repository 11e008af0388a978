package venn

import (
	"context"
	"sync"

	"github.com/vennsearch/vennsearch/internal/parallel"
)

// FaceAssignment pairs a face with the cycle a solution assigns it.
type FaceAssignment struct {
	Face  ColorSet
	Cycle *Cycle
}

// Assignments returns the current assignment of every face in canonical
// reporting order. Unassigned faces carry a nil cycle; a solution callback
// sees none.
func (s *Search) Assignments() []FaceAssignment {
	out := make([]FaceAssignment, len(s.Geo.seqOrder))
	for i, face := range s.Geo.seqOrder {
		out[i].Face = face
		if id, ok := s.AssignedCycle(face); ok {
			out[i].Cycle = s.Geo.Cycles[id]
		}
	}
	return out
}

// Signature returns a copy of the degree signature of the current branch.
func (s *Search) Signature() []int {
	out := make([]int, len(s.degrees))
	copy(out, s.degrees)
	return out
}

// StandardPipeline builds the predicate pipeline enumerating every
// arrangement of g's curves. Five curves and up enumerate degree
// signatures first, pruning non-canonical ones; four curves filter
// solutions only; three need no symmetry filter at all. onSolution, when
// non-nil, observes each counted solution while its assignment is live.
func StandardPipeline(g *Geometry, onSolution func(*Search)) []Predicate {
	face := NewFacePredicate(g)
	count := CountPredicate{Counter: CountSolutions, Each: onSolution}
	switch {
	case g.N >= 5:
		return []Predicate{
			SignaturePredicate{},
			CountPredicate{Counter: CountSignatures},
			face,
			CanonicalSolutionPredicate{},
			count,
			failPredicate{},
		}
	case g.N == 4:
		return []Predicate{
			face,
			CanonicalSolutionPredicate{},
			count,
			failPredicate{},
		}
	default:
		// Three curves have one mirror pair of solutions; no symmetry
		// filter is applied.
		return []Predicate{
			face,
			count,
			failPredicate{},
		}
	}
}

// SignaturePipeline builds a pipeline searching a single degree signature.
// degrees is indexed by omitted color; zero entries are unconstrained.
func SignaturePipeline(g *Geometry, degrees []int, onSolution func(*Search)) []Predicate {
	preds := []Predicate{
		FixedSignature{Degrees: degrees},
		CountPredicate{Counter: CountSignatures},
		NewFacePredicate(g),
	}
	if g.N >= 4 {
		preds = append(preds, CanonicalSolutionPredicate{})
	}
	return append(preds,
		CountPredicate{Counter: CountSolutions, Each: onSolution},
		failPredicate{},
	)
}

// Enumerate runs the full enumeration for geometry g and returns the run's
// statistics; Counts[CountSolutions] holds the solution total. onSolution,
// when non-nil, is invoked once per counted solution.
func Enumerate(ctx context.Context, g *Geometry, cfg SearchConfig, onSolution func(*Search)) (*Stats, error) {
	s := NewSearch(g, cfg)
	eng := NewEngine(StandardPipeline(g, onSolution), cfg.Logger)
	if err := eng.Run(ctx, s); err != nil {
		return s.Stats, err
	}
	return s.Stats, nil
}

// EnumerateSweep runs the full enumeration split across canonical degree
// signatures, searching them concurrently on a worker pool. workers bounds
// the pool size; zero or negative selects one worker per CPU. The merged
// statistics match Enumerate's. Curve counts without a signature stage
// fall back to a single search.
func EnumerateSweep(ctx context.Context, g *Geometry, workers int, cfg SearchConfig) (*Stats, error) {
	if g.N < 5 {
		return Enumerate(ctx, g, cfg, nil)
	}

	pool := parallel.NewWorkerPool(workers)
	defer pool.Shutdown()

	total := NewStats()
	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup
	for _, sig := range g.CanonicalSignatures() {
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			stats, err := EnumerateSignature(ctx, g, sig, cfg, nil)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			total.Add(stats)
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()
	return total, firstErr
}

// EnumerateSignature runs the enumeration restricted to one degree
// signature. Counts[CountSignatures] is 1 when the root propagation
// accepted the signature and 0 when it rejected it outright.
func EnumerateSignature(ctx context.Context, g *Geometry, degrees []int, cfg SearchConfig, onSolution func(*Search)) (*Stats, error) {
	s := NewSearch(g, cfg)
	eng := NewEngine(SignaturePipeline(g, degrees, onSolution), cfg.Logger)
	if err := eng.Run(ctx, s); err != nil {
		return s.Stats, err
	}
	return s.Stats, nil
}
