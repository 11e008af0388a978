package venn

// Stats accumulates counters over one search run. The engine maintains the
// structural counters; counting predicates and the propagator maintain the
// rest. Counters are plain fields: a Search is single-goroutine, and
// concurrent sweeps each own a Search.
type Stats struct {
	// Tries and Retries count predicate invocations; Backtracks counts
	// popped stack frames.
	Tries      uint64
	Retries    uint64
	Backtracks uint64
	// Propagations counts candidate-set restrictions applied, including
	// cascaded ones.
	Propagations uint64
	// Conflicts counts propagation failures by cause.
	Conflicts map[string]uint64
	// Counts holds the totals of counting predicates, keyed by name.
	Counts map[string]uint64
}

// NewStats returns a zeroed Stats with its maps initialized.
func NewStats() *Stats {
	return &Stats{
		Conflicts: make(map[string]uint64),
		Counts:    make(map[string]uint64),
	}
}

// Add accumulates other into s. Used when merging per-goroutine results
// after a sweep.
func (s *Stats) Add(other *Stats) {
	s.Tries += other.Tries
	s.Retries += other.Retries
	s.Backtracks += other.Backtracks
	s.Propagations += other.Propagations
	for k, v := range other.Conflicts {
		s.Conflicts[k] += v
	}
	for k, v := range other.Counts {
		s.Counts[k] += v
	}
}
