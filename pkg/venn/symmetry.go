package venn

// Canonicality classifies a configuration against its orbit under the
// dihedral symmetry group. Only one representative per orbit is counted:
// the lexicographically greatest. Equivocal configurations are their own
// maximum under more than one symmetry, so distinct solutions beneath them
// may still coincide.
type Canonicality int

const (
	NonCanonical Canonicality = iota
	Canonical
	Equivocal
)

func (c Canonicality) String() string {
	switch c {
	case Canonical:
		return "canonical"
	case Equivocal:
		return "equivocal"
	default:
		return "non-canonical"
	}
}

// classify compares vec against every permuted image produced by apply.
// apply fills dst with the image of vec under the i-th group element.
func (g *Geometry) classify(vec []int, apply func(perm []int, dst []int)) Canonicality {
	dst := make([]int, len(vec))
	maxTies := 0
	inputIsMax := true
	for _, perm := range g.perms {
		apply(perm, dst)
		switch compareVec(dst, vec) {
		case 0:
			maxTies++
		case 1:
			inputIsMax = false
		}
		if !inputIsMax {
			return NonCanonical
		}
	}
	if maxTies > 1 {
		return Equivocal
	}
	return Canonical
}

// CheckSignature classifies a degree signature: the vector of boundary
// lengths chosen for the central neighbors, indexed by omitted color.
// Rotating or reflecting the arrangement permutes the signature, so only
// the greatest image is searched.
func (g *Geometry) CheckSignature(degrees []int) Canonicality {
	return g.classify(degrees, func(perm, dst []int) {
		for i := range dst {
			dst[i] = degrees[perm[i]]
		}
	})
}

// SolutionCanonicality classifies a fully assigned arrangement against its
// orbit under color permutation. Each group element maps every face to its
// image face and rewrites every assigned cycle through the permutation; the
// resulting arrangement is compared to the input over the canonical face
// order, first by the cycle-length vector and then, on equal lengths, by
// the permuted cycles themselves. Comparing cycle content rather than
// length alone separates orbit members that happen to share a length
// vector, so exactly one member of an asymmetric orbit wins. An
// arrangement equal to its own image under more than one group element is
// Equivocal regardless of how the rest of its orbit compares.
func (s *Search) SolutionCanonicality() Canonicality {
	g := s.Geo
	lengths := make([]int, g.NFaces)
	ids := make([]int, g.NFaces)
	for i, face := range g.seqOrder {
		id, ok := s.AssignedCycle(face)
		if !ok {
			return NonCanonical
		}
		lengths[i] = g.Cycles[id].Len()
		ids[i] = id
	}

	dstLen := make([]int, g.NFaces)
	dstID := make([]int, g.NFaces)
	ties := 0
	greater := false
	for _, perm := range g.perms {
		for i, face := range g.seqOrder {
			j := g.invSeqOrder[permuteColorSet(face, perm)]
			pid := g.permuteCycle(ids[i], perm)
			dstLen[j] = g.Cycles[pid].Len()
			dstID[j] = pid
		}
		cmp := compareVec(dstLen, lengths)
		if cmp == 0 {
			cmp = compareVec(dstID, ids)
		}
		switch cmp {
		case 0:
			ties++
		case 1:
			greater = true
		}
	}
	if ties > 1 {
		return Equivocal
	}
	if greater {
		return NonCanonical
	}
	return Canonical
}

// CanonicalSignatures enumerates every degree signature worth searching:
// each neighbor's boundary length ranges from 3 to N, the total must match
// TotalCentralDegree, and only the canonical or equivocal representative of
// each symmetry orbit is kept. Signatures are returned in the order the
// full enumeration visits them, largest degrees first.
func (g *Geometry) CanonicalSignatures() [][]int {
	var out [][]int
	degrees := make([]int, g.N)
	var walk func(i, remaining int)
	walk = func(i, remaining int) {
		if i == g.N {
			if remaining != 0 || g.CheckSignature(degrees) == NonCanonical {
				return
			}
			sig := make([]int, g.N)
			copy(sig, degrees)
			out = append(out, sig)
			return
		}
		for d := g.N; d >= 3; d-- {
			if d > remaining {
				continue
			}
			degrees[i] = d
			walk(i+1, remaining-d)
		}
	}
	walk(0, g.TotalCentralDegree())
	return out
}

func compareVec(a, b []int) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}
