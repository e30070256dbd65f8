/*Package pairing implements the shuffle-and-pair algorithm over the
macro-particles of one bin (spec.md §4.3): group-size orientation, the
shuffled pair-index construction for inter- and intra-group collisions,
and the aggregate density accumulation (n1, n2, n12) that feeds the
collision kernel's coeff3/coeff4.
*/
package pairing

import (
	"gonum.org/v1/gonum/floats"

	"github.com/mansfield-lab/collide/species"
)

// densityPreparer is the slice of the ionization hook contract that
// BuildPairs needs (spec.md §4.5: "prepare2 once per pair during density
// accumulation"). Declared locally so this package does not import
// ionization; any ionization.Hook satisfies it.
type densityPreparer interface {
	Prepare2(p1 species.Particles, i1 int, p2 species.Particles, i2 int, isUnique bool)
}

// noopPreparer is used when the caller has no ionization hook to drive.
type noopPreparer struct{}

func (noopPreparer) Prepare2(species.Particles, int, species.Particles, int, bool) {}

// Pairs is the result of BuildPairs: the (possibly swapped) group
// membership for this bin, the flat pair-index arrays, and the aggregate
// densities, in critical-density units.
type Pairs struct {
	Group1, Group2 []species.Species
	np1, np2       []int
	binLo1, binLo2 []int

	Index1, Index2 []int
	N2max          int

	N1, N2, N12 float64
}

// NumPairs returns the number of pairs built.
func (p *Pairs) NumPairs() int { return len(p.Index1) }

// Decode1 resolves the i-th pair's group-1 participant to its species and
// global particle index, following spec.md §4.3's index-decoding rule.
func (p *Pairs) Decode1(i int) (spec species.Species, particleIndex int) {
	return decode(p.Index1[i], p.Group1, p.np1, p.binLo1)
}

// Decode2 resolves the i-th pair's group-2 participant to its species and
// global particle index.
func (p *Pairs) Decode2(i int) (spec species.Species, particleIndex int) {
	return decode(p.Index2[i], p.Group2, p.np2, p.binLo2)
}

func decode(idx int, group []species.Species, np, binLo []int) (species.Species, int) {
	ispec := 0
	for idx >= np[ispec] {
		idx -= np[ispec]
		ispec++
	}
	return group[ispec], binLo[ispec] + idx
}

// Shuffler performs a Fisher-Yates shuffle, satisfied by *rng.Stream.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// BuildPairs builds the pair-index arrays and aggregate densities for one
// bin, given the two (unordered) collision groups, whether this is an
// intra-group collision, the number of cells folded into one bin
// (cellsPerBin), and a deterministic shuffler. hook may be nil, in which
// case Prepare2 is simply not called.
func BuildPairs(
	bin int,
	group1, group2 []species.Species,
	intra bool,
	cellsPerBin float64,
	shuf Shuffler,
	hook densityPreparer,
) *Pairs {
	if hook == nil {
		hook = noopPreparer{}
	}

	np1, binLo1, npart1 := countBin(group1, bin)
	np2, binLo2, npart2 := countBin(group2, bin)

	// "the larger group is always 1" — at most one swap, per spec.md's
	// Open Question decision (the source's two-iteration retry loop is
	// collapsed to a single conditional, since one swap always suffices).
	if npart2 > npart1 {
		group1, group2 = group2, group1
		np1, np2 = np2, np1
		binLo1, binLo2 = binLo2, binLo1
		npart1, npart2 = npart2, npart1
	}

	pairs := &Pairs{
		Group1: group1, Group2: group2,
		np1: np1, np2: np2,
		binLo1: binLo1, binLo2: binLo2,
	}

	if npart1 == 0 || npart2 == 0 {
		return pairs
	}

	index1 := make([]int, npart1)
	for i := range index1 {
		index1[i] = i
	}
	shuf.Shuffle(npart1, func(i, j int) { index1[i], index1[j] = index1[j], index1[i] })

	var index2 []int
	var npairs, n2max int

	if intra {
		npairs = (npart1 + 1) / 2 // ceil(npart1/2)
		index2 = make([]int, npairs)
		for i := 0; i < npairs; i++ {
			index2[i] = index1[(i+npairs)%npart1]
		}
		index1 = index1[:npairs]
		n2max = npart1 - npairs
	} else {
		npairs = npart1
		index2 = make([]int, npairs)
		for i := 0; i < npart1; i++ {
			index2[i] = i % npart2
		}
		n2max = npart2
	}

	pairs.Index1 = index1
	pairs.Index2 = index2
	pairs.N2max = n2max

	var n1, n2, n12 float64
	for i := 0; i < npairs; i++ {
		s1, i1 := decode(index1[i], group1, np1, binLo1)
		s2, i2 := decode(index2[i], group2, np2, binLo2)
		p1, p2 := s1.Particles(), s2.Particles()

		w1, w2 := p1.Weight(i1), p2.Weight(i2)
		n1 += w1
		isUnique := i < n2max
		if isUnique {
			n2 += w2
		}
		if w1 < w2 {
			n12 += w1
		} else {
			n12 += w2
		}

		hook.Prepare2(p1, i1, p2, i2, isUnique)
	}

	if intra {
		n1 += n2
		n2 = n1
	}

	densities := []float64{n1, n2, n12}
	floats.Scale(1./cellsPerBin, densities)
	pairs.N1, pairs.N2, pairs.N12 = densities[0], densities[1], densities[2]

	return pairs
}

func countBin(group []species.Species, bin int) (np []int, binLo []int, total int) {
	np = make([]int, len(group))
	binLo = make([]int, len(group))
	for i, s := range group {
		lo, hi := s.BinRange(bin)
		np[i] = hi - lo
		binLo[i] = lo
		total += np[i]
	}
	return np, binLo, total
}
