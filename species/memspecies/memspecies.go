/*Package memspecies is a small in-memory implementation of the species
contract, used by the collision core's own tests and by callers that want
to exercise the core without a full PIC particle store. It plays the same
role Guppy's lib/particles package plays for .gup fields: a generic,
slice-backed implementation of an interface that a real data source would
otherwise back with something heavier.
*/
package memspecies

import "github.com/mansfield-lab/collide/species"

// Particles is a flat, struct-of-arrays particle store.
type Particles struct {
	Px, Py, Pz []float64
	W          []float64
	Q          []float64
}

var _ species.Particles = (*Particles)(nil)

// NewParticles builds a Particles store for n particles, all fields
// zeroed except as set by the caller.
func NewParticles(n int) *Particles {
	return &Particles{
		Px: make([]float64, n),
		Py: make([]float64, n),
		Pz: make([]float64, n),
		W:  make([]float64, n),
		Q:  make([]float64, n),
	}
}

// Momentum returns a pointer to component axis of particle i's momentum.
func (p *Particles) Momentum(axis, i int) *float64 {
	switch axis {
	case 0:
		return &p.Px[i]
	case 1:
		return &p.Py[i]
	case 2:
		return &p.Pz[i]
	default:
		panic("memspecies: momentum axis must be 0, 1, or 2")
	}
}

// Weight returns particle i's statistical weight.
func (p *Particles) Weight(i int) float64 { return p.W[i] }

// Charge returns particle i's charge in units of the elementary charge.
func (p *Particles) Charge(i int) float64 { return p.Q[i] }

// Species is a fixed-mass, fixed-Z species with contiguous per-bin
// particle ranges.
type Species struct {
	P          *Particles
	mass       float64
	z          int
	binRanges  [][2]int
}

var _ species.Species = (*Species)(nil)

// NewSpecies builds a Species with the given mass (in electron-mass
// units), atomic number z, particle store p, and per-bin [lo, hi) ranges.
func NewSpecies(p *Particles, mass float64, z int, binRanges [][2]int) *Species {
	return &Species{P: p, mass: mass, z: z, binRanges: binRanges}
}

// Particles returns the species' particle accessor.
func (s *Species) Particles() species.Particles { return s.P }

// Mass returns the species' mass in units of the electron mass.
func (s *Species) Mass() float64 { return s.mass }

// AtomicNumber returns the species' ionic charge number Z.
func (s *Species) AtomicNumber() int { return s.z }

// NumBins returns the number of spatial bins.
func (s *Species) NumBins() int { return len(s.binRanges) }

// BinRange returns the half-open particle-index range owned by bin b.
func (s *Species) BinRange(b int) (lo, hi int) {
	r := s.binRanges[b]
	return r[0], r[1]
}

// Registry is a name-indexed slice of Species.
type Registry struct {
	names []string
	specs []species.Species
}

var _ species.Registry = (*Registry)(nil)

// NewRegistry builds a Registry from parallel names/specs slices.
func NewRegistry(names []string, specs []species.Species) *Registry {
	return &Registry{names: names, specs: specs}
}

// Index returns the index of the species named name.
func (r *Registry) Index(name string) (int, bool) {
	for i, n := range r.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Species returns the Species at the given index.
func (r *Registry) Species(index int) species.Species { return r.specs[index] }
