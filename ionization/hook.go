/*Package ionization implements the collisional-ionization hook contract
(spec.md §4.5): a small capability interface invoked by the collision core
at fixed points in its per-bin, per-pair loop, plus two variants — a no-op
used when a collision group does not request ionization, and Coulombic, a
Lotz-1968 empirical electron-impact ionization rate used when it does.

original_source/src/Collisions/Collisions.cpp references a
CollisionalIonization/CollisionalNoIonization pair whose own source file is
not part of the retrieval pack — their internals are genuinely opaque, as
spec.md §4.5 states. Coulombic is this module's own, self-contained
implementation of that contract, not a transcription of unseen source.
*/
package ionization

import (
	"math"

	"github.com/mansfield-lab/collide/species"
)

// Hook is the capability interface the collision core drives in a fixed
// order, once per bin/pair as documented on each method (spec.md §4.5):
// Prepare1 once per bin, Prepare2 once per pair during density
// accumulation, Prepare3 once per bin after density accumulation, Apply
// once per pair in the scatter loop, Finish once per bin.
type Hook interface {
	Prepare1(z int)
	Prepare2(p1 species.Particles, i1 int, p2 species.Particles, i2 int, isUnique bool)
	Prepare3(dt, nClusterPerCell float64)
	Apply(p1 species.Particles, i1 int, p2 species.Particles, i2 int)
	Finish()
}

// NoOp is the hook used by every non-ionizing collision group. Every
// method is a no-op, matching spec.md §4.5's "the no-op variant is null
// on every method".
type NoOp struct{}

var _ Hook = NoOp{}

func (NoOp) Prepare1(int)                                                           {}
func (NoOp) Prepare2(species.Particles, int, species.Particles, int, bool)          {}
func (NoOp) Prepare3(float64, float64)                                              {}
func (NoOp) Apply(species.Particles, int, species.Particles, int)                   {}
func (NoOp) Finish()                                                                {}

// lotzIonizationPotentials holds the first ionization potential, in eV,
// for a handful of common light ions, indexed by atomic number. This is
// the minimal table Coulombic needs to exercise the Lotz rate for the
// elements typical PIC ionization benchmarks use (hydrogen, helium,
// carbon, nitrogen and oxygen); a production deployment would widen this table, but spec.md
// places that data-table maintenance out of scope for the core itself.
var lotzIonizationPotentials = map[int]float64{
	1: 13.6,  // H
	2: 24.6,  // He
	6: 11.3,  // C
	7: 14.5,  // N
	8: 13.6,  // O
}

// Coulombic implements Hook for a collision group between an electron
// species and a single ion species of atomic number Z (spec.md §3:
// ionizing groups require exactly this pairing). For each pair passed to
// Apply it evaluates the Lotz ionization rate and counts the pair as
// "ionized" when its per-timestep probability rounds to 1; the per-bin
// count is readable through IonizedPairs until Finish resets it. No
// particle is mutated and no macro-particle is created.
//
// The electron-impact ionization rate coefficient (Lotz 1968) for a
// valence electron of binding energy chi, struck by an electron of
// kinetic energy E > chi, is proportional to ln(E/chi)/(E*chi).
type Coulombic struct {
	z                   int
	referenceOmega0SI   float64
	ionizationPotential float64

	dt              float64
	nClusterPerCell float64

	ionizedPairs int
	totalPairs   int
}

var _ Hook = (*Coulombic)(nil)

// NewCoulombic builds a Coulombic ionization hook for ion species z,
// given the simulation's reference angular frequency. The frequency is
// stored on the hook; the rate evaluation does not use it (lotzRate is in
// arbitrary units and is not converted from SI).
func NewCoulombic(z int, referenceOmega0SI float64) *Coulombic {
	chi, ok := lotzIonizationPotentials[z]
	if !ok {
		chi = 13.6 * float64(z) * float64(z) // hydrogenic fallback
	}
	return &Coulombic{z: z, referenceOmega0SI: referenceOmega0SI, ionizationPotential: chi}
}

// Prepare1 resets the per-bin counters and records the ion species'
// atomic number for this bin's ionization pass.
func (c *Coulombic) Prepare1(z int) {
	c.z = z
	c.ionizedPairs = 0
	c.totalPairs = 0
}

// Prepare2 is a no-op for Coulombic: the Lotz rate only needs the
// colliding pair's energies, which are available at Apply time, not
// during the density pre-pass.
func (c *Coulombic) Prepare2(species.Particles, int, species.Particles, int, bool) {}

// Prepare3 records the timestep and cluster normalization needed to turn
// a rate into a per-timestep probability.
func (c *Coulombic) Prepare3(dt, nClusterPerCell float64) {
	c.dt = dt
	c.nClusterPerCell = nClusterPerCell
}

// Apply evaluates the Lotz rate for the colliding pair and counts the pair
// as an ionization event when its per-timestep probability, capped at 1,
// is at least 0.5. It does not mutate particle momenta or create
// particles; it only accumulates the count.
func (c *Coulombic) Apply(p1 species.Particles, i1 int, p2 species.Particles, i2 int) {
	c.totalPairs++

	energy := kineticEnergyEV(p1, i1)
	if energy <= c.ionizationPotential {
		return
	}

	rate := lotzRate(energy, c.ionizationPotential)
	probability := rate * c.dt * c.nClusterPerCell
	if probability > 1 {
		probability = 1
	}
	// Deterministic accounting: the probability is rounded rather than
	// compared with a random draw, keeping the shared RNG stream's draw
	// order (spec.md §5) undisturbed by the ionization hook.
	c.ionizedPairs += int(probability + 0.5)
}

// Finish resets the per-bin counters. The count is not turned into new
// macro-particles in the ion or electron species, here or by the owning
// CollisionGroup, which only logs and records it.
func (c *Coulombic) Finish() {
	c.ionizedPairs = 0
	c.totalPairs = 0
}

// IonizedPairs returns the number of pairs flagged as ionization events
// since the last Prepare1, for callers that want to report it before
// Finish resets the counter.
func (c *Coulombic) IonizedPairs() int { return c.ionizedPairs }

func kineticEnergyEV(p species.Particles, i int) float64 {
	px, py, pz := *p.Momentum(0, i), *p.Momentum(1, i), *p.Momentum(2, i)
	p2 := px*px + py*py + pz*pz
	gamma := math.Sqrt(1 + p2)
	const electronRestEnergyEV = 510998.95
	return (gamma - 1) * electronRestEnergyEV
}

// lotzRate evaluates the Lotz (1968) ionization rate shape
// ln(E/chi)/(E*chi), in arbitrary units consistent with how Prepare3's
// nClusterPerCell/dt normalization turns it into a per-timestep
// probability.
func lotzRate(energyEV, chiEV float64) float64 {
	return math.Log(energyEV/chiEV) / (energyEV * chiEV)
}
