/*Package species defines the contract the collision core requires from the
external Species collaborator (spec.md §6). Particle storage, field
layout, the Maxwell solver, and the pusher are all out of scope (spec.md
§1); this package exists only to pin down the narrow surface the collision
core actually calls.
*/
package species

// Particles exposes per-particle state for one species. Implementations
// back momentum with mutable storage: Momentum returns a pointer so the
// collision kernel can write a particle's post-scatter momentum in place
// (spec.md §4.4 step 11), exactly as the source mutates particle arrays
// directly rather than returning new values.
type Particles interface {
	// Momentum returns a pointer to component axis (0, 1, or 2) of
	// particle i's momentum, in units of m*c.
	Momentum(axis, i int) *float64
	// Weight returns particle i's statistical weight.
	Weight(i int) float64
	// Charge returns particle i's charge, in units of the elementary
	// charge.
	Charge(i int) float64
}

// Species is one macro-particle species: a shared mass and atomic number,
// a Particles accessor, and the bin index ranges produced by the external
// binning algorithm (spec.md §1 Non-goals: binning itself is consumed, not
// implemented, here).
type Species interface {
	// Particles returns the species' particle accessor.
	Particles() Particles
	// Mass returns the species' mass in units of the electron mass.
	Mass() float64
	// AtomicNumber returns the species' ionic charge number Z (0 for
	// electrons).
	AtomicNumber() int
	// NumBins returns the number of spatial bins shared by all species in
	// the simulation.
	NumBins() int
	// BinRange returns the half-open particle-index range [lo, hi) owned
	// by bin b.
	BinRange(b int) (lo, hi int)
}

// Name-resolving registry, mirroring the "Names resolve through the
// Species registry" clause of spec.md §6. The input-deck collaborator
// only knows species names; config.BuildGroups needs a way to turn those
// into the indices CollisionGroup stores.
type Registry interface {
	// Index returns the index of the species named name, or ok=false if
	// no such species exists.
	Index(name string) (index int, ok bool)
	// Species returns the Species at the given index.
	Species(index int) Species
}
