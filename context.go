/*Package collide implements the binary Coulomb collision core for a
relativistic particle-in-cell plasma simulation: Nanbu's cumulative
small-angle scattering model with a Perez/Higginson correction for
unequal macro-particle weights, coupled with an optional collisional
ionization hook (spec.md).
*/
package collide

import (
	"github.com/mansfield-lab/collide/debye"
	"github.com/mansfield-lab/collide/kernel"
	"github.com/mansfield-lab/collide/rng"
	"github.com/mansfield-lab/collide/species"
)

// Context is the explicit per-process state shared by every CollisionGroup
// during one timestep: the Debye-length table and the single deterministic
// RNG stream (spec.md §5, §9). It replaces the source's static globals
// (debye_length_required, debye_length_squared) with an explicit value
// threaded through Collide, per spec.md §9's design note.
type Context struct {
	ReferenceAngularFrequencySI float64
	CellsPerBin                 float64
	Timestep                    float64

	kernelConstants kernel.Constants
	estimator       debye.Estimator
	rng             *rng.Stream

	debyeLengthSquared []float64
}

// NewContext builds a Context for a simulation with the given reference
// angular frequency (rad/s), cluster size (cells folded into one bin), and
// physical timestep, seeded with seed for its RNG stream.
func NewContext(referenceOmega0SI, cellsPerBin, timestep float64, seed uint64) *Context {
	return &Context{
		ReferenceAngularFrequencySI: referenceOmega0SI,
		CellsPerBin:                 cellsPerBin,
		Timestep:                    timestep,
		kernelConstants:             kernel.NewConstants(referenceOmega0SI),
		estimator: debye.Estimator{
			ReferenceAngularFrequencySI: referenceOmega0SI,
			CellsPerBin:                 cellsPerBin,
		},
		rng: rng.New(seed),
	}
}

// RefreshDebyeLength recomputes the per-bin Debye length squared table,
// shared read-only by every collision group for the rest of this
// timestep. Callers should invoke this once per timestep when
// debyeRequired is true (spec.md §4.2: "Runs once per timestep when any
// group's coulombLog <= 0").
func (c *Context) RefreshDebyeLength(specs []species.Species, numBins int) {
	c.debyeLengthSquared = c.estimator.ComputePerBin(specs, numBins)
}

// DebyeLengthSquared returns Debye length squared for bin b from the
// table of the last RefreshDebyeLength call, or 0 if it has never been
// called or b is beyond the table. Given 0 with an auto Coulomb log,
// kernel.Scatter computes logL = 0 and floors it to 2.
func (c *Context) DebyeLengthSquared(b int) float64 {
	if b >= len(c.debyeLengthSquared) {
		return 0
	}
	return c.debyeLengthSquared[b]
}
