/*Package debye implements the per-bin plasma Debye-length estimator
(spec.md §4.2). It runs once per timestep, shared across every collision
group that requested automatic Coulomb-logarithm computation.
*/
package debye

import (
	"math"

	"github.com/mansfield-lab/collide/species"
)

const (
	speedOfLightSI          = 299792458.0
	classicalElectronRadius = 2.817940327e-15 // meters
)

// Estimator computes the per-bin Debye length squared, in code (inverse
// reference-frequency) length units, for a given reference angular
// frequency omega0 (spec.md §6: "referenceAngularFrequency_SI must be > 0
// when any record is present").
type Estimator struct {
	ReferenceAngularFrequencySI float64
	CellsPerBin                 float64
}

// ComputePerBin returns, for each bin in [0, numBins), the squared Debye
// length accumulated over every species in specs. A bin with no particles
// produces 0 (spec.md §4.2 "Failure mode"), as does a bin whose species
// contribute no inverse Debye length (zero temperature or zero mean
// charge). Such an entry is not floored.
func (e *Estimator) ComputePerBin(specs []species.Species, numBins int) []float64 {
	out := make([]float64, numBins)
	coeff := speedOfLightSI / (3. * e.ReferenceAngularFrequencySI * classicalElectronRadius)

	for b := 0; b < numBins; b++ {
		var invLambdaD2, densityMax float64

		for _, s := range specs {
			p := s.Particles()
			lo, hi := s.BinRange(b)

			var density, chargeSum, tempSum float64
			for i := lo; i < hi; i++ {
				px, py, pz := *p.Momentum(0, i), *p.Momentum(1, i), *p.Momentum(2, i)
				p2 := px*px + py*py + pz*pz
				w := p.Weight(i)
				density += w
				chargeSum += w * p.Charge(i)
				tempSum += w * p2 / math.Sqrt(1+p2)
			}
			if density <= 0 {
				continue
			}

			meanCharge := chargeSum / density
			temperature := s.Mass() * tempSum / (3. * density)
			density /= e.CellsPerBin

			if temperature > 0 {
				invLambdaD2 += density * meanCharge * meanCharge / temperature
			}
			if density > densityMax {
				densityMax = density
			}
		}

		if invLambdaD2 <= 0 {
			continue
		}
		lambdaD2 := 1. / invLambdaD2

		// RuntimeArithmetic: floor by the cube-root minimum interatomic
		// distance, silently, per spec.md §7.
		rmin2 := math.Pow(coeff*densityMax, -2./3.)
		if lambdaD2 < rmin2 {
			lambdaD2 = rmin2
		}
		out[b] = lambdaD2
	}

	return out
}
