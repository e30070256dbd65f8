/*Package debug implements the per-timestep collision debug statistics
(spec.md §4.6): per-bin running sums of s and log Lambda, reduced at the
end of a timestep into mean s, mean log Lambda, and mean Debye length.
*/
package debug

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const speedOfLightSI = 299792458.0

// Recorder accumulates collision statistics for one collision group
// across the bins visited during one timestep. Call Reset before the
// first bin of a debug timestep, Add once per pair processed, and
// Snapshot once all bins have been visited.
type Recorder struct {
	sumS, sumLogL float64
	pairCount     float64
	lambdaD2      []float64 // one entry per bin, for the cross-bin mean
	ionizedPairs  int
}

// Reset clears the accumulators for a new debug timestep.
func (r *Recorder) Reset() {
	r.sumS, r.sumLogL, r.pairCount = 0, 0, 0
	r.lambdaD2 = r.lambdaD2[:0]
	r.ionizedPairs = 0
}

// Add records one pair's collision strength and Coulomb logarithm
// (spec.md §4.4 step 13).
func (r *Recorder) Add(s, logL float64) {
	r.sumS += s
	r.sumLogL += logL
	r.pairCount++
}

// AddBinDebyeLength records one bin's Debye length squared, for the
// cross-bin mean reported in Snapshot.
func (r *Recorder) AddBinDebyeLength(lambdaD2 float64) {
	r.lambdaD2 = append(r.lambdaD2, lambdaD2)
}

// AddIonizedPairs records the number of pairs an ionization hook flagged
// as ionization events this timestep, read from the hook before Finish
// resets its own per-bin counter (spec.md §4.5).
func (r *Recorder) AddIonizedPairs(n int) {
	r.ionizedPairs += n
}

// Snapshot is the per-timestep aggregate DebugRecorder emits (spec.md
// §4.6): mean s, mean log Lambda over every pair processed this
// timestep, and the mean Debye length over every bin visited, both in
// code length units and in meters (spec.md §9, supplemented feature 4),
// plus the total ionized-pair count for this timestep.
type Snapshot struct {
	MeanS             float64
	MeanLogL          float64
	MeanDebyeLength   float64 // code units
	MeanDebyeLengthSI float64 // meters
	IonizedPairs      int
}

// Snapshot reduces the accumulated sums into the per-timestep aggregate.
// referenceOmega0SI converts the code-unit mean Debye length to meters,
// mirroring the source's __DEBUG-only unit conversion.
func (r *Recorder) Snapshot(referenceOmega0SI float64) Snapshot {
	if r.pairCount == 0 {
		return Snapshot{IonizedPairs: r.ionizedPairs}
	}

	lambdaD := make([]float64, len(r.lambdaD2))
	for i, d2 := range r.lambdaD2 {
		lambdaD[i] = math.Sqrt(d2)
	}
	meanLambdaD := stat.Mean(lambdaD, nil)

	return Snapshot{
		MeanS:             r.sumS / r.pairCount,
		MeanLogL:          r.sumLogL / r.pairCount,
		MeanDebyeLength:   meanLambdaD,
		MeanDebyeLengthSI: meanLambdaD * speedOfLightSI / referenceOmega0SI,
		IonizedPairs:      r.ionizedPairs,
	}
}
