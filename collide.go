package collide

import (
	"log"

	"github.com/mansfield-lab/collide/debugfile"
	"github.com/mansfield-lab/collide/errs"
	"github.com/mansfield-lab/collide/kernel"
	"github.com/mansfield-lab/collide/pairing"
	"github.com/mansfield-lab/collide/species"
)

// ionizationCounter is implemented by hooks that report how many pairs
// they flagged as ionization events this bin. It is not part of
// ionization.Hook, so Collide reads it through a type assertion.
type ionizationCounter interface {
	IonizedPairs() int
}

// Collide runs one collision group through every bin for one timestep:
// debye (already refreshed on ctx by the caller, if required) -> pairing
// -> kernel -> ionization -> debug, following the bin loop of
// Collisions::collide (spec.md §2's data-flow table, §4 steps 1-13).
// specs is indexed the same way config.Group's Group1Indices/Group2Indices
// were resolved against the species.Registry that built it. itime must
// already have been passed through PrepareTimestep for this group if it
// is a debug step.
//
// Debug statistics are accumulated into group.Recorder across every bin
// and reduced exactly once, after the bin loop (spec.md §4.6: "per bin,
// maintain sumS, sumLogL, pairCount. After all bins, emit..."). A bin is
// not the unit the debug file is indexed by — the patch is (spec.md
// glossary) — so the written record holds one scalar triple per patch,
// not one entry per bin.
func Collide(ctx *Context, group *CollisionGroup, specs []species.Species, itime int) error {
	g1 := resolveGroup(specs, group.Config.Group1Indices)
	g2 := resolveGroup(specs, group.Config.Group2Indices)
	if len(g1) == 0 || len(g2) == 0 {
		errs.Internal("collision group %d resolved to an empty species list", group.Config.ID)
	}

	numBins := g1[0].NumBins()
	debugStep := group.isDebugStep(itime)

	var totalIonized int

	for bin := 0; bin < numBins; bin++ {
		group.Hook.Prepare1(group.Config.AtomicNumberZ)

		pairs := pairing.BuildPairs(bin, g1, g2, group.Config.Intra, ctx.CellsPerBin, ctx.rng, group.Hook)
		group.Hook.Prepare3(ctx.Timestep, 1./ctx.CellsPerBin)

		if pairs.NumPairs() == 0 {
			group.Hook.Finish()
			continue
		}

		binCoeffs := kernel.NewBinCoeffs(ctx.kernelConstants, pairs.N1, pairs.N2, pairs.N12, ctx.Timestep)
		debyeLenSq := ctx.DebyeLengthSquared(bin)

		n := pairs.NumPairs()
		for i := 0; i < n; i++ {
			s1, i1 := pairs.Decode1(i)
			s2, i2 := pairs.Decode2(i)

			p1 := toKernelParticle(s1, i1)
			p2 := toKernelParticle(s2, i2)

			res := kernel.Scatter(ctx.kernelConstants, binCoeffs, p1, p2, group.Config.CoulombLog, debyeLenSq, ctx.rng)
			group.Hook.Apply(s1.Particles(), i1, s2.Particles(), i2)

			if debugStep {
				group.Recorder.Add(res.S, res.LogL)
			}
		}

		if debugStep {
			group.Recorder.AddBinDebyeLength(debyeLenSq)
		}

		// Read the hook's per-bin ionization count before Finish resets
		// it (spec.md §4.5: Finish is called once per bin).
		if counter, ok := group.Hook.(ionizationCounter); ok {
			totalIonized += counter.IonizedPairs()
		}

		group.Hook.Finish()
	}

	if totalIonized > 0 {
		log.Printf("collide: group #%d: %d pairs ionized at itime %d", group.Config.ID, totalIonized, itime)
	}
	if debugStep {
		group.Recorder.AddIonizedPairs(totalIonized)
	}

	if debugStep && group.DebugFile != nil {
		snap := group.Recorder.Snapshot(ctx.ReferenceAngularFrequencySI)
		rec := debugfile.TimestepRecord{
			Itime:       itime,
			Dims:        []int{1}, // one scalar triple for this rank's patch
			S:           []float64{snap.MeanS},
			CoulombLog:  []float64{snap.MeanLogL},
			DebyeLength: []float64{snap.MeanDebyeLength},
		}
		if err := group.DebugFile.WriteTimestep(rec); err != nil {
			return errs.NewIOFailure(group.Config.ID, group.debugPath, err)
		}
	}

	return nil
}

func resolveGroup(specs []species.Species, indices []int) []species.Species {
	out := make([]species.Species, len(indices))
	for i, idx := range indices {
		out[i] = specs[idx]
	}
	return out
}

func toKernelParticle(s species.Species, i int) kernel.Particle {
	p := s.Particles()
	return kernel.Particle{
		Mass:   s.Mass(),
		Weight: p.Weight(i),
		Charge: p.Charge(i),
		Px:     p.Momentum(0, i),
		Py:     p.Momentum(1, i),
		Pz:     p.Momentum(2, i),
	}
}
