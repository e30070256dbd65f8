package config

import (
	"log"

	"github.com/mansfield-lab/collide/errs"
	"github.com/mansfield-lab/collide/species"
)

// Group is a validated, lowered collision-group configuration: the result
// of resolving a Record's species names to registry indices and checking
// every invariant in spec.md §3. It carries no resources of its own
// (ionization hook, debug file) — those are allocated by the collide
// package's NewCollisionGroup, keeping this package's dependency graph a
// one-way street (config does not import collide).
type Group struct {
	ID            int
	Group1Indices []int
	Group2Indices []int
	Species1Names []string
	Species2Names []string
	Intra         bool
	CoulombLog    float64 // <= 0 means auto
	DebugEvery    int
	Ionizing      bool
	AtomicNumberZ int
}

// BuildGroups validates and lowers deck into a list of Groups, resolving
// species names through reg. DebyeRequired reports whether any group
// requested automatic Coulomb-log computation, so the caller knows
// whether to run debye.Estimator at all this timestep (spec.md §3
// invariant 4, §9's Context replacing the source's static flag).
func BuildGroups(deck *Deck, reg species.Registry) (groups []*Group, debyeRequired bool, err error) {
	if len(deck.Records) > 0 && deck.ReferenceAngularFrequencySI <= 0 {
		return nil, false, errs.NewConfigError(0,
			"referenceAngularFrequency_SI must be > 0 when any collision record is present")
	}

	for i, rec := range deck.Records {
		g, err := buildOne(i, rec, reg)
		if err != nil {
			return nil, false, err
		}
		if g.CoulombLog <= 0 {
			debyeRequired = true
		}
		groups = append(groups, g)

		mode := "auto"
		if g.CoulombLog > 0 {
			mode = "fixed"
		}
		log.Printf("collide: group #%d: %s, coulomb log %s, debug every %d",
			i, collisionDescription(g), mode, g.DebugEvery)
	}

	return groups, debyeRequired, nil
}

func collisionDescription(g *Group) string {
	if g.Intra {
		return "intra-species collisions"
	}
	return "inter-species collisions"
}

func buildOne(index int, rec Record, reg species.Registry) (*Group, error) {
	if len(rec.Species1) == 0 {
		return nil, errs.NewConfigError(index, "species1 is empty")
	}
	if len(rec.Species2) == 0 {
		return nil, errs.NewConfigError(index, "species2 is empty")
	}
	if rec.DebugEvery < 0 {
		return nil, errs.NewConfigError(index, "debug_every must be >= 0, got %d", rec.DebugEvery)
	}

	idx1, err := resolve(index, rec.Species1, reg)
	if err != nil {
		return nil, err
	}
	idx2, err := resolve(index, rec.Species2, reg)
	if err != nil {
		return nil, err
	}

	intra := sameSet(idx1, idx2)
	if intra {
		// Normalize: an intra group is represented by one resolved list.
		idx2 = idx1
	} else if overlaps(idx1, idx2) {
		return nil, errs.NewConfigError(index,
			"species1 and species2 overlap but are not identical; "+
				"groups must be disjoint unless they describe intra-species collisions")
	}

	g := &Group{
		ID:            index,
		Group1Indices: idx1,
		Group2Indices: idx2,
		Species1Names: rec.Species1,
		Species2Names: rec.Species2,
		Intra:         intra,
		CoulombLog:    rec.CoulombLog,
		DebugEvery:    rec.DebugEvery,
		Ionizing:      rec.Ionizing,
	}

	if rec.Ionizing {
		if intra {
			return nil, errs.NewConfigError(index, "ionizing collisions cannot be intra-species")
		}
		z, err := ionizationAtomicNumber(index, idx1, idx2, reg)
		if err != nil {
			return nil, err
		}
		g.AtomicNumberZ = z
	}

	return g, nil
}

func resolve(recordIndex int, names []string, reg species.Registry) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		j, ok := reg.Index(name)
		if !ok {
			return nil, errs.NewConfigError(recordIndex, "unknown species %q", name)
		}
		idx[i] = j
	}
	return idx, nil
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]bool, len(a))
	for _, x := range a {
		seen[x] = true
	}
	for _, y := range b {
		if !seen[y] {
			return false
		}
	}
	return true
}

func overlaps(a, b []int) bool {
	seen := make(map[int]bool, len(a))
	for _, x := range a {
		seen[x] = true
	}
	for _, y := range b {
		if seen[y] {
			return true
		}
	}
	return false
}

// ionizationAtomicNumber validates that each group shares one mass and one
// Z, that one group has Z == 0 and the other is a single ion species with
// Z > 0, per spec.md §3 invariant 2, and returns that ion's Z. The mass of
// the Z == 0 group is not compared against any electron mass.
func ionizationAtomicNumber(recordIndex int, idx1, idx2 []int, reg species.Registry) (int, error) {
	g1Z, g1Mass, g1Uniform := groupProperties(idx1, reg)
	g2Z, g2Mass, g2Uniform := groupProperties(idx2, reg)

	if !g1Uniform {
		return 0, errs.NewConfigError(recordIndex, "species1 must share a common mass for ionizing collisions")
	}
	if !g2Uniform {
		return 0, errs.NewConfigError(recordIndex, "species2 must share a common mass for ionizing collisions")
	}

	switch {
	case g1Z == 0 && g2Z > 0:
		_ = g1Mass
		if len(idx2) != 1 {
			return 0, errs.NewConfigError(recordIndex, "ionizing collisions require exactly one ion species")
		}
		return g2Z, nil
	case g2Z == 0 && g1Z > 0:
		_ = g2Mass
		if len(idx1) != 1 {
			return 0, errs.NewConfigError(recordIndex, "ionizing collisions require exactly one ion species")
		}
		return g1Z, nil
	default:
		return 0, errs.NewConfigError(recordIndex,
			"ionizing collisions require one group of electrons (Z=0) and one ion species (Z>0)")
	}
}

func groupProperties(idx []int, reg species.Registry) (z int, mass float64, uniform bool) {
	uniform = true
	for i, si := range idx {
		s := reg.Species(si)
		if i == 0 {
			z = s.AtomicNumber()
			mass = s.Mass()
			continue
		}
		if s.AtomicNumber() != z || s.Mass() != mass {
			uniform = false
		}
	}
	return z, mass, uniform
}
