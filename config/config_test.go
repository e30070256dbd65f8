package config

import (
	"testing"

	"github.com/mansfield-lab/collide/species"
	"github.com/mansfield-lab/collide/species/memspecies"
)

func testRegistry() species.Registry {
	p := memspecies.NewParticles(1)
	electron := memspecies.NewSpecies(p, 1.0, 0, [][2]int{{0, 1}})
	ion := memspecies.NewSpecies(p, 1836.0, 1, [][2]int{{0, 1}})
	carbon := memspecies.NewSpecies(p, 1836.0*12, 6, [][2]int{{0, 1}})
	return memspecies.NewRegistry([]string{"electron", "ion", "carbon"}, []species.Species{electron, ion, carbon})
}

func TestParseDeckRoundTrip(t *testing.T) {
	text := `
[Simulation]
ReferenceAngularFrequencySI = 1.88e15

[Collisions "ei"]
Species1   = electron
Species2   = ion
CoulombLog = 0
DebugEvery = 10
Ionizing   = true
`
	deck, err := ParseDeck(text)
	if err != nil {
		t.Fatalf("ParseDeck: %v", err)
	}
	if deck.ReferenceAngularFrequencySI != 1.88e15 {
		t.Errorf("ReferenceAngularFrequencySI = %v, want 1.88e15", deck.ReferenceAngularFrequencySI)
	}
	if len(deck.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(deck.Records))
	}
	rec := deck.Records[0]
	if len(rec.Species1) != 1 || rec.Species1[0] != "electron" {
		t.Errorf("Species1 = %v, want [electron]", rec.Species1)
	}
	if !rec.Ionizing {
		t.Errorf("Ionizing = false, want true")
	}
}

func TestBuildGroupsResolvesIndices(t *testing.T) {
	reg := testRegistry()
	deck := &Deck{
		ReferenceAngularFrequencySI: 1e15,
		Records: []Record{
			{Species1: []string{"electron"}, Species2: []string{"ion"}, CoulombLog: 0, DebugEvery: 0},
		},
	}
	groups, debyeRequired, err := BuildGroups(deck, reg)
	if err != nil {
		t.Fatalf("BuildGroups: %v", err)
	}
	if !debyeRequired {
		t.Errorf("debyeRequired = false, want true for CoulombLog <= 0")
	}
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if groups[0].Group1Indices[0] != 0 || groups[0].Group2Indices[0] != 1 {
		t.Errorf("resolved indices = %v/%v, want [0]/[1]", groups[0].Group1Indices, groups[0].Group2Indices)
	}
	if groups[0].Intra {
		t.Errorf("Intra = true, want false for disjoint species")
	}
}

func TestBuildGroupsDetectsIntraCollisions(t *testing.T) {
	reg := testRegistry()
	deck := &Deck{
		ReferenceAngularFrequencySI: 1e15,
		Records: []Record{
			{Species1: []string{"electron"}, Species2: []string{"electron"}, CoulombLog: 5},
		},
	}
	groups, _, err := BuildGroups(deck, reg)
	if err != nil {
		t.Fatalf("BuildGroups: %v", err)
	}
	if !groups[0].Intra {
		t.Errorf("Intra = false, want true for identical species1/species2")
	}
}

func TestBuildGroupsRejectsPartialOverlap(t *testing.T) {
	reg := testRegistry()
	deck := &Deck{
		ReferenceAngularFrequencySI: 1e15,
		Records: []Record{
			{Species1: []string{"electron", "ion"}, Species2: []string{"ion"}, CoulombLog: 5},
		},
	}
	if _, _, err := BuildGroups(deck, reg); err == nil {
		t.Fatalf("BuildGroups accepted partially overlapping groups, want a ConfigError")
	}
}

func TestBuildGroupsRejectsUnknownSpecies(t *testing.T) {
	reg := testRegistry()
	deck := &Deck{
		ReferenceAngularFrequencySI: 1e15,
		Records: []Record{
			{Species1: []string{"positron"}, Species2: []string{"ion"}, CoulombLog: 5},
		},
	}
	if _, _, err := BuildGroups(deck, reg); err == nil {
		t.Fatalf("BuildGroups accepted an unknown species name, want a ConfigError")
	}
}

func TestBuildGroupsRequiresReferenceFrequencyWhenRecordsPresent(t *testing.T) {
	reg := testRegistry()
	deck := &Deck{
		ReferenceAngularFrequencySI: 0,
		Records: []Record{
			{Species1: []string{"electron"}, Species2: []string{"ion"}, CoulombLog: 5},
		},
	}
	if _, _, err := BuildGroups(deck, reg); err == nil {
		t.Fatalf("BuildGroups accepted a zero reference frequency with records present")
	}
}

func TestBuildGroupsIonizingResolvesAtomicNumber(t *testing.T) {
	reg := testRegistry()
	deck := &Deck{
		ReferenceAngularFrequencySI: 1e15,
		Records: []Record{
			{Species1: []string{"electron"}, Species2: []string{"carbon"}, CoulombLog: 5, Ionizing: true},
		},
	}
	groups, _, err := BuildGroups(deck, reg)
	if err != nil {
		t.Fatalf("BuildGroups: %v", err)
	}
	if groups[0].AtomicNumberZ != 6 {
		t.Errorf("AtomicNumberZ = %d, want 6 for carbon", groups[0].AtomicNumberZ)
	}
}

func TestBuildGroupsRejectsIonizingIntra(t *testing.T) {
	reg := testRegistry()
	deck := &Deck{
		ReferenceAngularFrequencySI: 1e15,
		Records: []Record{
			{Species1: []string{"electron"}, Species2: []string{"electron"}, CoulombLog: 5, Ionizing: true},
		},
	}
	if _, _, err := BuildGroups(deck, reg); err == nil {
		t.Fatalf("BuildGroups accepted an ionizing intra-species group, want a ConfigError")
	}
}
