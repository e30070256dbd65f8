/*Package config implements the collision core's side of the external
input-deck collaborator (spec.md §6): the raw Collisions record shape the
upstream Python parser hands over, and the validation/lowering step
(BuildGroups) that turns a list of those records into validated collision
groups.

Record parsing here uses an INI-style deck read through gcfg, standing in
for the upstream parser in tests and local tooling, the way Guppy's own
lib/parse.go separates RawArgs (what the user/deck wrote) from Args (what
survives validation).
*/
package config

import (
	"sort"

	"gopkg.in/gcfg.v1"
)

// Record is one collision relation as read from the input deck (spec.md
// §6): species1/species2 name lists, an optional fixed Coulomb log
// (<= 0 means "auto"), an optional debug cadence, and an optional
// ionization toggle.
type Record struct {
	Species1   []string
	Species2   []string
	CoulombLog float64 // 0 means "not set" -> auto
	DebugEvery int
	Ionizing   bool
}

type iniRecord struct {
	Species1   []string
	Species2   []string
	CoulombLog float64
	DebugEvery int
	Ionizing   bool
}

type iniDeck struct {
	Collisions map[string]*iniRecord
}

// Deck is a parsed input deck: an ordered list of collision records plus
// the simulation-wide reference angular frequency that BuildGroups
// requires whenever any record is present, whatever its Coulomb-log mode
// (spec.md §6: "referenceAngularFrequency_SI must be > 0
// when any record is present").
type Deck struct {
	ReferenceAngularFrequencySI float64
	Records                     []Record
}

// ParseDeck parses an INI-style deck of the form:
//
//	[Simulation]
//	ReferenceAngularFrequencySI = 1.88e15
//
//	[Collisions "electron-ion"]
//	Species1   = electron
//	Species2   = ion
//	CoulombLog = 0
//	DebugEvery = 100
//	Ionizing   = true
//
// Section names are sorted lexically to give deterministic record order
// (gcfg preserves sections in a map, which Go does not iterate
// deterministically).
func ParseDeck(text string) (*Deck, error) {
	var raw struct {
		Simulation struct {
			ReferenceAngularFrequencySI float64
		}
		Collisions map[string]*iniRecord
	}
	if err := gcfg.ReadStringInto(&raw, text); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw.Collisions))
	for name := range raw.Collisions {
		names = append(names, name)
	}
	sort.Strings(names)

	deck := &Deck{ReferenceAngularFrequencySI: raw.Simulation.ReferenceAngularFrequencySI}
	for _, name := range names {
		r := raw.Collisions[name]
		deck.Records = append(deck.Records, Record{
			Species1:   r.Species1,
			Species2:   r.Species2,
			CoulombLog: r.CoulombLog,
			DebugEvery: r.DebugEvery,
			Ionizing:   r.Ionizing,
		})
	}
	return deck, nil
}
