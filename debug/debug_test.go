package debug

import "testing"

func TestSnapshotZeroWithNoPairs(t *testing.T) {
	var r Recorder
	snap := r.Snapshot(1e15)
	if snap != (Snapshot{}) {
		t.Errorf("Snapshot() with no Add calls = %+v, want zero value", snap)
	}
}

func TestSnapshotMeansOverAddedPairs(t *testing.T) {
	var r Recorder
	r.Add(1.0, 5.0)
	r.Add(3.0, 7.0)

	snap := r.Snapshot(1e15)
	if snap.MeanS != 2.0 {
		t.Errorf("MeanS = %v, want 2.0", snap.MeanS)
	}
	if snap.MeanLogL != 6.0 {
		t.Errorf("MeanLogL = %v, want 6.0", snap.MeanLogL)
	}
}

func TestSnapshotDebyeLengthConversion(t *testing.T) {
	var r Recorder
	r.Add(1.0, 5.0) // need at least one pair for Snapshot to compute anything
	r.AddBinDebyeLength(4.0) // sqrt -> 2.0 in code units

	snap := r.Snapshot(speedOfLightSI) // referenceOmega0SI = c makes the SI conversion factor 1
	if snap.MeanDebyeLength != 2.0 {
		t.Errorf("MeanDebyeLength = %v, want 2.0", snap.MeanDebyeLength)
	}
	if snap.MeanDebyeLengthSI != 2.0 {
		t.Errorf("MeanDebyeLengthSI = %v, want 2.0 when referenceOmega0SI == c", snap.MeanDebyeLengthSI)
	}
}

func TestResetClearsAccumulators(t *testing.T) {
	var r Recorder
	r.Add(1.0, 5.0)
	r.AddBinDebyeLength(4.0)
	r.Reset()

	snap := r.Snapshot(1e15)
	if snap != (Snapshot{}) {
		t.Errorf("Snapshot() after Reset = %+v, want zero value", snap)
	}
}
