package debugfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mansfield-lab/collide/mpi"
)

func TestCreateAndWriteTimestepRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Collisions0.bin")

	hdr := Header{
		Version:    1,
		Species1:   []string{"electron"},
		Species2:   []string{"ion"},
		CoulombLog: 0,
		DebugEvery: 10,
	}

	bf, err := CreateBinaryFile(path, mpi.Single{}, hdr)
	if err != nil {
		t.Fatalf("CreateBinaryFile: %v", err)
	}

	if err := bf.CreateTimestep(10); err != nil {
		t.Fatalf("CreateTimestep: %v", err)
	}

	rec := TimestepRecord{
		Itime:       10,
		Dims:        []int{2},
		S:           []float64{0.1, 0.2},
		CoulombLog:  []float64{5.0, 5.1},
		DebyeLength: []float64{1.5, 1.6},
	}
	if err := bf.WriteTimestep(rec); err != nil {
		t.Fatalf("WriteTimestep: %v", err)
	}

	if err := bf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat after close: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("file is empty after writing a timestep")
	}
}

func TestCreateBinaryFileRejectsBadMagicOnReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.bin")
	if err := os.WriteFile(path, []byte("not a collide debug file"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := CreateBinaryFile(path, mpi.Single{}, Header{})
	if err == nil {
		t.Fatalf("CreateBinaryFile on a garbage file succeeded, want a magic-number error")
	}
}

func TestWriteTimestepOnClosedFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Collisions1.bin")
	bf, err := CreateBinaryFile(path, mpi.Single{}, Header{Version: 1})
	if err != nil {
		t.Fatalf("CreateBinaryFile: %v", err)
	}
	if err := bf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	err = bf.WriteTimestep(TimestepRecord{Itime: 1})
	if err == nil {
		t.Fatalf("WriteTimestep on a closed file succeeded, want an error")
	}
}
