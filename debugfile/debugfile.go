/*Package debugfile defines the per-group debug-file collaborator contract
(spec.md §4.6, §6) — the stand-in for an HDF5 file named "Collisions<id>.h5"
with root attributes {Version, species1, species2, coulomb_log,
debug_every} and, per debug step, a "t<itime:08d>" group containing the
arrays s, coulomb_log, and debyelength.

HDF5 persistence mechanics proper are out of scope (spec.md §1); this
package only fixes the interface the collision core calls through, plus
one concrete, dependency-light implementation (BinaryFile) usable in tests
and local runs without a real HDF5 binding.
*/
package debugfile

// Header is written once, at file-creation time, by the master rank
// (spec.md §4.1).
type Header struct {
	Version    uint64
	Species1   []string
	Species2   []string
	CoulombLog float64
	DebugEvery int
}

// TimestepRecord is the per-timestep payload (spec.md §4.6): one scalar
// per patch for each of s, coulomb_log, and debyelength, laid out as a
// flat array over the patch grid (spec.md calls this a 3D array; this
// package keeps the patch-grid shape as a caller-supplied dims slice so
// it stays agnostic to whatever the real decomposition looks like).
type TimestepRecord struct {
	Itime       int
	Dims        []int
	S           []float64
	CoulombLog  []float64
	DebyeLength []float64
}

// File is the debug-file collaborator contract. CreateTimestep is called
// by the driver before Collide runs (spec.md §4.6: "File creation of the
// timestep group is a separate operation...invoked by the driver before
// collide"); WriteTimestep is called once collision statistics for that
// timestep are available.
type File interface {
	// CreateTimestep creates the (empty) group for timestep itime. Only
	// the master rank actually creates it; other ranks obtain a
	// parallel-I/O handle (spec.md §4.1) and treat this as a no-op.
	CreateTimestep(itime int) error
	// WriteTimestep appends the collective arrays for a timestep already
	// created by CreateTimestep.
	WriteTimestep(rec TimestepRecord) error
	// Close releases the underlying resource.
	Close() error
}
