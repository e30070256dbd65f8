/*Package mpi defines the narrow MPI collaborator contract the collision
core needs: which rank this is, and whether it owns file-creation duties.
Domain decomposition, topology, and load balancing
are out of scope (spec.md §1) — Guppy's own lib/mpi wraps real OpenMPI via
cgo for its mpi_guppy binary, but that binary-level topology concern has no
operation in this spec, so it is modeled only as this interface.
*/
package mpi

// Communicator is the subset of an MPI communicator the collision core
// consults: which rank it is running on, and whether this rank is the
// master that creates (rather than opens) per-group debug files
// (spec.md §4.1, §4.6).
type Communicator interface {
	// Rank returns this process's rank within the communicator.
	Rank() int
	// IsMaster reports whether this rank is responsible for creating
	// shared resources (the debug file) rather than merely opening them.
	IsMaster() bool
}

// Single is the degenerate single-process Communicator: rank 0, always
// master. It is the default used by tests and by callers running without
// an MPI layer at all.
type Single struct{}

var _ Communicator = Single{}

// Rank always returns 0.
func (Single) Rank() int { return 0 }

// IsMaster always returns true.
func (Single) IsMaster() bool { return true }
