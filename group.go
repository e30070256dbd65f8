package collide

import (
	"github.com/mansfield-lab/collide/config"
	"github.com/mansfield-lab/collide/debug"
	"github.com/mansfield-lab/collide/debugfile"
	"github.com/mansfield-lab/collide/errs"
	"github.com/mansfield-lab/collide/ionization"
	"github.com/mansfield-lab/collide/mpi"
)

// FileOpener creates or opens a debug-file collaborator, the same role
// debugfile.CreateBinaryFile plays for BinaryFile. Tests supply a fake
// opener to exercise CollisionGroup without touching a filesystem.
type FileOpener func(path string, comm mpi.Communicator, hdr debugfile.Header) (debugfile.File, error)

// CollisionGroup is a config.Group with its resources attached: an
// ionization hook (NoOp unless the group requested ionization), an
// optional debug file, and the Recorder that accumulates this group's
// per-timestep statistics (spec.md §4.1).
type CollisionGroup struct {
	Config    *config.Group
	Hook      ionization.Hook
	DebugFile debugfile.File
	Recorder  *debug.Recorder

	debugPath string
	opener    FileOpener
}

// NewCollisionGroup attaches resources to cfg. referenceOmega0SI is
// passed to the ionization hook of an ionizing group and is not used
// otherwise; the debug file's header does not record it. debugPath is
// ignored when cfg.DebugEvery is 0; open is ignored in the same case and
// may be nil.
func NewCollisionGroup(
	cfg *config.Group,
	comm mpi.Communicator,
	referenceOmega0SI float64,
	debugPath string,
	open FileOpener,
) (*CollisionGroup, error) {
	g := &CollisionGroup{
		Config:    cfg,
		Hook:      ionization.NoOp{},
		Recorder:  &debug.Recorder{},
		debugPath: debugPath,
		opener:    open,
	}

	if cfg.Ionizing {
		g.Hook = ionization.NewCoulombic(cfg.AtomicNumberZ, referenceOmega0SI)
	}

	if cfg.DebugEvery > 0 && open != nil {
		hdr := debugfile.Header{
			Version:    1,
			Species1:   cfg.Species1Names,
			Species2:   cfg.Species2Names,
			CoulombLog: cfg.CoulombLog,
			DebugEvery: cfg.DebugEvery,
		}
		f, err := open(debugPath, comm, hdr)
		if err != nil {
			return nil, errs.NewIOFailure(cfg.ID, debugPath, err)
		}
		g.DebugFile = f
	}

	return g, nil
}

// WithFreshHandles builds a clone of g that shares its Config but gets a
// fresh ionization-hook instance and a fresh debug-file handle (spec.md
// §4.1/§9: a restarted or forked process must not share live resources
// with the group it was cloned from). comm and referenceOmega0SI may
// differ from the original construction, to support reattaching after a
// restart on a different rank layout.
func (g *CollisionGroup) WithFreshHandles(comm mpi.Communicator, referenceOmega0SI float64) (*CollisionGroup, error) {
	return NewCollisionGroup(g.Config, comm, referenceOmega0SI, g.debugPath, g.opener)
}

// isDebugStep reports whether itime is a timestep this group records
// debug statistics for.
func (g *CollisionGroup) isDebugStep(itime int) bool {
	return g.Config.DebugEvery > 0 && itime%g.Config.DebugEvery == 0
}

// PrepareTimestep creates the timestep group in every debug-enabled
// group's debug file and resets its Recorder, ahead of the Collide calls
// for this itime (spec.md §4.6: "File creation of the timestep group is
// a separate operation ... invoked by the driver before collide").
func PrepareTimestep(groups []*CollisionGroup, itime int) error {
	for _, g := range groups {
		if !g.isDebugStep(itime) || g.DebugFile == nil {
			continue
		}
		if err := g.DebugFile.CreateTimestep(itime); err != nil {
			return errs.NewIOFailure(g.Config.ID, g.debugPath, err)
		}
		g.Recorder.Reset()
	}
	return nil
}

// Close releases every group's debug file.
func Close(groups []*CollisionGroup) error {
	var first error
	for _, g := range groups {
		if g.DebugFile == nil {
			continue
		}
		if err := g.DebugFile.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
