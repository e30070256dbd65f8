/*Package errs contains the error taxonomy used by the collision core.

Three kinds of failure are distinguished: ConfigError (bad collision-group
configuration, fatal at startup), IOFailureError (the debug file collaborator
could not be opened, created or written, fatal), and internal invariant violations,
which panic rather than return an error because they indicate a bug in this
module rather than in its input.

RuntimeArithmetic events (Debye-length floors, Coulomb-log clamps, the
cos-chi U floor, the s_max clamp) are not part of this taxonomy at all: they
are recovered silently in place, exactly as spec.md requires.
*/
package errs

import (
	"fmt"
	"runtime/debug"
)

// ConfigError reports a problem with a collision-group configuration
// discovered at construction time (spec.md §7). Index identifies which
// collision record, in the order supplied by the input-deck collaborator,
// was at fault.
type ConfigError struct {
	Index   int
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("collision record #%d: %s", e.Index, e.Message)
}

// NewConfigError builds a ConfigError for the collision record at index i.
func NewConfigError(index int, format string, a ...interface{}) *ConfigError {
	return &ConfigError{Index: index, Message: fmt.Sprintf(format, a...)}
}

// IOFailureError reports that the debug-file collaborator could not be
// opened, created or written for the named collision group (spec.md §7).
type IOFailureError struct {
	GroupID int
	Path    string
	Err     error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("collision group %d: debug file %q I/O failure: %v",
		e.GroupID, e.Path, e.Err)
}

func (e *IOFailureError) Unwrap() error { return e.Err }

// NewIOFailure wraps err as an IOFailureError for the named group/path.
func NewIOFailure(groupID int, path string, err error) *IOFailureError {
	return &IOFailureError{GroupID: groupID, Path: path, Err: err}
}

// Internal panics with a stack trace. It is reserved for states that a
// correctly-used collision core guarantees can never occur (an empty
// species group reaching the kernel after config.BuildGroups already
// validated it, for instance) — a caller bug, not a data problem.
func Internal(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	panic(fmt.Sprintf("collide: internal error: %s\n%s", msg, debug.Stack()))
}
