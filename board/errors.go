package board

import "github.com/pkg/errors"

// MalformedLevel reports a level file that failed validation: an unknown
// glyph, a missing or duplicated pusher, or mismatched box/goal counts.
// It is fatal at load time and never seen by the search.
type MalformedLevel struct {
	Path   string
	Issues error // aggregate of every problem found, via go-multierror
}

func (e *MalformedLevel) Error() string {
	return errors.Wrapf(e.Issues, "malformed level %q", e.Path).Error()
}

func (e *MalformedLevel) Unwrap() error { return e.Issues }

// InternalInvariantViolated reports a broken precondition inside the
// search core itself: Board.Move returns it for a push outside
// legal_pushes() or one that changes the box count. It is always fatal;
// callers should abort the search rather than continue past it.
type InternalInvariantViolated struct {
	err error
}

func newInvariantViolation(format string, args ...interface{}) error {
	return &InternalInvariantViolated{err: errors.Errorf(format, args...)}
}

func (e *InternalInvariantViolated) Error() string {
	return errors.Wrap(e.err, "internal invariant violated").Error()
}

func (e *InternalInvariantViolated) Unwrap() error { return e.err }
