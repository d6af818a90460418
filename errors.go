package qubed

import "github.com/scigolib/qubed/internal/qerr"

// Sentinel error kinds, testable with errors.Is. Each wraps into a
// *QubeError carrying the failing operation's name.
var (
	// ErrInvalidParent is returned when an operation references a node
	// identifier no longer present in its Qube.
	ErrInvalidParent = qerr.ErrInvalidParent

	// ErrInvalidFormat is returned when ASCII, JSON, or MARS-list input
	// violates the structural rules of its format.
	ErrInvalidFormat = qerr.ErrInvalidFormat

	// ErrUnsupportedKindPair is returned when a set operation is
	// requested between coordinate-set variants it is not defined for.
	ErrUnsupportedKindPair = qerr.ErrUnsupportedKindPair

	// ErrNotFound is returned when a dimension name is not present in
	// a Qube's interner.
	ErrNotFound = qerr.ErrNotFound
)

// QubeError wraps one of the sentinel errors above with the operation
// that produced it.
type QubeError = qerr.Error
