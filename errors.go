package sufex

import "errors"

// Sentinel errors returned at the public boundary. The core never retries;
// failures reported as errors are one of these, optionally wrapped with
// fmt.Errorf("%w: ...") for context. BlockArrayIter.Deref does not return
// an error: dereferencing at EOI panics with an index out of range.
var (
	// ErrOutOfRange signals an inconsistent index or size argument: a Pos
	// type too narrow for the input, a destination slice of the wrong
	// length, or a BlockArray Get/Set past the end.
	ErrOutOfRange = errors.New("sufex: index or size out of range")

	// ErrCapacity signals that a pool allocation failed.
	ErrCapacity = errors.New("sufex: allocation failed")

	// ErrPortionMismatch is returned by Portions.CheckCovers when the parts
	// do not exactly tile the Portions' own Range. Apply and ApplyDynArgs
	// do not check coverage.
	ErrPortionMismatch = errors.New("sufex: portions do not cover the requested range")

	// ErrMisconfiguration signals that a collaborator (memory pool, worker
	// pool) was wired up inconsistently with the component using it.
	ErrMisconfiguration = errors.New("sufex: collaborator misconfigured")
)
