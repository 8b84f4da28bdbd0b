package dafsa

import "errors"

// Errors returned by construction and search operations. Ordering and
// pattern problems are caller errors and must be fixed by re-supplying
// corrected input; ErrCheckFailed signals an internal invariant violation
// in the compacted array and is never recoverable.
var (
	// ErrOutOfOrder is returned by Add when a sequence sorts strictly
	// before the previously added one.
	ErrOutOfOrder = errors.New("dafsa: sequences must be added in lexicographic order")

	// ErrFinished is returned by Add after Finish has been called.
	ErrFinished = errors.New("dafsa: automaton is already finished")

	// ErrEmptyPattern is returned by the search operations when the
	// pattern or query word has no elements.
	ErrEmptyPattern = errors.New("dafsa: empty search pattern")

	// ErrInvalidPattern is returned for wildcard patterns that contain
	// elements outside the automaton's alphabet, or a '?' immediately
	// followed by '*'.
	ErrInvalidPattern = errors.New("dafsa: invalid wildcard pattern")

	// ErrInvalidDistance is returned for a negative edit distance bound.
	ErrInvalidDistance = errors.New("dafsa: edit distance must not be negative")

	// ErrCheckFailed is returned by CompactChecked when enumerating the
	// compacted array does not reproduce the input sequence set.
	ErrCheckFailed = errors.New("dafsa: compacted array does not reproduce the input sequences")
)
