package regtree

import errors "github.com/go-errors/errors"

var (
	// Normal negative result of resolution - the bridge layer maps
	// this to ENOENT, it is not a fault.
	ErrNotFound = errors.New("not found")

	ErrNotMounted = errors.New("not mounted")

	// Operation mismatched with the node kind.
	ErrIsADirectory  = errors.New("is a directory")
	ErrNotADirectory = errors.New("not a directory")

	// Two sibling names collided after escaping. Resolution of the
	// colliding name fails deterministically.
	ErrAmbiguousName = errors.New("name is ambiguous after escaping")

	// Any mutating callback.
	ErrReadOnly = errors.New("read-only filesystem")

	// Fatal at mount time only - the hive could not be parsed.
	ErrHiveParse = errors.New("hive parse error")
)
