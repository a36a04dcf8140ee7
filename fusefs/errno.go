//go:build !windows
// +build !windows

package fusefs

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
	"www.velocidex.com/golang/winregfs/regtree"
)

// Resolution and rendering failures arrive as ordinary negative
// results from the mapping layer; translate them to the standard
// errno the kernel expects.
func toErrno(err error) syscall.Errno {
	switch {
	case err == nil:
		return 0

	case errors.Is(err, regtree.ErrNotFound),
		errors.Is(err, regtree.ErrAmbiguousName):
		return unix.ENOENT

	case errors.Is(err, regtree.ErrNotADirectory):
		return unix.ENOTDIR

	case errors.Is(err, regtree.ErrIsADirectory):
		return unix.EISDIR

	case errors.Is(err, regtree.ErrReadOnly):
		return unix.EROFS
	}

	return unix.EIO
}
