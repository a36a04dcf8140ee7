//go:build !windows
// +build !windows

package fusefs

import (
	"context"
	"testing"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

// Every mutating callback must reject uniformly with EROFS, never
// ENOSYS and never a partial success.
func TestWriteRejection(t *testing.T) {
	ctx := context.Background()
	dir := &dirNode{}
	file := &fileNode{}

	_, _, _, errno := dir.Create(ctx, "new", 0, 0644, &fuse.EntryOut{})
	assert.Equal(t, unix.EROFS, errno)

	_, errno = dir.Mkdir(ctx, "new", 0755, &fuse.EntryOut{})
	assert.Equal(t, unix.EROFS, errno)

	assert.Equal(t, unix.EROFS, dir.Rmdir(ctx, "Software"))
	assert.Equal(t, unix.EROFS, dir.Unlink(ctx, "DisplayName"))
	assert.Equal(t, unix.EROFS, dir.Rename(ctx, "a", dir, "b", 0))

	_, errno = dir.Symlink(ctx, "target", "link", &fuse.EntryOut{})
	assert.Equal(t, unix.EROFS, errno)

	_, errno = dir.Link(ctx, dir, "link", &fuse.EntryOut{})
	assert.Equal(t, unix.EROFS, errno)

	_, errno = dir.Mknod(ctx, "dev", 0644, 0, &fuse.EntryOut{})
	assert.Equal(t, unix.EROFS, errno)

	assert.Equal(t, unix.EROFS,
		dir.Setattr(ctx, nil, &fuse.SetAttrIn{}, &fuse.AttrOut{}))
	assert.Equal(t, unix.EROFS, dir.Setxattr(ctx, "user.x", nil, 0))
	assert.Equal(t, unix.EROFS, dir.Removexattr(ctx, "user.x"))

	assert.Equal(t, unix.EROFS,
		file.Setattr(ctx, nil, &fuse.SetAttrIn{}, &fuse.AttrOut{}))
	assert.Equal(t, unix.EROFS, file.Setxattr(ctx, "user.x", nil, 0))
	assert.Equal(t, unix.EROFS, file.Removexattr(ctx, "user.x"))

	_, errno = file.Write(ctx, nil, []byte("data"), 0)
	assert.Equal(t, unix.EROFS, errno)
}
