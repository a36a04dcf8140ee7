//go:build !windows
// +build !windows

package fusefs

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"golang.org/x/sys/unix"
)

// The registry is mounted read only. Every mutating callback is
// implemented and rejected explicitly - relying on the go-fuse
// defaults would surface ENOSYS instead of EROFS.

var _ = (fs.NodeCreater)((*dirNode)(nil))
var _ = (fs.NodeMkdirer)((*dirNode)(nil))
var _ = (fs.NodeRmdirer)((*dirNode)(nil))
var _ = (fs.NodeUnlinker)((*dirNode)(nil))
var _ = (fs.NodeRenamer)((*dirNode)(nil))
var _ = (fs.NodeSymlinker)((*dirNode)(nil))
var _ = (fs.NodeLinker)((*dirNode)(nil))
var _ = (fs.NodeMknoder)((*dirNode)(nil))
var _ = (fs.NodeSetattrer)((*dirNode)(nil))
var _ = (fs.NodeSetxattrer)((*dirNode)(nil))
var _ = (fs.NodeRemovexattrer)((*dirNode)(nil))

func (self *dirNode) Create(ctx context.Context, name string,
	flags uint32, mode uint32, out *fuse.EntryOut) (
	*fs.Inode, fs.FileHandle, uint32, syscall.Errno) {
	return nil, nil, 0, unix.EROFS
}

func (self *dirNode) Mkdir(ctx context.Context, name string,
	mode uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return nil, unix.EROFS
}

func (self *dirNode) Rmdir(ctx context.Context, name string) syscall.Errno {
	return unix.EROFS
}

func (self *dirNode) Unlink(ctx context.Context, name string) syscall.Errno {
	return unix.EROFS
}

func (self *dirNode) Rename(ctx context.Context, name string,
	newParent fs.InodeEmbedder, newName string, flags uint32) syscall.Errno {
	return unix.EROFS
}

func (self *dirNode) Symlink(ctx context.Context, target, name string,
	out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return nil, unix.EROFS
}

func (self *dirNode) Link(ctx context.Context, target fs.InodeEmbedder,
	name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return nil, unix.EROFS
}

func (self *dirNode) Mknod(ctx context.Context, name string,
	mode uint32, dev uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return nil, unix.EROFS
}

func (self *dirNode) Setattr(ctx context.Context, f fs.FileHandle,
	in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	return unix.EROFS
}

func (self *dirNode) Setxattr(ctx context.Context, attr string,
	data []byte, flags uint32) syscall.Errno {
	return unix.EROFS
}

func (self *dirNode) Removexattr(ctx context.Context, attr string) syscall.Errno {
	return unix.EROFS
}

var _ = (fs.NodeSetattrer)((*fileNode)(nil))
var _ = (fs.NodeWriter)((*fileNode)(nil))
var _ = (fs.NodeSetxattrer)((*fileNode)(nil))
var _ = (fs.NodeRemovexattrer)((*fileNode)(nil))

func (self *fileNode) Setattr(ctx context.Context, f fs.FileHandle,
	in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	return unix.EROFS
}

func (self *fileNode) Write(ctx context.Context, f fs.FileHandle,
	data []byte, off int64) (uint32, syscall.Errno) {
	return 0, unix.EROFS
}

func (self *fileNode) Setxattr(ctx context.Context, attr string,
	data []byte, flags uint32) syscall.Errno {
	return unix.EROFS
}

func (self *fileNode) Removexattr(ctx context.Context, attr string) syscall.Errno {
	return unix.EROFS
}
