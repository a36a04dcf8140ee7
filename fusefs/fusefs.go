//go:build !windows
// +build !windows

/*
   WinRegFS - Mount Windows registry hives as a filesystem
   Copyright (C) 2019-2025 Rapid7 Inc.

   This program is free software: you can redistribute it and/or modify
   it under the terms of the GNU Affero General Public License as published
   by the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   This program is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
   GNU Affero General Public License for more details.

   You should have received a copy of the GNU Affero General Public License
   along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// The bridge between the kernel facing go-fuse API and the mapping
// layer. Nodes here are thin: every callback forwards a path to the
// session and translates the result. The kernel dispatches callbacks
// concurrently; the session is safe for that.
package fusefs

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"golang.org/x/sys/unix"
	"www.velocidex.com/golang/winregfs/regtree"
)

const (
	xattrDataType = "user.registry.datatype"
	xattrIsText   = "user.registry.text"
)

type dirNode struct {
	fs.Inode

	sess *regtree.Session

	// Escaped path from the mount root, "" for the root itself.
	path string
}

var _ = (fs.NodeGetattrer)((*dirNode)(nil))
var _ = (fs.NodeLookuper)((*dirNode)(nil))
var _ = (fs.NodeReaddirer)((*dirNode)(nil))

func (self *dirNode) Getattr(ctx context.Context,
	f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {

	node, err := self.sess.Stat(self.path)
	if err != nil {
		return toErrno(err)
	}

	fillAttr(&out.Attr, node)
	return 0
}

func (self *dirNode) Lookup(ctx context.Context,
	name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {

	child_path := joinPath(self.path, name)
	node, err := self.sess.Stat(child_path)
	if err != nil {
		return nil, toErrno(err)
	}

	fillAttr(&out.Attr, node)

	if node.IsDir() {
		child := self.NewInode(ctx, &dirNode{
			sess: self.sess,
			path: child_path,
		}, fs.StableAttr{Mode: fuse.S_IFDIR})
		return child, 0
	}

	value_node, ok := node.(*regtree.ValueNode)
	if !ok {
		return nil, unix.EIO
	}

	child := self.NewInode(ctx, &fileNode{
		sess: self.sess,
		path: child_path,
		node: value_node,
	}, fs.StableAttr{Mode: fuse.S_IFREG})
	return child, 0
}

func (self *dirNode) Readdir(ctx context.Context) (
	fs.DirStream, syscall.Errno) {

	children, err := self.sess.ReadDir(self.path)
	if err != nil {
		return nil, toErrno(err)
	}

	entries := make([]fuse.DirEntry, 0, len(children))
	for _, child := range children {
		mode := uint32(fuse.S_IFREG)
		if child.IsDir() {
			mode = fuse.S_IFDIR
		}
		entries = append(entries, fuse.DirEntry{
			Name: child.Name(),
			Mode: mode,
		})
	}

	return fs.NewListDirStream(entries), 0
}

// Directories have no extended attributes.
func (self *dirNode) Getxattr(ctx context.Context,
	attr string, dest []byte) (uint32, syscall.Errno) {
	return 0, unix.ENODATA
}

func (self *dirNode) Listxattr(ctx context.Context,
	dest []byte) (uint32, syscall.Errno) {
	return 0, 0
}

type fileNode struct {
	fs.Inode

	sess *regtree.Session
	path string
	node *regtree.ValueNode
}

var _ = (fs.NodeGetattrer)((*fileNode)(nil))
var _ = (fs.NodeOpener)((*fileNode)(nil))
var _ = (fs.NodeReader)((*fileNode)(nil))
var _ = (fs.NodeReleaser)((*fileNode)(nil))
var _ = (fs.NodeGetxattrer)((*fileNode)(nil))
var _ = (fs.NodeListxattrer)((*fileNode)(nil))

func (self *fileNode) Getattr(ctx context.Context,
	f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {

	fillAttr(&out.Attr, self.node)
	return 0
}

func (self *fileNode) Open(ctx context.Context, flags uint32) (
	fs.FileHandle, uint32, syscall.Errno) {

	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, unix.EROFS
	}

	handle, err := self.sess.Open(self.path)
	if err != nil {
		return nil, 0, toErrno(err)
	}

	// Content is immutable for the life of the mount so the kernel
	// page cache is always valid.
	return &fileHandle{handle: handle}, fuse.FOPEN_KEEP_CACHE, 0
}

func (self *fileNode) Read(ctx context.Context, f fs.FileHandle,
	dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {

	fh, ok := f.(*fileHandle)
	if !ok {
		return nil, unix.EIO
	}

	data := fh.handle.ReadRange(off, int64(len(dest)))
	return fuse.ReadResultData(data), 0
}

func (self *fileNode) Release(ctx context.Context,
	f fs.FileHandle) syscall.Errno {

	fh, ok := f.(*fileHandle)
	if ok {
		fh.handle.Release()
	}
	return 0
}

func (self *fileNode) Getxattr(ctx context.Context,
	attr string, dest []byte) (uint32, syscall.Errno) {

	var value string
	switch attr {
	case xattrDataType:
		value = self.node.TypeTag()
	case xattrIsText:
		value = "false"
		if self.node.IsText() {
			value = "true"
		}
	default:
		return 0, unix.ENODATA
	}

	if len(dest) < len(value) {
		return uint32(len(value)), unix.ERANGE
	}
	return uint32(copy(dest, value)), 0
}

func (self *fileNode) Listxattr(ctx context.Context,
	dest []byte) (uint32, syscall.Errno) {

	names := xattrDataType + "\x00" + xattrIsText + "\x00"
	if len(dest) < len(names) {
		return uint32(len(names)), unix.ERANGE
	}
	return uint32(copy(dest, names)), 0
}

type fileHandle struct {
	handle *regtree.FileHandle
}

func fillAttr(out *fuse.Attr, node regtree.Node) {
	if node.IsDir() {
		out.Mode = fuse.S_IFDIR | 0755
	} else {
		out.Mode = fuse.S_IFREG | 0644
		out.Size = uint64(node.Size())
	}

	modtime := node.ModTime()
	out.SetTimes(nil, &modtime, nil)
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
