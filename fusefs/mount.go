//go:build !windows
// +build !windows

package fusefs

import (
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"www.velocidex.com/golang/winregfs/config"
	"www.velocidex.com/golang/winregfs/logging"
	"www.velocidex.com/golang/winregfs/regtree"
)

// MountServer exposes a mounted session at mountpoint. The caller
// unmounts with server.Unmount() and must keep the session mounted
// for the life of the server.
func MountServer(sess *regtree.Session, mountpoint string,
	config_obj *config.Config) (*fuse.Server, error) {

	root := &dirNode{sess: sess, path: ""}

	// The hive never changes under a mount so generous kernel
	// timeouts are safe.
	ttl := 5 * time.Second
	negative_ttl := time.Second

	fsname := config_obj.FSName
	if fsname == "" {
		fsname = "winregfs"
	}

	server, err := fs.Mount(mountpoint, root, &fs.Options{
		AttrTimeout:     &ttl,
		EntryTimeout:    &ttl,
		NegativeTimeout: &negative_ttl,
		MountOptions: fuse.MountOptions{
			FsName:     fsname,
			Name:       "winregfs",
			AllowOther: config_obj.AllowOther,
			Options:    []string{"ro"},
		},
	})
	if err != nil {
		return nil, err
	}

	logging.GetLogger(&logging.FSComponent).Info(
		"Mounted registry filesystem on %v", mountpoint)

	return server, nil
}
