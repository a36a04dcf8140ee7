//go:build !windows
// +build !windows

package main

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	kingpin "github.com/alecthomas/kingpin/v2"
	"www.velocidex.com/golang/winregfs/fusefs"
	"www.velocidex.com/golang/winregfs/logging"
	"www.velocidex.com/golang/winregfs/regtree"
)

var (
	mount_command = app.Command("mount",
		"Mount a hive file, or a directory of hives, on a mountpoint.")

	mount_source = mount_command.Arg("hive",
		"A hive file (e.g. NTUSER.DAT) or a system32/config directory.").
		Required().String()

	mount_target = mount_command.Arg("mountpoint",
		"An existing directory to mount on.").Required().String()

	mount_append_extensions = mount_command.Flag("append_extensions",
		"Append the value type to file names (e.g. DisplayName.REG_SZ).").
		Default("true").Bool()

	mount_append_newline = mount_command.Flag("append_newline",
		"Append a newline to text file content when appropriate.").
		Default("false").Bool()

	mount_allow_other = mount_command.Flag("allow_other",
		"Allow other users to access the mount.").Bool()

	umount_command = app.Command("umount",
		"Unmount a previously mounted filesystem.")

	umount_target = umount_command.Arg("mountpoint",
		"The mountpoint to release.").Required().String()
)

func doMount() error {
	config_obj := loadConfig()
	config_obj.AppendExtensions = *mount_append_extensions
	config_obj.AppendNewline = *mount_append_newline
	if *mount_allow_other {
		config_obj.AllowOther = true
	}
	if config_obj.FSName == "" {
		config_obj.FSName = *mount_source
	}

	sess := regtree.NewSession(regtree.Options{
		AppendExtensions: config_obj.AppendExtensions,
		AppendNewline:    config_obj.AppendNewline,
		CacheSize:        config_obj.CacheSize,
		CacheTTL: time.Duration(
			config_obj.CacheTTLSeconds) * time.Second,
	})

	err := sess.Mount(*mount_source)
	if err != nil {
		return err
	}
	defer sess.Unmount()

	server, err := fusefs.MountServer(sess, *mount_target, config_obj)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		defer cancel()

		server.Wait()
	}()

	<-ctx.Done()

	logger := logging.GetLogger(&logging.ToolComponent)
	err = server.Unmount()
	if err != nil {
		logger.Error("Unmounting %v: %v", *mount_target, err)
	}
	logger.Info("Exiting! Dont forget to unmount the filesystem")

	return nil
}

func doUmount() error {
	// Let fusermount do the work - it handles the privilege dance.
	cmd := exec.Command("fusermount", "-u", *umount_target)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case mount_command.FullCommand():
			kingpin.FatalIfError(doMount(), "mount")

		case umount_command.FullCommand():
			kingpin.FatalIfError(doUmount(), "umount")

		default:
			return false
		}
		return true
	})
}
