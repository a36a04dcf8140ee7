package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Velocidex/json"
	"github.com/Velocidex/ordereddict"
	kingpin "github.com/alecthomas/kingpin/v2"
	"www.velocidex.com/golang/winregfs/regtree"
)

var (
	ls_command = app.Command("ls",
		"List a registry key without mounting.")

	ls_hive = ls_command.Arg("hive",
		"A hive file or a system32/config directory.").Required().String()

	ls_path = ls_command.Arg("path",
		"Key path inside the hive.").Default("").String()

	cat_command = app.Command("cat",
		"Print a value's rendered content without mounting.")

	cat_hive = cat_command.Arg("hive",
		"A hive file or a system32/config directory.").Required().String()

	cat_path = cat_command.Arg("path",
		"Value path inside the hive.").Required().String()
)

func openSession(source string) (*regtree.Session, error) {
	config_obj := loadConfig()

	sess := regtree.NewSession(regtree.Options{
		AppendExtensions: config_obj.AppendExtensions,
		AppendNewline:    config_obj.AppendNewline,
		CacheSize:        config_obj.CacheSize,
		CacheTTL: time.Duration(
			config_obj.CacheTTLSeconds) * time.Second,
	})

	err := sess.Mount(source)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func doLS() error {
	sess, err := openSession(*ls_hive)
	if err != nil {
		return err
	}
	defer sess.Unmount()

	children, err := sess.ReadDir(*ls_path)
	if err != nil {
		return err
	}

	for _, child := range children {
		row := ordereddict.NewDict().
			Set("Name", child.Name()).
			Set("IsDir", child.IsDir()).
			Set("Size", child.Size()).
			Set("Mtime", child.ModTime()).
			Set("Data", child.Data())

		serialized, err := json.Marshal(row)
		if err != nil {
			return err
		}
		fmt.Println(string(serialized))
	}

	return nil
}

func doCat() error {
	sess, err := openSession(*cat_hive)
	if err != nil {
		return err
	}
	defer sess.Unmount()

	handle, err := sess.Open(*cat_path)
	if err != nil {
		return err
	}
	defer handle.Release()

	_, err = os.Stdout.Write(handle.ReadRange(0, handle.Size()))
	return err
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case ls_command.FullCommand():
			kingpin.FatalIfError(doLS(), "ls")

		case cat_command.FullCommand():
			kingpin.FatalIfError(doCat(), "cat")

		default:
			return false
		}
		return true
	})
}
