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

// We make the registry look like a filesystem:
//  1. Keys are mapped as directories, and values are files.
//  2. A value's file content is its rendered data (see render.go) and
//     its size is the rendered length.
//  3. Paths are / separated. Name characters that can not appear in a
//     filesystem name are percent encoded (see escape.go).
//  4. Resolution is case insensitive but listings preserve the stored
//     casing.
package regtree

import (
	"fmt"
	"sort"
	"sync"
	"time"

	errors "github.com/go-errors/errors"
	"www.velocidex.com/golang/winregfs/logging"
	"www.velocidex.com/golang/winregfs/parser"
)

type SessionState int

const (
	Unmounted SessionState = iota
	Mounting
	Mounted
	Unmounting
)

func (self SessionState) String() string {
	switch self {
	case Unmounted:
		return "Unmounted"
	case Mounting:
		return "Mounting"
	case Mounted:
		return "Mounted"
	case Unmounting:
		return "Unmounting"
	}
	return "Unknown"
}

type Options struct {
	// Append the value type to each file name
	// (e.g. DisplayName.REG_SZ). The suffix becomes part of the
	// name and round trips through lookup.
	AppendExtensions bool

	// Append a newline to text renderings that do not already end
	// in one. Looks nicer when catting files.
	AppendNewline bool

	// Resolution cache sizing. Zero means defaults, a negative
	// size disables the cache.
	CacheSize int
	CacheTTL  time.Duration
}

// One attached hive. The prefix places the hive's root key below the
// mount root - empty for a single hive mount, e.g. HKLM/SYSTEM when
// mounting a config directory.
type hiveMount struct {
	prefix []string
	hive   parser.Hive
	root   parser.KeyRef
}

// A Session owns at most one attached hive set and moves through
// Unmounted -> Mounting -> Mounted -> Unmounting -> Unmounted. It is
// re-enterable: after a clean unmount the same session may mount a
// different source.
type Session struct {
	opts Options

	mu     sync.Mutex
	state  SessionState
	mounts []*hiveMount
	cache  *resolutionCache
}

func NewSession(opts Options) *Session {
	return &Session{opts: opts}
}

func (self *Session) State() SessionState {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.state
}

// Mount attaches the hive file at source, or a directory of hives
// laid out like %WINDIR%\system32\config. A hive that can not be
// parsed fails the mount - the session never mounts partially.
func (self *Session) Mount(source string) error {
	sources, err := hiveSources(source)
	if err != nil {
		return err
	}

	logger := logging.GetLogger(&logging.FSComponent)

	hives := make(map[string]parser.Hive)
	close_all := func() {
		for _, hive := range hives {
			hive.Close()
		}
	}

	for _, src := range sources {
		hive, err := parser.OpenFile(src.path)
		if err != nil {
			if !src.required {
				logger.Warn("Skipping hive %v: %v", src.path, err)
				continue
			}
			close_all()
			return fmt.Errorf("%w: %v: %v", ErrHiveParse, src.path, err)
		}
		hives[src.prefix] = hive
	}

	err = self.MountHives(hives)
	if err != nil {
		close_all()
	}
	return err
}

// MountHive attaches an already parsed hive at the mount root. The
// session takes ownership of the hive on success.
func (self *Session) MountHive(hive parser.Hive) error {
	return self.MountHives(map[string]parser.Hive{"": hive})
}

// MountHives attaches a set of parsed hives, each below its path
// prefix. On failure the caller keeps ownership of the hives.
func (self *Session) MountHives(hives map[string]parser.Hive) error {
	self.mu.Lock()
	if self.state != Unmounted {
		state := self.state
		self.mu.Unlock()
		return errors.Errorf(
			"session is %v, must be Unmounted to mount", state)
	}
	self.state = Mounting
	self.mu.Unlock()

	mounts := make([]*hiveMount, 0, len(hives))
	for prefix, hive := range hives {
		root, err := hive.Root()
		if err != nil {
			self.mu.Lock()
			self.state = Unmounted
			self.mu.Unlock()
			return fmt.Errorf("%w: %v", ErrHiveParse, err)
		}
		mounts = append(mounts, &hiveMount{
			prefix: splitPath(prefix),
			hive:   hive,
			root:   root,
		})
	}

	sort.Slice(mounts, func(i, j int) bool {
		return mounts[i].prefixString() < mounts[j].prefixString()
	})

	self.mu.Lock()
	self.mounts = mounts
	self.cache = newResolutionCache(self.opts.CacheSize, self.opts.CacheTTL)
	self.state = Mounted
	self.mu.Unlock()

	return nil
}

// Unmount tears the whole resolution cache down and releases the
// hive handles. In-flight reads that already captured their content
// still complete; new resolutions fail with ErrNotMounted.
func (self *Session) Unmount() error {
	self.mu.Lock()
	if self.state != Mounted {
		self.mu.Unlock()
		return ErrNotMounted
	}
	self.state = Unmounting
	mounts := self.mounts
	cache := self.cache
	self.mounts = nil
	self.cache = nil
	self.mu.Unlock()

	cache.Close()
	for _, mount := range mounts {
		mount.hive.Close()
	}

	self.mu.Lock()
	self.state = Unmounted
	self.mu.Unlock()

	return nil
}

// Snapshot the mounted state for one operation. Operations keep
// using their snapshot even if an unmount races them - only new
// resolutions need to fail once unmounted.
func (self *Session) live() ([]*hiveMount, *resolutionCache, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	if self.state != Mounted {
		return nil, nil, ErrNotMounted
	}
	return self.mounts, self.cache, nil
}

func (self *hiveMount) prefixString() string {
	result := ""
	for idx, component := range self.prefix {
		if idx > 0 {
			result += "/"
		}
		result += component
	}
	return result
}
