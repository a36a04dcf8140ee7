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
package regtree

import (
	"sort"
	"strings"

	"www.velocidex.com/golang/winregfs/logging"
	"www.velocidex.com/golang/winregfs/parser"
)

func splitPath(path string) []string {
	var components []string
	for _, component := range strings.Split(path, "/") {
		if component != "" {
			components = append(components, component)
		}
	}
	return components
}

// Cache keys are lowercased so lookups with different casing share
// the same entry.
func cacheKey(components []string) string {
	return strings.ToLower(strings.Join(components, "/"))
}

// ReadDir lists the children of the key at path: subkeys first, then
// values, each group ordered lexicographically by escaped name. The
// order is stable across calls for the life of the mount.
func (self *Session) ReadDir(path string) ([]Node, error) {
	mounts, cache, err := self.live()
	if err != nil {
		return nil, err
	}

	return self.listChildren(mounts, cache, splitPath(path))
}

// Stat resolves a path to a node. The empty path always resolves to
// the mount root. When a key and a value share a name the key is
// returned - keys sort first - and Open is the file-side view. Over
// FUSE the key shadows the value (the kernel opens through lookup),
// so the value listing entry is visible but only readable through
// Open directly.
func (self *Session) Stat(path string) (Node, error) {
	components := splitPath(path)

	mounts, cache, err := self.live()
	if err != nil {
		return nil, err
	}

	if len(components) == 0 {
		return rootNode(mounts), nil
	}

	children, err := self.listChildren(
		mounts, cache, components[:len(components)-1])
	if err != nil {
		return nil, err
	}

	basename := components[len(components)-1]
	for _, child := range children {
		if !strings.EqualFold(child.Name(), basename) {
			continue
		}
		if isAmbiguous(child) {
			return nil, ErrAmbiguousName
		}
		return child, nil
	}

	return nil, ErrNotFound
}

// Open prepares a value for reading. The rendered content is
// captured in the handle so reads still complete if the session is
// unmounted underneath them.
func (self *Session) Open(path string) (*FileHandle, error) {
	components := splitPath(path)
	if len(components) == 0 {
		return nil, ErrIsADirectory
	}

	mounts, cache, err := self.live()
	if err != nil {
		return nil, err
	}

	children, err := self.listChildren(
		mounts, cache, components[:len(components)-1])
	if err != nil {
		return nil, err
	}

	basename := components[len(components)-1]
	key_seen := false
	for _, child := range children {
		if !strings.EqualFold(child.Name(), basename) {
			continue
		}

		value_node, ok := child.(*ValueNode)
		if !ok {
			key_seen = true
			continue
		}
		if value_node.ambiguous {
			return nil, ErrAmbiguousName
		}
		return &FileHandle{
			node: value_node,
			data: value_node.Render(),
		}, nil
	}

	if key_seen {
		return nil, ErrIsADirectory
	}
	return nil, ErrNotFound
}

// This function is recursive. It ascends to the mount root and
// resolves all keys along the path to the required key, trying the
// LRU at each level. In practice most calls stop after one level
// because the parent listing is already cached.
func (self *Session) listChildren(
	mounts []*hiveMount, cache *resolutionCache,
	components []string) (result []Node, err error) {

	key := cacheKey(components)
	cached, pres := cache.GetDir(key)
	if pres {
		return cached.children, cached.err
	}

	// Cache the result of this function
	defer func() {
		cache.SetDir(key, &readDirLRUItem{
			children: result,
			err:      err,
		})
	}()

	// Listing the mount root.
	if len(components) == 0 {
		root := rootNode(mounts)
		return self.listFrom(mounts, root.components, root.key), nil
	}

	parent := components[:len(components)-1]
	basename := components[len(components)-1]

	children, err := self.listChildren(mounts, cache, parent)
	if err != nil {
		return nil, err
	}

	// Find the required key in the parent directory listing.
	value_seen := false
	for _, child := range children {
		if !strings.EqualFold(child.Name(), basename) {
			continue
		}

		key_node, ok := child.(*KeyNode)
		if !ok {
			value_seen = true
			continue
		}
		if key_node.ambiguous {
			return nil, ErrAmbiguousName
		}

		// Found it!
		return self.listFrom(
			mounts, key_node.components, key_node.key), nil
	}

	if value_seen {
		return nil, ErrNotADirectory
	}
	return nil, ErrNotFound
}

// listFrom builds the listing below one directory: synthetic
// directories from hive mount prefixes first, then the subkeys and
// values of the backing registry key if there is one.
func (self *Session) listFrom(
	mounts []*hiveMount,
	parent_components []string, key parser.KeyRef) []Node {

	var keys []Node
	var values []Node

	depth := len(parent_components)
	seen_prefixes := make(map[string]bool)

	for _, mount := range mounts {
		if len(mount.prefix) <= depth ||
			!prefixMatches(mount.prefix, parent_components) {
			continue
		}

		name := mount.prefix[depth]
		if seen_prefixes[strings.ToLower(name)] {
			continue
		}
		seen_prefixes[strings.ToLower(name)] = true

		child := &KeyNode{
			components: childPath(parent_components, name),
		}
		if len(mount.prefix) == depth+1 {
			// The hive root itself sits here.
			child.key = mount.root
			child.modtime = mount.root.LastWriteTime()
		}
		keys = append(keys, child)
	}

	if key != nil {
		for _, subkey := range key.Subkeys() {
			keys = append(keys, &KeyNode{
				components: childPath(
					parent_components, Escape(subkey.Name())),
				modtime: subkey.LastWriteTime(),
				key:     subkey,
			})
		}

		// All values carry their mod time from the parent key - the
		// hive does not timestamp individual values.
		key_mod_time := key.LastWriteTime()
		for _, value := range key.Values() {
			basename := value.ValueName()
			if basename == "" {
				basename = "@"
			}
			name := Escape(basename)
			if self.opts.AppendExtensions {
				name += "." + value.TypeString()
			}
			values = append(values, &ValueNode{
				components:     childPath(parent_components, name),
				value_name:     value.ValueName(),
				type_name:      value.TypeString(),
				value_type:     value.Type(),
				modtime:        key_mod_time,
				value:          value,
				append_newline: self.opts.AppendNewline,
			})
		}
	}

	sortNodes(keys)
	sortNodes(values)

	markAmbiguous(keys, parent_components)
	markAmbiguous(values, parent_components)

	return append(keys, values...)
}

func rootNode(mounts []*hiveMount) *KeyNode {
	root := &KeyNode{}
	for _, mount := range mounts {
		if len(mount.prefix) == 0 {
			root.key = mount.root
			root.modtime = mount.root.LastWriteTime()
			break
		}
	}
	return root
}

func prefixMatches(prefix, components []string) bool {
	for idx, component := range components {
		if !strings.EqualFold(prefix[idx], component) {
			return false
		}
	}
	return true
}

func childPath(parent []string, name string) []string {
	result := make([]string, 0, len(parent)+1)
	result = append(result, parent...)
	return append(result, name)
}

func sortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Name() < nodes[j].Name()
	})
}

// Sibling names that collide after escaping resolve to
// ErrAmbiguousName deterministically. The collision is reported once
// when the listing is built (listings are cached), never silently
// dropped.
func markAmbiguous(nodes []Node, parent_components []string) {
	by_name := make(map[string][]Node)
	for _, node := range nodes {
		name := strings.ToLower(node.Name())
		by_name[name] = append(by_name[name], node)
	}

	for name, group := range by_name {
		if len(group) < 2 {
			continue
		}

		logging.GetLogger(&logging.FSComponent).Warn(
			"Ambiguous name %v below /%v: %v entries collide after escaping",
			name, strings.Join(parent_components, "/"), len(group))

		for _, node := range group {
			switch t := node.(type) {
			case *KeyNode:
				t.ambiguous = true
			case *ValueNode:
				t.ambiguous = true
			}
		}
	}
}

func isAmbiguous(node Node) bool {
	switch t := node.(type) {
	case *KeyNode:
		return t.ambiguous
	case *ValueNode:
		return t.ambiguous
	}
	return false
}
