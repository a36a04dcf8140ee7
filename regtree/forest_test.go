package regtree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, name), []byte("regf"), 0600))
}

func TestHiveSourcesSingleFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "NTUSER.DAT")

	sources, err := hiveSources(filepath.Join(dir, "NTUSER.DAT"))
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "", sources[0].prefix)
	assert.True(t, sources[0].required)
}

func TestHiveSourcesConfigDir(t *testing.T) {
	dir := t.TempDir()

	// Hives extracted from an image may arrive in either case.
	touch(t, dir, "SYSTEM")
	touch(t, dir, "software")
	touch(t, dir, "sam")
	touch(t, dir, "unrelated.log")

	sources, err := hiveSources(dir)
	require.NoError(t, err)

	prefixes := make(map[string]string)
	for _, src := range sources {
		prefixes[src.prefix] = filepath.Base(src.path)
	}
	assert.Equal(t, map[string]string{
		"HKLM/SYSTEM":   "SYSTEM",
		"HKLM/SOFTWARE": "software",
		"HKLM/SAM":      "sam",
	}, prefixes)
}

func TestHiveSourcesMissingSystem(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "software")

	_, err := hiveSources(dir)
	assert.Error(t, err)
}

func TestHiveSourcesMissing(t *testing.T) {
	_, err := hiveSources("/nonexistent/path")
	assert.Error(t, err)
}
