package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config_obj := GetDefaultConfig()
	assert.True(t, config_obj.AppendExtensions)
	assert.False(t, config_obj.AppendNewline)
	assert.Equal(t, 0, config_obj.CacheSize)
}

func TestLoadConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "winregfs.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(`
append_extensions: false
append_newline: true
cache_size: 500
allow_other: true
fsname: evidence
`), 0600))

	config_obj, err := LoadConfig(filename)
	require.NoError(t, err)

	assert.False(t, config_obj.AppendExtensions)
	assert.True(t, config_obj.AppendNewline)
	assert.Equal(t, 500, config_obj.CacheSize)
	assert.True(t, config_obj.AllowOther)
	assert.Equal(t, "evidence", config_obj.FSName)
}

func TestLoadConfigStrict(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "winregfs.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(`
append_newline: true
no_such_option: 1
`), 0600))

	_, err := LoadConfig(filename)
	assert.Error(t, err)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig("/nonexistent/winregfs.yaml")
	assert.Error(t, err)
}
