package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultDataDir, cfg.Storage.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
addr = ":9090"

[storage]
data_dir = "/var/lib/prompthist"

[pipeline]
output_dir = "/srv/output"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/prompthist", cfg.Storage.DataDir)
	assert.Equal(t, "/srv/output", cfg.Pipeline.OutputDir)
	// untouched sections keep defaults
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestThumbnailDir(t *testing.T) {
	c := StorageConfig{DataDir: "data"}
	assert.Equal(t, filepath.Join("data", "thumbnails"), c.ThumbnailDir())
}
