package tonekey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	var path = filepath.Join(t.TempDir(), "tonekey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	var cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "standard", cfg.Profile)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, 512, cfg.BlockSize)
	assert.Empty(t, cfg.KeyLogDir)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigFile(t *testing.T) {
	var path = writeConfig(t, `
profile: bowie
sample_rate: 8000
block_size: 256
key_log_dir: /var/log/tonekey
debug: true
`)
	var cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bowie", cfg.Profile)
	assert.Equal(t, 8000, cfg.SampleRate)
	assert.Equal(t, 256, cfg.BlockSize)
	assert.Equal(t, "/var/log/tonekey", cfg.KeyLogDir)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigPartialFile(t *testing.T) {
	// Fields not present keep their defaults.
	var cfg, err = LoadConfig(writeConfig(t, "profile: dream\n"))
	require.NoError(t, err)
	assert.Equal(t, "dream", cfg.Profile)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, 512, cfg.BlockSize)
}

func TestLoadConfigErrors(t *testing.T) {
	var cases = []struct {
		name string
		yaml string
	}{
		{"unknown profile", "profile: nokia\n"},
		{"rate too low", "sample_rate: 4000\n"},
		{"block too small", "block_size: 32\n"},
		{"block too large", "block_size: 16384\n"},
		{"not yaml", "{{{\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var _, err = LoadConfig(writeConfig(t, c.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var _, err = LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
