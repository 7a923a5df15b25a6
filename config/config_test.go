package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dot5enko/blockframe/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	kind, err := cfg.CompressionKind()
	require.NoError(t, err)
	assert.Equal(t, compression.Lz4, kind)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockframe.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
compression = "zstd"
log_level = "debug"
consolidate = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "zstd", cfg.Compression)
	assert.True(t, cfg.Consolidate)
	assert.True(t, cfg.Verify)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]byte(`compression = "snappy"`))
	assert.ErrorIs(t, err, compression.ErrUnknownKind)

	_, err = Parse([]byte(`log_level = "loud"`))
	assert.Error(t, err)

	_, err = Parse([]byte(`colour = "red"`))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEncodeParses(t *testing.T) {
	cfg := Default()
	cfg.Consolidate = true

	raw, err := cfg.Encode()
	require.NoError(t, err)

	back, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
