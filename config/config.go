// Package config loads the blockframe command configuration from TOML.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dot5enko/blockframe/compression"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// Compression of codec frames: none, lz4 or zstd.
	Compression string `toml:"compression"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Verify runs the manager invariant check on construction.
	Verify bool `toml:"verify"`

	// Consolidate merges same-dtype blocks before printing or encoding.
	Consolidate bool `toml:"consolidate"`
}

func Default() Config {
	return Config{
		Compression: compression.Lz4.String(),
		LogLevel:    "info",
		Verify:      true,
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config %s: %s", path, err.Error())
	}
	return Parse(raw)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config: %s", err.Error())
	}

	if _, err := cfg.CompressionKind(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) CompressionKind() (compression.Kind, error) {
	return compression.ParseKind(c.Compression)
}

func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
