// Package config loads ArchLens configuration from TOML files.
//
// Configuration is optional: every field has a working default, and a
// missing config file is not an error. The CLI looks for archlens.toml
// in the working directory unless a path is given explicitly.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/archlens/archlens/pkg/errors"
	"github.com/archlens/archlens/pkg/layout"
)

// DefaultFile is the config file name probed in the working directory.
const DefaultFile = "archlens.toml"

// Duration decodes TOML duration strings ("15s", "5m") via
// time.ParseDuration.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Layout LayoutConfig `toml:"layout"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// CacheConfig selects and tunes the response cache backend.
type CacheConfig struct {
	// Backend is one of "memory", "redis", "file", or "none".
	Backend string `toml:"backend"`

	TTL        Duration `toml:"ttl"`
	MaxEntries int      `toml:"max_entries"`

	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// LayoutConfig overrides layout tuning parameters. Zero values keep the
// engine defaults.
type LayoutConfig struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	NodeSpacingX float64 `toml:"node_spacing_x"`
	RankSpacingY float64 `toml:"rank_spacing_y"`
	Margin       float64 `toml:"margin"`
	Iterations   int     `toml:"iterations"`
	CacheSize    int     `toml:"cache_size"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Cache: CacheConfig{
			Backend:    "memory",
			TTL:        Duration(5 * time.Minute),
			MaxEntries: 256,
			RedisAddr:  "localhost:6379",
		},
	}
}

// Load reads the config at path, layered over defaults. An empty path
// probes DefaultFile; if neither exists the defaults are returned. An
// explicitly named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "reading config file")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parsing config file")
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "memory", "redis", "file", "none":
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"unknown cache backend: %s", c.Cache.Backend)
	}
	return nil
}

// LayoutOptions converts the layout overrides to engine options, with
// zero fields falling through to the engine defaults.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		Width:        c.Layout.Width,
		Height:       c.Layout.Height,
		NodeSpacingX: c.Layout.NodeSpacingX,
		RankSpacingY: c.Layout.RankSpacingY,
		Margin:       c.Layout.Margin,
		Iterations:   c.Layout.Iterations,
	}.WithDefaults()
}
