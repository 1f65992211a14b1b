// Package config loads tool configuration from TOML files.
//
// Configuration is resolved in order: an explicit path, the KINCHART_CONFIG
// environment variable, then ~/.config/kinchart/config.toml. A missing file
// is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk tool configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// LayoutConfig holds default layout options. Zero values mean
// "use the strategy's own default".
type LayoutConfig struct {
	Strategy             string  `toml:"strategy"`
	HorizontalSpacing    float64 `toml:"horizontal_spacing"`
	VerticalSpacing      float64 `toml:"vertical_spacing"`
	NodeWidth            float64 `toml:"node_width"`
	NodeHeight           float64 `toml:"node_height"`
	MaxGenerations       int     `toml:"max_generations"`
	Direction            string  `toml:"direction"`
	ShowGenerationLabels bool    `toml:"show_generation_labels"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means
	// ~/.cache/kinchart.
	Dir string `toml:"dir"`

	// TTLHours is the cache entry lifetime. Zero means no expiry.
	TTLHours int `toml:"ttl_hours"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	// Formats lists output formats rendered by default ("svg", "pdf", "png").
	Formats []string `toml:"formats"`

	// PNGScale is the raster scale factor for PNG export.
	PNGScale float64 `toml:"png_scale"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: LayoutConfig{Strategy: "vertical", Direction: "down"},
		Cache:  CacheConfig{Backend: "file"},
		Render: RenderConfig{Formats: []string{"svg"}, PNGScale: 2.0},
	}
}

// Load reads configuration from the given path. If path is empty the
// KINCHART_CONFIG environment variable and then the default location are
// tried. A missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("KINCHART_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns ~/.config/kinchart/config.toml, or a relative
// fallback when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kinchart", "config.toml")
	}
	return filepath.Join(home, ".config", "kinchart", "config.toml")
}

// Validate checks enum-valued fields. Strategy names are validated later
// against the layout registry, since plugins may register more.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return fmt.Errorf("unknown cache backend %q (want file, redis, or none)", c.Cache.Backend)
	}
	switch c.Layout.Direction {
	case "", "up", "down", "left", "right":
	default:
		return fmt.Errorf("unknown layout direction %q", c.Layout.Direction)
	}
	for _, f := range c.Render.Formats {
		switch f {
		case "svg", "pdf", "png", "dot":
		default:
			return fmt.Errorf("unknown render format %q", f)
		}
	}
	return nil
}
