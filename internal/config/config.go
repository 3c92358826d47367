// Package config loads netfog settings.
//
// Settings are resolved in order, later sources winning: built-in
// defaults, a TOML or YAML config file, NETFOG_* environment variables
// (including those set by a .env file in the working directory), and
// finally command-line flags, which the cli package applies on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/netfog/pkg/layout"
	"github.com/matzehuels/netfog/pkg/pipeline"
	"github.com/matzehuels/netfog/pkg/render/static"
	"github.com/matzehuels/netfog/pkg/svgdoc"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// ErrInvalid is returned by [Config.Validate].
var ErrInvalid = errors.New("invalid configuration")

// Config holds netfog configuration.
type Config struct {
	Style  StyleConfig  `toml:"style" yaml:"style"`
	Canvas CanvasConfig `toml:"canvas" yaml:"canvas"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Static StaticConfig `toml:"static" yaml:"static"`
}

// StyleConfig controls editor document rendering.
type StyleConfig struct {
	NodeColor        string  `toml:"node_color" yaml:"node_color"`
	NodeBorder       string  `toml:"node_border" yaml:"node_border"`
	NodeRadius       float64 `toml:"node_radius" yaml:"node_radius"`
	MarkerPath       string  `toml:"marker_path" yaml:"marker_path"`
	MarkerFill       string  `toml:"marker_fill" yaml:"marker_fill"`
	MarkerWidth      float64 `toml:"marker_width" yaml:"marker_width"`
	MarkerHeight     float64 `toml:"marker_height" yaml:"marker_height"`
	LineColor        string  `toml:"line_color" yaml:"line_color"`
	LineMinWidth     float64 `toml:"line_min_width" yaml:"line_min_width"`
	LineMaxWidth     float64 `toml:"line_max_width" yaml:"line_max_width"`
	DynamicLineWidth bool    `toml:"dynamic_line_width" yaml:"dynamic_line_width"`
}

// CanvasConfig controls random placement of unpositioned nodes.
type CanvasConfig struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	Seed   uint64  `toml:"seed" yaml:"seed"`
}

// ServerConfig controls "netfog serve".
type ServerConfig struct {
	Addr        string        `toml:"addr" yaml:"addr"`
	Cache       string        `toml:"cache" yaml:"cache"` // "file", "redis", "none"
	CacheDir    string        `toml:"cache_dir" yaml:"cache_dir"`
	CacheTTL    time.Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	CachePrefix string        `toml:"cache_prefix" yaml:"cache_prefix"`
	RedisURL    string        `toml:"redis_url" yaml:"redis_url"`
}

// StaticConfig controls the static renderer.
type StaticConfig struct {
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Margin    int    `toml:"margin" yaml:"margin"`
	NodeColor string `toml:"node_color" yaml:"node_color"`
	LineColor string `toml:"line_color" yaml:"line_color"`
}

// Default returns the default configuration.
func Default() *Config {
	s := svgdoc.DefaultStyle()
	return &Config{
		Style: StyleConfig{
			NodeColor:        s.NodeColor,
			NodeBorder:       s.NodeBorder,
			NodeRadius:       s.NodeRadius,
			MarkerPath:       s.MarkerPath,
			MarkerFill:       s.MarkerFill,
			MarkerWidth:      s.MarkerWidth,
			MarkerHeight:     s.MarkerHeight,
			LineColor:        s.LineColor,
			LineMinWidth:     s.LineMinWidth,
			LineMaxWidth:     s.LineMaxWidth,
			DynamicLineWidth: s.DynamicLineWidth,
		},
		Canvas: CanvasConfig{Width: layout.ReferenceWidth, Height: layout.ReferenceHeight, Seed: 42},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8080",
			Cache:       CacheFile,
			CacheDir:    filepath.Join(CacheDir(), "documents"),
			CacheTTL:    time.Hour,
			CachePrefix: "netfog:",
			RedisURL:    "redis://localhost:6379/0",
		},
		Static: StaticConfig{
			Width:     static.DefaultWindow.Width,
			Height:    static.DefaultWindow.Height,
			Margin:    static.DefaultWindow.Margin,
			NodeColor: "#3b82f6",
			LineColor: "#000000",
		},
	}
}

// ConfigDir returns the netfog config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "netfog")
}

// CacheDir returns the netfog cache directory path.
func CacheDir() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "netfog")
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load resolves the configuration. An empty path reads [DefaultPath] if it
// exists; an explicit path must exist. Files ending in .yaml or .yml are
// read as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return nil
}

// applyEnv overrides settings from NETFOG_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("NETFOG_ADDR", &c.Server.Addr)
	str("NETFOG_CACHE", &c.Server.Cache)
	str("NETFOG_CACHE_DIR", &c.Server.CacheDir)
	str("NETFOG_CACHE_PREFIX", &c.Server.CachePrefix)
	str("NETFOG_REDIS_URL", &c.Server.RedisURL)

	if v, ok := lookup("NETFOG_CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: NETFOG_CACHE_TTL: %v", ErrInvalid, err)
		}
		c.Server.CacheTTL = d
	}
	if v, ok := lookup("NETFOG_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: NETFOG_SEED: %v", ErrInvalid, err)
		}
		c.Canvas.Seed = seed
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Server.Cache {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("%w: cache backend %q (want file, redis or none)", ErrInvalid, c.Server.Cache)
	}
	if c.Canvas.Width <= layout.DefaultCanvas.MinX || c.Canvas.Height <= layout.DefaultCanvas.MinY {
		return fmt.Errorf("%w: canvas %vx%v is too small", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Style.LineMinWidth > c.Style.LineMaxWidth {
		return fmt.Errorf("%w: line_min_width %v exceeds line_max_width %v", ErrInvalid, c.Style.LineMinWidth, c.Style.LineMaxWidth)
	}
	if c.Style.NodeRadius <= 0 {
		return fmt.Errorf("%w: node_radius must be positive", ErrInvalid)
	}
	if c.Static.Width <= 0 || c.Static.Height <= 0 || c.Static.Margin < 0 {
		return fmt.Errorf("%w: static window %dx%d margin %d", ErrInvalid, c.Static.Width, c.Static.Height, c.Static.Margin)
	}
	return nil
}

// SVGStyle converts the style section for the editor renderer.
func (c *Config) SVGStyle() svgdoc.Style {
	s := c.Style
	return svgdoc.Style{
		NodeColor:        s.NodeColor,
		NodeBorder:       s.NodeBorder,
		NodeRadius:       s.NodeRadius,
		MarkerPath:       s.MarkerPath,
		MarkerFill:       s.MarkerFill,
		MarkerWidth:      s.MarkerWidth,
		MarkerHeight:     s.MarkerHeight,
		LineColor:        s.LineColor,
		LineMinWidth:     s.LineMinWidth,
		LineMaxWidth:     s.LineMaxWidth,
		DynamicLineWidth: s.DynamicLineWidth,
	}
}

// LayoutCanvas returns the region random placement draws from.
func (c *Config) LayoutCanvas() layout.Canvas {
	return layout.Canvas{
		MinX: layout.DefaultCanvas.MinX,
		MinY: layout.DefaultCanvas.MinY,
		MaxX: c.Canvas.Width,
		MaxY: c.Canvas.Height,
	}
}

// StaticWindow returns the static renderer surface.
func (c *Config) StaticWindow() static.Window {
	return static.Window{Width: c.Static.Width, Height: c.Static.Height, Margin: c.Static.Margin}
}

// RenderOptions returns pipeline options carrying every configured style,
// canvas and window setting. Callers fill in the viz type and format.
func (c *Config) RenderOptions() pipeline.Options {
	return pipeline.Options{
		Seed:      c.Canvas.Seed,
		Style:     c.SVGStyle(),
		Canvas:    c.LayoutCanvas(),
		Window:    c.StaticWindow(),
		NodeColor: c.Static.NodeColor,
		LineColor: c.Static.LineColor,
	}
}

// WriteTOML encodes c as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
