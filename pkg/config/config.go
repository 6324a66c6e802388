// Package config loads Arbor's TOML configuration.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]. Unknown keys are rejected so typos surface at startup.
//
//	[server]
//	addr = ":8080"
//	allowed_origins = ["http://localhost:3000"]
//
//	[layout]
//	column_spacing = 180
//	row_spacing = 56
//	box_width = 150
//	box_height = 40
//	margin = 20
//
//	[document]
//	root_label = "Root"
//	seed = ""
//
//	[cache]
//	backend = "memory"   # none | memory | file | redis
//	redis_addr = "localhost:6379"
//	ttl = "10m"
package config

import (
	stderrors "errors"
	"io/fs"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/layout"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// Config is the complete configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Layout   LayoutConfig   `toml:"layout"`
	Document DocumentConfig `toml:"document"`
	Cache    CacheConfig    `toml:"cache"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `toml:"addr" validate:"required"`
	AllowedOrigins []string `toml:"allowed_origins" validate:"dive,required"`
}

// LayoutConfig sets the pixel geometry of the grid.
type LayoutConfig struct {
	ColumnSpacing float64 `toml:"column_spacing" validate:"gt=0"`
	RowSpacing    float64 `toml:"row_spacing" validate:"gt=0"`
	BoxWidth      float64 `toml:"box_width" validate:"gt=0,ltefield=ColumnSpacing"`
	BoxHeight     float64 `toml:"box_height" validate:"gt=0,ltefield=RowSpacing"`
	Margin        float64 `toml:"margin" validate:"gte=0"`
}

// DocumentConfig describes the starting document.
type DocumentConfig struct {
	RootLabel string `toml:"root_label" validate:"required,max=200"`
	Seed      string `toml:"seed"`
}

// CacheConfig selects the render cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend" validate:"oneof=none memory file redis"`
	RedisAddr     string        `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db" validate:"gte=0"`
	Dir           string        `toml:"dir" validate:"required_if=Backend file"`
	TTL           time.Duration `toml:"ttl" validate:"gte=0"`
	MaxEntries    int           `toml:"max_entries" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	g := layout.DefaultGeometry()
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Layout: LayoutConfig{
			ColumnSpacing: g.ColumnSpacing,
			RowSpacing:    g.RowSpacing,
			BoxWidth:      g.BoxWidth,
			BoxHeight:     g.BoxHeight,
			Margin:        g.Margin,
		},
		Document: DocumentConfig{RootLabel: "Root"},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			RedisAddr:  "localhost:6379",
			TTL:        10 * time.Minute,
			MaxEntries: 256,
		},
	}
}

// Load reads path over the defaults and validates the result. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the listen address.
func (c Config) Validate() error {
	if err := errors.ValidateStruct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "server.addr %q", c.Server.Addr)
	}
	return nil
}

// Geometry returns the layout geometry.
func (c Config) Geometry() layout.Geometry {
	return layout.Geometry{
		ColumnSpacing: c.Layout.ColumnSpacing,
		RowSpacing:    c.Layout.RowSpacing,
		BoxWidth:      c.Layout.BoxWidth,
		BoxHeight:     c.Layout.BoxHeight,
		Margin:        c.Layout.Margin,
	}
}
