// Package config loads lexorder settings from a TOML file.
//
// The file is looked up in order: an explicit path, $LEXORDER_CONFIG, then
// $XDG_CONFIG_HOME/lexorder/config.toml (or ~/.config/lexorder/config.toml).
// The first two must exist when set. A missing default file yields
// [Default] unchanged.
//
// Example file:
//
//	workers = 4
//	format = "text"
//
//	[cache]
//	backend = "redis"
//	ttl = "168h"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lexorder/pkg/cache"
	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/io"
)

// EnvPath names the environment variable holding a config file path.
const EnvPath = "LEXORDER_CONFIG"

// Config is the top-level configuration.
type Config struct {
	// Workers is the closure parallelism. Zero means one per CPU.
	Workers int `toml:"workers"`

	// Format is the default output format of "lexorder order".
	Format string `toml:"format"`

	Limits LimitsConfig `toml:"limits"`
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
}

// LimitsConfig bounds accepted input. Zero disables a limit.
type LimitsConfig struct {
	MaxWords   int `toml:"max_words"`
	MaxWordLen int `toml:"max_word_len"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend string   `toml:"backend"`
	TTL     Duration `toml:"ttl"`    // "0s" keeps entries until cleared
	Dir     string   `toml:"dir"`    // file backend; empty means the XDG cache dir
	Prefix  string   `toml:"prefix"` // prepended to every key
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures "lexorder serve".
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a wrapper for time.Duration that supports TOML marshaling.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for Duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format: io.FormatText,
		Limits: LimitsConfig{
			MaxWords:   100_000,
			MaxWordLen: 4096,
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration{cache.DefaultTTL},
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "lexorder",
			Collection: "orders",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
	}
}

// Load reads the configuration. An empty path falls back to
// $LEXORDER_CONFIG and then the default location.
func Load(path string) (*Config, error) {
	required := true
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path, required = DefaultPath(), false
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the XDG config file location, or "" when no home
// directory can be determined.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lexorder", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lexorder", "config.toml")
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be >= 0, got %d", c.Workers)
	}
	if c.Limits.MaxWords < 0 || c.Limits.MaxWordLen < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "limits must be >= 0")
	}
	if err := errors.ValidateFormat(c.Format, io.Formats...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "format")
	}
	if !slices.Contains(cache.Backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: %q (must be one of: %s)",
			c.Cache.Backend, strings.Join(cache.Backends, ", "))
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// CacheOptions converts the cache sections for [cache.Open]. dir is used
// when the file backend has no explicit directory.
func (c *Config) CacheOptions(dir string) cache.Config {
	if c.Cache.Dir != "" {
		dir = c.Cache.Dir
	}
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis: cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		},
		Mongo: cache.MongoConfig{
			URI:        c.Mongo.URI,
			Database:   c.Mongo.Database,
			Collection: c.Mongo.Collection,
		},
	}
}

// WordLimits returns the input limits for validation.
func (c *Config) WordLimits() errors.Limits {
	return errors.Limits{MaxWords: c.Limits.MaxWords, MaxWordLen: c.Limits.MaxWordLen}
}
