// Package config loads glyphmatch service configuration from YAML files
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glyphsearch/glyphmatch/pkg/variant"
)

// Config is the full service configuration. Zero values are filled in with
// defaults by Load and NewDefaultConfig.
type Config struct {
	// Ranges are inclusive [lo, hi] code-point intervals scanned for
	// foldable variants. Empty means the engine's default ranges.
	Ranges [][2]uint32 `yaml:"ranges,omitempty"`

	// MinReplaced is how many runes of an input must gain a variant
	// fragment before a pattern is emitted.
	MinReplaced int `yaml:"min_replaced"`

	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RedisConfig configures the optional pattern cache.
type RedisConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Addr       string `yaml:"addr"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	return &Config{
		MinReplaced: 1,
		Server: ServerConfig{
			Addr:           ":8264",
			TimeoutSeconds: 10,
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			TTLSeconds: 3600,
		},
	}
}

// Load reads path as YAML over the defaults, then applies environment
// overrides and validation. An empty path yields the defaults plus
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	cfg.validate()
	return cfg, nil
}

// Environment overrides, all optional:
//
//	GLYPHMATCH_ADDR          server listen address
//	GLYPHMATCH_REDIS_ADDR    redis address (implies enabled)
//	GLYPHMATCH_REDIS_ENABLED "true"/"false"
func (c *Config) applyEnv() {
	if v := os.Getenv("GLYPHMATCH_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GLYPHMATCH_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("GLYPHMATCH_REDIS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Redis.Enabled = enabled
		}
	}
}

// validate clamps nonsense values back to defaults rather than failing: a
// bad threshold should not take the service down.
func (c *Config) validate() {
	if c.MinReplaced < 1 {
		c.MinReplaced = 1
	}
	if c.Server.TimeoutSeconds <= 0 {
		c.Server.TimeoutSeconds = 10
	}
	if c.Redis.TTLSeconds <= 0 {
		c.Redis.TTLSeconds = 3600
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8264"
	}
}

// CodePointRanges converts the configured intervals for the engine. Ranges
// with lo > hi are passed through; the engine treats them as empty.
func (c *Config) CodePointRanges() []variant.CodePointRange {
	if len(c.Ranges) == 0 {
		return nil
	}
	out := make([]variant.CodePointRange, len(c.Ranges))
	for i, r := range c.Ranges {
		out[i] = variant.CodePointRange{Lo: rune(r[0]), Hi: rune(r[1])}
	}
	return out
}

// RequestTimeout is the server timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// CacheTTL is the redis entry lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}
