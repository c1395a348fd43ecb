// Package config loads settings for the spellcheck binaries from an
// optional TOML file and the environment. Environment variables win over
// the file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"spellchecker/pkg/options"
)

type Config struct {
	HTTPAddr string      `toml:"http_addr"`
	LogLevel string      `toml:"log_level"`
	Redis    RedisConfig `toml:"redis"`
	Spell    SpellConfig `toml:"spell"`
}

// RedisConfig locates the custom word store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type SpellConfig struct {
	Language       string   `toml:"language"`
	DictPaths      []string `toml:"dict_paths"`
	MaxSuggestions int      `toml:"max_suggestions"`
	Capitalization bool     `toml:"capitalization"`
	ResetOverrides bool     `toml:"reset_overrides"`
	Watch          bool     `toml:"watch"`
}

// Default returns the settings used when neither file nor environment
// say otherwise.
func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		LogLevel: "info",
		Redis:    RedisConfig{Prefix: "custom_dict"},
		Spell: SpellConfig{
			Language:       "en_US",
			MaxSuggestions: options.DefaultOptions.MaxSuggestions,
		},
	}
}

// Load reads path (skipped when empty) over Default and then applies the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getenv("HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = getenv("SPELL_LOG_LEVEL", c.LogLevel)
	c.Redis.Addr = getenv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getenv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Spell.Language = getenv("SPELL_LANGUAGE", c.Spell.Language)
	if v := os.Getenv("SPELL_DICT_PATH"); v != "" {
		c.Spell.DictPaths = filepath.SplitList(v)
	}
	c.Spell.MaxSuggestions = getEnvInt("SPELL_MAX_SUGGESTIONS", c.Spell.MaxSuggestions)
	c.Spell.Watch = getEnvBool("SPELL_WATCH", c.Spell.Watch)
}

// Options converts the spell settings into engine options.
func (c Config) Options(logger *slog.Logger) []options.Options {
	opts := []options.Options{
		options.WithMaxSuggestions(c.Spell.MaxSuggestions),
		options.WithLogger(logger),
	}
	if len(c.Spell.DictPaths) > 0 {
		opts = append(opts, options.WithSearchPaths(c.Spell.DictPaths...))
	}
	if c.Spell.Capitalization {
		opts = append(opts, options.WithCapitalization())
	}
	if c.Spell.ResetOverrides {
		opts = append(opts, options.WithResetOverridesOnReplace())
	}
	return opts
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// ParseLevel accepts debug, info, warn or error in any case. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}
