package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellchecker/pkg/options"
)

var envKeys = []string{
	"HTTP_ADDR", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"SPELL_LANGUAGE", "SPELL_DICT_PATH", "SPELL_MAX_SUGGESTIONS",
	"SPELL_LOG_LEVEL", "SPELL_WATCH",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spell.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "en_US", cfg.Spell.Language)
	assert.Equal(t, "", cfg.Redis.Addr)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
http_addr = ":9090"
log_level = "debug"

[redis]
addr = "redis:6379"
db = 2

[spell]
language = "de_DE"
dict_paths = ["/opt/dicts", "/usr/share/hunspell"]
max_suggestions = 5
capitalization = true
watch = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "custom_dict", cfg.Redis.Prefix, "defaults survive partial sections")
	assert.Equal(t, "de_DE", cfg.Spell.Language)
	assert.Equal(t, []string{"/opt/dicts", "/usr/share/hunspell"}, cfg.Spell.DictPaths)
	assert.Equal(t, 5, cfg.Spell.MaxSuggestions)
	assert.True(t, cfg.Spell.Capitalization)
	assert.True(t, cfg.Spell.Watch)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[spell]\nlanguage = \"de_DE\"\nmax_suggestions = 5\n")
	t.Setenv("SPELL_LANGUAGE", "fr_FR")
	t.Setenv("SPELL_DICT_PATH", "/a"+string(os.PathListSeparator)+"/b")
	t.Setenv("SPELL_MAX_SUGGESTIONS", "not-a-number")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SPELL_WATCH", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fr_FR", cfg.Spell.Language)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Spell.DictPaths)
	assert.Equal(t, 5, cfg.Spell.MaxSuggestions, "bad numbers keep the previous value")
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Spell.Watch)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "http_addr = \n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[spell]\nlangauge = \"en\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "langauge")
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Spell.DictPaths = []string{"/dicts"}
	cfg.Spell.MaxSuggestions = 7
	cfg.Spell.ResetOverrides = true

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	got := options.Resolve(cfg.Options(logger)...)
	assert.Equal(t, 7, got.MaxSuggestions)
	assert.Equal(t, []string{"/dicts"}, got.SearchPaths)
	assert.True(t, got.ResetOverridesOnReplace)
	assert.False(t, got.Capitalization)
	assert.Same(t, logger, got.Logger)
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "WARN"
	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")

	cfg.LogLevel = "loud"
	_, err = cfg.Logger(&buf)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
