package app

import (
	"path/filepath"
	"testing"

	"github.com/matheus3301/outreach/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func testParams(t *testing.T) Params {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return Params{Binary: "outreach", ConfigPath: filepath.Join(dir, "config.toml")}
}

func TestTerminalGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Core(testParams(t)), TUI()))
}

func TestCoreGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Core(testParams(t)), fx.Invoke(func(*Settings) {})))
}

func TestResolveSettings(t *testing.T) {
	cfg := &config.Config{
		DefaultProfile: "work",
		BaseURL:        "http://config:8000",
		Locale:         "en",
		LogLevel:       "warn",
	}

	s, err := ResolveSettings(Params{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, &Settings{Profile: "work", BaseURL: "http://config:8000", Locale: "en", LogLevel: "warn"}, s)

	s, err = ResolveSettings(Params{ProfileFlag: "demo", BaseURLFlag: "http://flag:9000", Debug: true}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Profile)
	assert.Equal(t, "http://flag:9000", s.BaseURL)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "en", s.Locale)
}

func TestResolveSettingsDefaultProfile(t *testing.T) {
	s, err := ResolveSettings(Params{}, &config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "main", s.Profile)
}

func TestResolveSettingsRejectsBadProfile(t *testing.T) {
	_, err := ResolveSettings(Params{ProfileFlag: "Bad Name"}, &config.Config{})
	assert.Error(t, err)
}
