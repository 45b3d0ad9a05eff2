package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	cfg, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), cfg)
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[general]\ndefault_scenario = \"Conservative\"\n\n[monte_carlo]\nsimulations = 250\nseed = 42\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "Conservative", cfg.General.DefaultScenario)
	assert.Equal(t, "console", cfg.General.OutputFormat, "unset keys keep defaults")
	assert.Equal(t, 250, cfg.MonteCarlo.Simulations)
	assert.Equal(t, int64(42), cfg.MonteCarlo.Seed)

	t.Setenv("PLANNER_SCENARIO", "Aggressive")
	t.Setenv("PLANNER_MC_SIMULATIONS", "400")
	t.Setenv("PLANNER_DB_PATH", "/tmp/lib.db")
	t.Setenv("PLANNER_ADDR", "127.0.0.1:9090")

	cfg, err = LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "Aggressive", cfg.General.DefaultScenario)
	assert.Equal(t, 400, cfg.MonteCarlo.Simulations)
	assert.Equal(t, int64(42), cfg.MonteCarlo.Seed)
	assert.Equal(t, "/tmp/lib.db", cfg.LibraryPath())
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
}

func TestLoadSettingsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\n"), 0o600))
	_, err := LoadSettings(path)
	assert.ErrorContains(t, err, "parsing settings")

	good := filepath.Join(t.TempDir(), "ok.toml")
	require.NoError(t, os.WriteFile(good, []byte(""), 0o600))
	t.Setenv("PLANNER_MC_WORKERS", "many")
	_, err = LoadSettings(good)
	assert.ErrorContains(t, err, "parse env")
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultSettings()
	cfg.MonteCarlo.Workers = 3
	cfg.Store.DBPath = "/data/planner.db"
	require.NoError(t, SaveSettings(path, cfg))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSettingsPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	assert.Equal(t, "/xdg/config/household-planner/config.toml", SettingsPath())
	assert.Equal(t, "/xdg/data/household-planner/scenarios.db", DefaultSettings().LibraryPath())
}
