package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const appName = "household-planner"

// Settings holds application preferences. Environment variables override the file.
type Settings struct {
	General    GeneralSettings    `toml:"general" envPrefix:"PLANNER_"`
	MonteCarlo MonteCarloSettings `toml:"monte_carlo" envPrefix:"PLANNER_MC_"`
	Store      StoreSettings      `toml:"store" envPrefix:"PLANNER_"`
	Server     ServerSettings     `toml:"server" envPrefix:"PLANNER_"`
}

// GeneralSettings holds defaults for projection commands.
type GeneralSettings struct {
	DefaultScenario string `toml:"default_scenario" env:"SCENARIO"`
	OutputFormat    string `toml:"output_format" env:"FORMAT"`
	Verbose         bool   `toml:"verbose" env:"VERBOSE"`
}

// MonteCarloSettings holds simulation defaults.
type MonteCarloSettings struct {
	Simulations int   `toml:"simulations" env:"SIMULATIONS"`
	Seed        int64 `toml:"seed,omitempty" env:"SEED"`
	Workers     int   `toml:"workers,omitempty" env:"WORKERS"`
}

// StoreSettings locates the scenario library.
type StoreSettings struct {
	DBPath string `toml:"db_path,omitempty" env:"DB_PATH"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `toml:"addr" env:"ADDR"`
}

// DefaultSettings returns the default configuration.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			DefaultScenario: "Moderate",
			OutputFormat:    "console",
		},
		MonteCarlo: MonteCarloSettings{
			Simulations: 100,
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// SettingsPath returns the full path to the settings file.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// LibraryPath returns the scenario library database path, honoring the settings override.
func (s Settings) LibraryPath() string {
	if s.Store.DBPath != "" {
		return s.Store.DBPath
	}
	return filepath.Join(DataDir(), "scenarios.db")
}

// LoadSettings reads the settings file at path (SettingsPath when empty), returning
// defaults if it doesn't exist, then applies PLANNER_* environment overrides.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		path = SettingsPath()
	}
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing settings: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading settings: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SaveSettings writes the settings to path (SettingsPath when empty).
func SaveSettings(path string, cfg Settings) error {
	if path == "" {
		path = SettingsPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
