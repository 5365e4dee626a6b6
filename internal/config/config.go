// Package config loads the optional TOML file controlling presentation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	appName            = "pomolog"
	defaultChartHeight = 12
	minChartHeight     = 6
)

// Config holds presentation settings. Interval lengths are fixed and are
// deliberately absent.
type Config struct {
	UI UIConfig `toml:"ui"`
}

// UIConfig maps the [ui] table.
type UIConfig struct {
	Bell        bool   `toml:"bell"`
	AltScreen   bool   `toml:"alt_screen"`
	ChartHeight int    `toml:"chart_height"`
	DebugLog    string `toml:"debug_log"`
}

// fileConfig uses pointers so an absent key keeps its default.
type fileConfig struct {
	UI struct {
		Bell        *bool   `toml:"bell"`
		AltScreen   *bool   `toml:"alt_screen"`
		ChartHeight *int    `toml:"chart_height"`
		DebugLog    *string `toml:"debug_log"`
	} `toml:"ui"`
}

func Default() Config {
	return Config{
		UI: UIConfig{
			Bell:        true,
			AltScreen:   true,
			ChartHeight: defaultChartHeight,
		},
	}
}

// Load reads the TOML config at path. Missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config: %w", err)
	}

	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("decode config: unknown key %q", undecoded[0].String())
	}

	if fc.UI.Bell != nil {
		cfg.UI.Bell = *fc.UI.Bell
	}
	if fc.UI.AltScreen != nil {
		cfg.UI.AltScreen = *fc.UI.AltScreen
	}
	if fc.UI.ChartHeight != nil {
		cfg.UI.ChartHeight = max(*fc.UI.ChartHeight, minChartHeight)
	}
	if fc.UI.DebugLog != nil {
		cfg.UI.DebugLog = *fc.UI.DebugLog
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultPath returns $XDG_CONFIG_HOME/pomolog/config.toml.
func DefaultPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
