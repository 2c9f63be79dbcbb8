package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the navigator client.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Search    SearchConfig    `mapstructure:"search"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	State     StateConfig     `mapstructure:"state"`
}

// APIConfig points the client at the backend service.
type APIConfig struct {
	// BaseURL is the backend root, including the /api prefix.
	BaseURL string `mapstructure:"base_url"`
}

func (a APIConfig) Validate() error {
	if strings.TrimSpace(a.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	return nil
}

// ChatConfig tunes the chat view.
type ChatConfig struct {
	// HistoryLimit is how many prior exchanges a history fetch asks for.
	HistoryLimit int `mapstructure:"history_limit"`
}

// Normalize applies defaults for unset chat values.
func (c ChatConfig) Normalize() ChatConfig {
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 10
	}
	if c.HistoryLimit > 100 {
		c.HistoryLimit = 100
	}
	return c
}

// SearchConfig tunes proximity search. Latitude/Longitude stand in for
// the browser geolocation capability: when both are set the client can
// answer "search nearby", otherwise the capability is unavailable.
type SearchConfig struct {
	RadiusMiles float64  `mapstructure:"radius_miles"`
	Latitude    *float64 `mapstructure:"latitude"`
	Longitude   *float64 `mapstructure:"longitude"`
}

// Normalize applies defaults for unset search values.
func (s SearchConfig) Normalize() SearchConfig {
	if s.RadiusMiles <= 0 {
		s.RadiusMiles = 5
	}
	return s
}

// DashboardConfig tunes the analytics view.
type DashboardConfig struct {
	// Days is the default lookback window.
	Days int `mapstructure:"days"`
}

// Normalize applies defaults for unset dashboard values.
func (d DashboardConfig) Normalize() DashboardConfig {
	if d.Days <= 0 {
		d.Days = 30
	}
	if d.Days > 365 {
		d.Days = 365
	}
	return d
}

// StateConfig locates the little on-disk state the client keeps (the
// persisted user identifier, nothing else).
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// Normalize resolves the state directory, defaulting to the platform
// config dir.
func (s StateConfig) Normalize() StateConfig {
	if strings.TrimSpace(s.Dir) != "" {
		return s
	}
	if base, err := os.UserConfigDir(); err == nil {
		s.Dir = filepath.Join(base, "navigator")
	} else {
		s.Dir = ".navigator"
	}
	return s
}

// Load reads configuration from an optional YAML file plus NAVIGATOR_*
// environment variables, with defaults for everything so a bare
// invocation talks to a local backend.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("navigator")
	v.SetConfigType("yaml")

	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("chat.history_limit", 10)
	v.SetDefault("search.radius_miles", 5.0)
	v.SetDefault("dashboard.days", 30)

	if path == "" {
		v.AddConfigPath(".")
		if base, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(base, "navigator"))
		}
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("NAVIGATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults need an explicit binding for env overrides.
	for _, key := range []string{"state.dir", "search.latitude", "search.longitude"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless the caller named one explicitly.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Chat = cfg.Chat.Normalize()
	cfg.Search = cfg.Search.Normalize()
	cfg.Dashboard = cfg.Dashboard.Normalize()
	cfg.State = cfg.State.Normalize()

	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
