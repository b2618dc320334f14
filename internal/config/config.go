// Package config loads client settings from viper, the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/shawarma-forecast/internal/common"
	"github.com/Veraticus/shawarma-forecast/internal/forecastapi"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. FORECAST_API_BASE_URL.
const EnvPrefix = "FORECAST"

// Config holds every setting the client reads.
type Config struct {
	BaseURL     string
	JournalPath string
	LogLevel    string
	LogFormat   string
	LogFile     string
	Theme       string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		BaseURL:   forecastapi.DefaultBaseURL,
		LogLevel:  "info",
		LogFormat: "console",
		LogFile:   "~/.config/forecast/forecast.log",
		Theme:     "default",
	}
}

// SetDefaults registers the defaults with v so that config files and
// environment variables only need to name what they change.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api.base_url", d.BaseURL)
	v.SetDefault("journal.path", d.JournalPath)
	v.SetDefault("logging.level", d.LogLevel)
	v.SetDefault("logging.format", d.LogFormat)
	v.SetDefault("logging.file", d.LogFile)
	v.SetDefault("ui.theme", d.Theme)
}

// BindEnv makes FORECAST_API_BASE_URL style variables override nested keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads settings out of v and validates them.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:     strings.TrimSpace(v.GetString("api.base_url")),
		JournalPath: ExpandPath(v.GetString("journal.path")),
		LogLevel:    v.GetString("logging.level"),
		LogFormat:   v.GetString("logging.format"),
		LogFile:     ExpandPath(v.GetString("logging.file")),
		Theme:       v.GetString("ui.theme"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an http(s) URL", common.ErrInvalidConfig, c.BaseURL)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// JournalEnabled reports whether uploads should be recorded locally.
func (c Config) JournalEnabled() bool {
	return c.JournalPath != ""
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
