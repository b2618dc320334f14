package tui

import (
	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
)

// Config holds dashboard configuration.
type Config struct {
	Reader      service.ForecastReader
	Importer    service.SalesImporter
	Recorder    service.UploadRecorder
	Theme       themes.Theme
	InitialFile string
	Width       int
	Height      int
}

// Option is a functional option for configuring the dashboard.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithReader sets where the summary and detail panels read forecasts from.
func WithReader(reader service.ForecastReader) Option {
	return func(c *Config) {
		c.Reader = reader
	}
}

// WithImporter sets the service sales CSVs are uploaded to.
func WithImporter(importer service.SalesImporter) Option {
	return func(c *Config) {
		c.Importer = importer
	}
}

// WithRecorder enables the upload journal.
func WithRecorder(recorder service.UploadRecorder) Option {
	return func(c *Config) {
		c.Recorder = recorder
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithInitialFile preselects a CSV in the upload panel.
func WithInitialFile(path string) Option {
	return func(c *Config) {
		c.InitialFile = path
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
