// Package config assembles irisviz settings from defaults, an optional YAML
// file, IRISVIZ_* environment variables and command line flags, in that
// order of precedence.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/irisviz/render"
	"github.com/spektr-org/irisviz/style"
)

// Config is the effective configuration of one run.
type Config struct {
	Input         string   `yaml:"input"`
	OutputDir     string   `yaml:"out_dir"`
	DPI           float64  `yaml:"dpi"`
	Fonts         []string `yaml:"fonts"`
	FallbackFonts []string `yaml:"fallback_fonts"`
	Themes        []string `yaml:"themes"`
	FontDirs      []string `yaml:"font_dirs"` // searched before the system directories
	LogLevel      string   `yaml:"log"`
	Verbose       bool     `yaml:"verbose"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	prefs := style.DefaultPreferences()
	return &Config{
		Input:         "Iris.csv",
		OutputDir:     ".",
		DPI:           render.DefaultDPI,
		Fonts:         prefs.Fonts,
		FallbackFonts: prefs.FallbackFonts,
		Themes:        prefs.Themes,
		LogLevel:      "info",
	}
}

// LoadFile overlays the settings present in a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path is empty")
	}
	if c.DPI <= 0 {
		return errors.Errorf("dpi must be positive, got %v", c.DPI)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log level")
	}
	return nil
}

// Level returns the configured log level, or info when it does not parse.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Preferences returns the style preferences. Configured font directories
// are searched before the platform defaults.
func (c *Config) Preferences() style.Preferences {
	dirs := append([]string(nil), c.FontDirs...)
	dirs = append(dirs, style.DefaultFontDirs()...)
	return style.Preferences{
		Fonts:         c.Fonts,
		FallbackFonts: c.FallbackFonts,
		Themes:        c.Themes,
		FontDirs:      dirs,
	}
}

// Dump renders the configuration as YAML.
func (c *Config) Dump() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "encoding config")
	}
	return string(data), nil
}
