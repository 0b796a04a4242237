package charts

import "github.com/spektr-org/irisviz/render"

// ============================================================================
// CHART OPTIONS: Functional options for the generators and Run()
// ============================================================================

// Option configures chart output via functional options pattern.
type Option func(*config)

type config struct {
	OutputDir string  // directory the PNG files are written to
	DPI       float64 // output resolution in dots per inch
}

// WithOutputDir writes charts into dir instead of the working directory.
func WithOutputDir(dir string) Option {
	return func(c *config) {
		c.OutputDir = dir
	}
}

// WithDPI sets the output resolution. Non-positive values keep the default.
func WithDPI(dpi float64) Option {
	return func(c *config) {
		if dpi > 0 {
			c.DPI = dpi
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		OutputDir: ".",
		DPI:       render.DefaultDPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg
}
