package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/spektr-org/irisviz/style"
)

// AppName is the command name used in usage output.
const AppName = "irisviz"

const (
	envPrefix         = "IRISVIZ"
	stringListDivider = ","
)

const help = `Render the Iris dataset as four PNG charts:
species_count.png, petal_scatter.png, sepal_boxplot.png and
correlation_heatmap.png.

Every flag can also be set through an IRISVIZ_<FLAG> environment variable,
e.g. IRISVIZ_OUT_DIR=charts.`

// envName converts a flag name to its environment variable: out_dir is IRISVIZ_OUT_DIR.
func envName(flag string) string {
	return fmt.Sprintf("%s_%s", envPrefix, strings.ToUpper(flag))
}

// stringList is a repeatable flag value. Each occurrence may hold several
// comma separated items: --font=A,B --font=C gives [A B C].
type stringList []string

// Set implements kingpin.Value.
func (s *stringList) Set(value string) error {
	for _, item := range strings.Split(value, stringListDivider) {
		if item = strings.TrimSpace(item); item != "" {
			*s = append(*s, item)
		}
	}
	return nil
}

func (s *stringList) String() string { return strings.Join(*s, stringListDivider) }

// IsCumulative marks the flag as repeatable for kingpin.
func (s *stringList) IsCumulative() bool { return true }

// flagValues holds what was given on the command line or in the environment.
// Zero values mean "not given".
type flagValues struct {
	config        string
	input         string
	outputDir     string
	dpi           float64
	fonts         stringList
	fallbackFonts stringList
	themes        stringList
	fontDirs      stringList
	logLevel      string
	verbose       bool
	dump          bool
}

func flag(app *kingpin.Application, name, description string) *kingpin.FlagClause {
	return app.Flag(name, description).Envar(envName(name))
}

// newApp registers every flag on a fresh kingpin application.
func newApp(f *flagValues) *kingpin.Application {
	app := kingpin.New(AppName, help)
	app.HelpFlag.Short('h')

	flag(app, "config", "YAML file with default settings").StringVar(&f.config)
	flag(app, "input", "Path to the Iris CSV file (default Iris.csv)").Short('i').StringVar(&f.input)
	flag(app, "out_dir", "Directory the charts are written to (default .)").Short('o').StringVar(&f.outputDir)
	flag(app, "dpi", "Output resolution in dots per inch (default 300)").Float64Var(&f.dpi)
	flag(app, "font", "Preferred font family, repeatable or comma separated").SetValue(&f.fonts)
	flag(app, "fallback_font", "ASCII-safe font family tried after --font").SetValue(&f.fallbackFonts)
	flag(app, "theme", "Preferred theme, repeatable: "+strings.Join(style.ThemeNames(), ", ")).SetValue(&f.themes)
	flag(app, "font_dir", "Extra directory to search for TrueType fonts").SetValue(&f.fontDirs)
	flag(app, "log", "Log level: debug, info, warn, error, fatal, panic (default info)").StringVar(&f.logLevel)
	flag(app, "verbose", "Print a summary of the dataset before charting").Short('v').BoolVar(&f.verbose)
	flag(app, "dump_config", "Print the effective configuration as YAML and exit").BoolVar(&f.dump)
	return app
}

// apply overlays given values onto c.
func (f *flagValues) apply(c *Config) {
	if f.input != "" {
		c.Input = f.input
	}
	if f.outputDir != "" {
		c.OutputDir = f.outputDir
	}
	if f.dpi != 0 {
		c.DPI = f.dpi
	}
	if len(f.fonts) > 0 {
		c.Fonts = f.fonts
	}
	if len(f.fallbackFonts) > 0 {
		c.FallbackFonts = f.fallbackFonts
	}
	if len(f.themes) > 0 {
		c.Themes = f.themes
	}
	if len(f.fontDirs) > 0 {
		c.FontDirs = f.fontDirs
	}
	if f.logLevel != "" {
		c.LogLevel = f.logLevel
	}
	if f.verbose {
		c.Verbose = true
	}
}

// Options is the outcome of parsing: the configuration and whether it
// should only be printed.
type Options struct {
	*Config
	DumpOnly bool
}

// Parse builds the configuration from args (without the program name),
// the environment and the YAML file named by --config.
func Parse(args []string) (*Options, error) {
	var f flagValues
	app := newApp(&f)
	if _, err := app.Parse(args); err != nil {
		return nil, errors.Wrap(err, "could not parse command line flags")
	}

	cfg := Default()
	if f.config != "" {
		if err := cfg.LoadFile(f.config); err != nil {
			return nil, err
		}
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &Options{Config: cfg, DumpOnly: f.dump}, nil
}
