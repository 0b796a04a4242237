package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

var envFlags = []string{"config", "input", "out_dir", "dpi", "font", "fallback_font", "theme", "font_dir", "log", "verbose", "dump_config"}

func clearEnv() {
	for _, name := range envFlags {
		os.Unsetenv(envName(name))
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "irisviz.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnvName(t *testing.T) {
	Convey("Flag names map to IRISVIZ_ environment variables", t, func() {
		So(envName("out_dir"), ShouldEqual, "IRISVIZ_OUT_DIR")
		So(envName("dpi"), ShouldEqual, "IRISVIZ_DPI")
	})
}

func TestParse(t *testing.T) {
	yamlPath := writeYAML(t, `
input: data/iris.csv
dpi: 150
themes: [pastel-classic]
verbose: true
`)

	Convey("While parsing the configuration", t, func() {
		clearEnv()
		defer clearEnv()

		Convey("No arguments give the defaults", func() {
			opts, err := Parse(nil)
			So(err, ShouldBeNil)
			So(opts.Input, ShouldEqual, "Iris.csv")
			So(opts.OutputDir, ShouldEqual, ".")
			So(opts.DPI, ShouldEqual, 300)
			So(opts.Fonts, ShouldResemble, []string{"Microsoft YaHei", "SimHei", "Arial"})
			So(opts.FallbackFonts, ShouldResemble, []string{"Arial"})
			So(opts.Themes, ShouldResemble, []string{"pastel", "pastel-classic"})
			So(opts.Level(), ShouldEqual, logrus.InfoLevel)
			So(opts.Verbose, ShouldBeFalse)
			So(opts.DumpOnly, ShouldBeFalse)
		})

		Convey("Flags override the defaults", func() {
			opts, err := Parse([]string{"--input=x.csv", "--out_dir=charts", "--dpi=72", "--log=debug", "-v"})
			So(err, ShouldBeNil)
			So(opts.Input, ShouldEqual, "x.csv")
			So(opts.OutputDir, ShouldEqual, "charts")
			So(opts.DPI, ShouldEqual, 72)
			So(opts.Level(), ShouldEqual, logrus.DebugLevel)
			So(opts.Verbose, ShouldBeTrue)
		})

		Convey("Repeatable flags accept repeats and comma lists", func() {
			opts, err := Parse([]string{"--font=SimHei,Arial", "--font=DejaVu Sans", "--theme=default"})
			So(err, ShouldBeNil)
			So(opts.Fonts, ShouldResemble, []string{"SimHei", "Arial", "DejaVu Sans"})
			So(opts.Themes, ShouldResemble, []string{"default"})
		})

		Convey("The environment overrides the defaults", func() {
			os.Setenv(envName("out_dir"), "from-env")
			os.Setenv(envName("theme"), "pastel-classic,default")

			opts, err := Parse(nil)
			So(err, ShouldBeNil)
			So(opts.OutputDir, ShouldEqual, "from-env")
			So(opts.Themes, ShouldResemble, []string{"pastel-classic", "default"})

			Convey("And flags override the environment", func() {
				opts, err := Parse([]string{"--out_dir=from-flag"})
				So(err, ShouldBeNil)
				So(opts.OutputDir, ShouldEqual, "from-flag")
			})
		})

		Convey("A YAML file overrides the defaults", func() {
			opts, err := Parse([]string{"--config=" + yamlPath})
			So(err, ShouldBeNil)
			So(opts.Input, ShouldEqual, "data/iris.csv")
			So(opts.DPI, ShouldEqual, 150)
			So(opts.Themes, ShouldResemble, []string{"pastel-classic"})
			So(opts.Verbose, ShouldBeTrue)
			// Keys absent from the file keep their defaults.
			So(opts.OutputDir, ShouldEqual, ".")
			So(opts.Fonts, ShouldResemble, []string{"Microsoft YaHei", "SimHei", "Arial"})

			Convey("And flags override the file", func() {
				opts, err := Parse([]string{"--config=" + yamlPath, "--dpi=96"})
				So(err, ShouldBeNil)
				So(opts.DPI, ShouldEqual, 96)
				So(opts.Input, ShouldEqual, "data/iris.csv")
			})
		})

		Convey("Invalid settings are rejected", func() {
			_, err := Parse([]string{"--dpi=-5"})
			So(err, ShouldNotBeNil)

			_, err = Parse([]string{"--log=loud"})
			So(err, ShouldNotBeNil)

			_, err = Parse([]string{"--unknown"})
			So(err, ShouldNotBeNil)

			_, err = Parse([]string{"--config=" + filepath.Join(t.TempDir(), "missing.yaml")})
			So(err, ShouldNotBeNil)
		})

		Convey("Dump only is reported", func() {
			opts, err := Parse([]string{"--dump_config"})
			So(err, ShouldBeNil)
			So(opts.DumpOnly, ShouldBeTrue)
		})
	})
}

func TestConfigHelpers(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := Default()

		Convey("It validates", func() {
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("An empty input is rejected", func() {
			cfg.Input = ""
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("Configured font directories come first", func() {
			cfg.FontDirs = []string{"/opt/fonts"}
			prefs := cfg.Preferences()
			So(prefs.FontDirs[0], ShouldEqual, "/opt/fonts")
			So(len(prefs.FontDirs), ShouldBeGreaterThan, 1)
			So(prefs.Themes, ShouldResemble, cfg.Themes)
		})

		Convey("An unparsable level falls back to info", func() {
			cfg.LogLevel = "loud"
			So(cfg.Level(), ShouldEqual, logrus.InfoLevel)
		})

		Convey("Dump round-trips through LoadFile", func() {
			cfg.OutputDir = "charts"
			cfg.DPI = 120
			out, err := cfg.Dump()
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "out_dir: charts")

			path := writeYAML(t, out)
			loaded := &Config{}
			So(loaded.LoadFile(path), ShouldBeNil)
			So(loaded.OutputDir, ShouldEqual, "charts")
			So(loaded.DPI, ShouldEqual, 120)
			So(loaded.Fonts, ShouldResemble, cfg.Fonts)
		})
	})
}
