package style

import (
	"github.com/golang/freetype/truetype"
	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
)

// ============================================================================
// STYLE: One-time resolution of rendering preferences
// ============================================================================
// Preferences are ordered lists. Resolve walks them once at startup and
// returns an explicit Style that every chart call receives. Nothing here
// fails: unavailable fonts fall back silently, an unavailable theme falls
// back to the default theme with a notice.
// ============================================================================

// BuiltinFontName names go-chart's embedded font.
const BuiltinFontName = "builtin"

// Preferences lists the desired fonts and themes, most preferred first.
type Preferences struct {
	Fonts         []string `yaml:"fonts"`
	FallbackFonts []string `yaml:"fallback_fonts"` // ASCII-safe families tried after Fonts
	Themes        []string `yaml:"themes"`
	FontDirs      []string `yaml:"font_dirs"`
}

// DefaultPreferences returns the stock preference lists.
func DefaultPreferences() Preferences {
	return Preferences{
		Fonts:         []string{"Microsoft YaHei", "SimHei", "Arial"},
		FallbackFonts: []string{"Arial"},
		Themes:        []string{"pastel", "pastel-classic"},
		FontDirs:      DefaultFontDirs(),
	}
}

// Style is the resolved, read-only rendering configuration.
type Style struct {
	FontName string
	FontPath string
	Font     *truetype.Font
	Theme    Theme
}

// Resolve turns preferences into a Style.
func Resolve(p Preferences) *Style {
	st := &Style{}
	st.resolveFont(p)
	st.resolveTheme(p.Themes)

	logrus.WithFields(logrus.Fields{
		"font":  st.FontName,
		"theme": st.Theme.Name,
	}).Debug("Rendering style resolved")
	return st
}

// Default returns the builtin font with the default theme.
func Default() *Style {
	st := &Style{}
	st.useBuiltinFont()
	st.Theme, _ = LookupTheme(DefaultThemeName)
	return st
}

func (st *Style) resolveFont(p Preferences) {
	idx := indexFonts(p.FontDirs)
	for _, list := range [][]string{p.Fonts, p.FallbackFonts} {
		for _, family := range list {
			font, path, err := idx.load(family)
			if err != nil {
				logrus.WithError(err).WithField("family", family).Debug("Font unavailable")
				continue
			}
			st.Font, st.FontName, st.FontPath = font, family, path
			return
		}
	}
	st.useBuiltinFont()
}

func (st *Style) useBuiltinFont() {
	st.FontName = BuiltinFontName
	font, err := chart.GetDefaultFont()
	if err != nil {
		// go-chart loads its own default lazily when Font is nil.
		logrus.WithError(err).Debug("Builtin font unavailable")
		return
	}
	st.Font = font
}

func (st *Style) resolveTheme(names []string) {
	for _, name := range names {
		if t, ok := LookupTheme(name); ok {
			st.Theme = t
			return
		}
		logrus.WithField("theme", name).Debug("Theme unavailable")
	}
	if len(names) > 0 {
		logrus.Warnf("Unable to apply any of the preferred themes %v, using the default theme", names)
	}
	st.Theme, _ = LookupTheme(DefaultThemeName)
}
