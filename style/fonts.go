package style

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
)

// familyFiles maps lower-case family names to the TrueType files that
// usually carry them. Collections (.ttc) are not supported by truetype.
var familyFiles = map[string][]string{
	"microsoft yahei": {"msyh.ttf", "msyhl.ttf"},
	"simhei":          {"simhei.ttf"},
	"arial":           {"arial.ttf"},
	"dejavu sans":     {"dejavusans.ttf"},
	"liberation sans": {"liberationsans-regular.ttf"},
	"roboto":          {"roboto-regular.ttf", "roboto-medium.ttf"},
}

// DefaultFontDirs returns the usual system font directories for the platform.
func DefaultFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		return []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	default:
		return []string{"/usr/share/fonts", "/usr/local/share/fonts", filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts")}
	}
}

// candidateFiles returns lower-case file names to look for.
func candidateFiles(family string) []string {
	key := strings.ToLower(strings.TrimSpace(family))
	if files, ok := familyFiles[key]; ok {
		return files
	}
	compact := strings.ReplaceAll(key, " ", "")
	return []string{compact + ".ttf", compact + "-regular.ttf"}
}

// fontIndex maps lower-case file names to paths across font directories.
// The first directory that carries a name wins.
type fontIndex map[string]string

func indexFonts(dirs []string) fontIndex {
	idx := fontIndex{}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped, not fatal.
				return nil
			}
			if d.IsDir() {
				return nil
			}
			name := strings.ToLower(d.Name())
			if !strings.HasSuffix(name, ".ttf") {
				return nil
			}
			if _, seen := idx[name]; !seen {
				idx[name] = path
			}
			return nil
		})
	}
	return idx
}

// load finds and parses the font for a family.
func (idx fontIndex) load(family string) (*truetype.Font, string, error) {
	for _, name := range candidateFiles(family) {
		path, ok := idx[name]
		if !ok {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, errors.Wrapf(err, "reading font %s", path)
		}
		font, err := truetype.Parse(data)
		if err != nil {
			return nil, path, errors.Wrapf(err, "parsing font %s", path)
		}
		return font, path, nil
	}
	return nil, "", errors.Errorf("font family %q not found", family)
}
