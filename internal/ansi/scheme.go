package ansi

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed schemes.toml
var builtinSchemesTOML []byte

// Scheme is a named terminal palette: default foreground/background plus the
// 16 base colors the SGR codes index into.
type Scheme struct {
	Name      string
	DefaultFg RGB
	DefaultBg RGB
	Normal    [8]RGB
	Bright    [8]RGB
}

// FallbackBg is the background used when no scheme defines one.
const FallbackBg = "#0c0e0f"

// schemeEntry mirrors one scheme table in a colors TOML document.
type schemeEntry struct {
	DefaultColors struct {
		Fg string `toml:"fg"`
		Bg string `toml:"bg"`
	} `toml:"default_colors"`
	Colors struct {
		Normal []string `toml:"normal"`
		Bright []string `toml:"bright"`
	} `toml:"colors"`
}

// ParseSchemes decodes a colors TOML document into schemes. Fields a scheme
// omits inherit from the fallback palette, so a file defining only
// default_colors.bg is valid.
func ParseSchemes(data []byte) (map[string]*Scheme, error) {
	var raw map[string]schemeEntry
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ansi: parse color schemes: %w", err)
	}
	out := make(map[string]*Scheme, len(raw))
	for name, entry := range raw {
		s, err := schemeFromEntry(name, entry)
		if err != nil {
			return nil, err
		}
		out[name] = s
	}
	return out, nil
}

func schemeFromEntry(name string, e schemeEntry) (*Scheme, error) {
	s := fallbackScheme()
	s.Name = name
	if e.DefaultColors.Fg != "" {
		c, err := ParseHex(e.DefaultColors.Fg)
		if err != nil {
			return nil, fmt.Errorf("ansi: scheme %s: %w", name, err)
		}
		s.DefaultFg = c
	}
	if e.DefaultColors.Bg != "" {
		c, err := ParseHex(e.DefaultColors.Bg)
		if err != nil {
			return nil, fmt.Errorf("ansi: scheme %s: %w", name, err)
		}
		s.DefaultBg = c
	}
	if err := fillPalette(&s.Normal, e.Colors.Normal, name); err != nil {
		return nil, err
	}
	if err := fillPalette(&s.Bright, e.Colors.Bright, name); err != nil {
		return nil, err
	}
	return s, nil
}

func fillPalette(dst *[8]RGB, src []string, scheme string) error {
	for i, h := range src {
		if i >= len(dst) {
			break
		}
		c, err := ParseHex(h)
		if err != nil {
			return fmt.Errorf("ansi: scheme %s: %w", scheme, err)
		}
		dst[i] = c
	}
	return nil
}

var (
	builtinOnce sync.Once
	builtin     map[string]*Scheme
)

// Builtin returns the named built-in scheme, or nil if unknown.
func Builtin(name string) *Scheme {
	builtinOnce.Do(func() {
		var err error
		builtin, err = ParseSchemes(builtinSchemesTOML)
		if err != nil {
			// The embedded table ships with the binary.
			panic(err)
		}
	})
	return builtin[name]
}

// fallbackScheme is the palette used when neither a local override nor a
// built-in entry defines a scheme, and the base other entries inherit from.
func fallbackScheme() *Scheme {
	return &Scheme{
		Name:      "fallback",
		DefaultFg: MustHex("#edeff0"),
		DefaultBg: MustHex(FallbackBg),
		Normal: [8]RGB{
			MustHex("#171b20"), MustHex("#df5b61"), MustHex("#78b892"), MustHex("#de8f78"),
			MustHex("#6791c9"), MustHex("#bc83e3"), MustHex("#67afc1"), MustHex("#d9d7d6"),
		},
		Bright: [8]RGB{
			MustHex("#404750"), MustHex("#e8838f"), MustHex("#a0cca5"), MustHex("#e8b48c"),
			MustHex("#8ab6db"), MustHex("#cb9cf2"), MustHex("#7ed6df"), MustHex("#e5e5e5"),
		},
	}
}

// Fallback returns the hard-coded default scheme.
func Fallback() *Scheme {
	return fallbackScheme()
}
