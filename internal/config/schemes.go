package config

import (
	"fmt"
	"os"

	"github.com/fynn9563/bootgif/internal/ansi"
)

// Schemes resolves color scheme names against the local override table
// first, then the built-in table, then the hard-coded fallback. Resolution
// is total: every name maps to a usable scheme.
type Schemes struct {
	local map[string]*ansi.Scheme
}

// LoadSchemes reads local scheme overrides from a TOML file. A missing file
// is not an error; it just leaves the override table empty.
func LoadSchemes(path string) (*Schemes, error) {
	s := &Schemes{local: map[string]*ansi.Scheme{}}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("config: read colors file %s: %w", path, err)
	}
	local, err := ansi.ParseSchemes(data)
	if err != nil {
		return nil, fmt.Errorf("config: colors file %s: %w", path, err)
	}
	s.local = local
	return s, nil
}

// Resolve returns the scheme for name. Local overrides win over built-ins;
// unknown names get the fallback scheme.
func (s *Schemes) Resolve(name string) *ansi.Scheme {
	if sch, ok := s.local[name]; ok {
		return sch
	}
	if sch := ansi.Builtin(name); sch != nil {
		return sch
	}
	return ansi.Fallback()
}

// Background returns the background color for name. Never fails.
func (s *Schemes) Background(name string) ansi.RGB {
	return s.Resolve(name).DefaultBg
}
