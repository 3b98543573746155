package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fynn9563/bootgif/internal/ansi"
	"github.com/fynn9563/bootgif/internal/term"
)

// styleKey identifies one resolved cell appearance. An empty bg means the
// terminal default background.
type styleKey struct {
	fg   string
	bg   string
	bold bool
}

// Renderer converts captured frames to styled strings for display. It
// caches lipgloss styles per resolved color, so a Renderer must not be
// shared between sessions. Pasted images do not survive the text
// rendering; playback shows the character grid only.
type Renderer struct {
	scheme *ansi.Scheme
	cursor rune
	styles map[styleKey]lipgloss.Style
}

// NewRenderer creates a renderer for the given color scheme and cursor glyph.
func NewRenderer(scheme *ansi.Scheme, cursor rune) *Renderer {
	if scheme == nil {
		scheme = ansi.Fallback()
	}
	if cursor == 0 {
		cursor = '_'
	}
	return &Renderer{
		scheme: scheme,
		cursor: cursor,
		styles: make(map[styleKey]lipgloss.Style),
	}
}

// Frame converts one captured frame to a styled string.
// Groups adjacent cells with the same resolved style to minimize ANSI
// escape sequences.
func (r *Renderer) Frame(s *term.Snapshot) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Rows*s.Cols*2 + s.Rows)

	for row := 1; row <= s.Rows; row++ {
		if row > 1 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same style for efficiency
		col := 1
		for col <= s.Cols {
			start := r.keyAt(s, row, col)

			var run strings.Builder
			for col <= s.Cols {
				if r.keyAt(s, row, col) != start {
					break
				}
				run.WriteRune(r.runeAt(s, row, col))
				col++
			}

			sb.WriteString(r.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// runeAt returns the visible rune at a cell, with the cursor glyph
// overlaid when the frame recorded it as shown.
func (r *Renderer) runeAt(s *term.Snapshot, row, col int) rune {
	if s.CursorShown && row == s.CurRow && col == s.CurCol {
		return r.cursor
	}
	ch := s.Cells[row-1][col-1].Ch
	if ch == 0 {
		return ' '
	}
	return ch
}

// keyAt resolves the style of a cell. The cursor glyph and blank cells
// take the default foreground so runs span gaps.
func (r *Renderer) keyAt(s *term.Snapshot, row, col int) styleKey {
	cell := s.Cells[row-1][col-1]
	key := styleKey{fg: r.scheme.DefaultFg.Hex()}

	cursorHere := s.CursorShown && row == s.CurRow && col == s.CurCol
	if !cursorHere && cell.Ch != 0 && cell.Ch != ' ' {
		key.fg = cell.Style.Fg.Resolve(r.scheme, true, cell.Style.Bold).Hex()
		key.bold = cell.Style.Bold
	}
	if cell.Style.Bg.Kind != ansi.ColorDefault {
		key.bg = cell.Style.Bg.Resolve(r.scheme, false, false).Hex()
	}
	return key
}

// style returns the cached lipgloss style for a key, building it on first use.
func (r *Renderer) style(key styleKey) lipgloss.Style {
	if st, ok := r.styles[key]; ok {
		return st
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(key.fg))
	if key.bg != "" {
		st = st.Background(lipgloss.Color(key.bg))
	}
	if key.bold {
		st = st.Bold(true)
	}
	r.styles[key] = st
	return st
}
