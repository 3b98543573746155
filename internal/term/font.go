// Package term implements the terminal canvas the boot script draws on: a
// cell grid with cursor state, fonts, styled text, image overlays and
// per-frame PNG emission. It is a renderer, not an emulator; escape-code
// handling is limited to the SGR subset in package ansi.
package term

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/font/opentype"
)

// Face is a loaded font with the cell metrics the grid is laid out by.
type Face struct {
	regular font.Face
	bold    font.Face
	cellW   int
	cellH   int
	ascent  int
}

// BuiltinFace returns the built-in bitmap face used when no TTF is
// configured.
func BuiltinFace() *Face {
	f := &Face{
		regular: inconsolata.Regular8x16,
		bold:    inconsolata.Bold8x16,
	}
	f.measure()
	return f
}

// LoadFace parses a TTF file and prepares it at the given point size. An
// empty path selects the built-in face.
func LoadFace(path string, size float64) (*Face, error) {
	if path == "" {
		return BuiltinFace(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("term: read font %s: %w", path, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("term: parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("term: prepare font %s: %w", path, err)
	}
	f := &Face{regular: face, bold: face}
	f.measure()
	return f, nil
}

// measure derives cell geometry from the face metrics. The advance of 'M'
// sets the column width; line height and ascent come from the font.
func (f *Face) measure() {
	m := f.regular.Metrics()
	f.cellH = m.Height.Ceil()
	f.ascent = m.Ascent.Ceil()
	if adv, ok := f.regular.GlyphAdvance('M'); ok {
		f.cellW = adv.Ceil()
	}
	if f.cellW <= 0 {
		f.cellW = f.cellH / 2
	}
	if f.cellH <= 0 {
		f.cellH = 1
	}
}

// CellSize returns the pixel width and height of one character cell.
func (f *Face) CellSize() (w, h int) {
	return f.cellW, f.cellH
}

func (f *Face) pick(bold bool) font.Face {
	if bold {
		return f.bold
	}
	return f.regular
}
