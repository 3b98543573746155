package term

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/fynn9563/bootgif/internal/ansi"
)

// Render rasterizes the current canvas state: background fill, pasted
// images, cell backgrounds, glyphs, then the cursor.
func (t *Terminal) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.cfg.Width, t.cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(t.scheme.DefaultBg), image.Point{}, draw.Src)

	cellW, cellH := t.font.CellSize()

	for _, ov := range t.overlays {
		x := t.cfg.XPad + (ov.col-1)*cellW
		y := t.cfg.YPad + (ov.row-1)*cellH
		b := ov.img.Bounds()
		dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
		draw.Draw(img, dst, ov.img, b.Min, draw.Over)
	}

	for r := 1; r <= t.rows; r++ {
		for c := 1; c <= t.cols; c++ {
			cell := t.cellAt(r, c)
			x := t.cfg.XPad + (c-1)*cellW
			y := t.cfg.YPad + (r-1)*cellH
			if cell.Style.Bg.Kind != ansi.ColorDefault {
				bg := cell.Style.Bg.Resolve(t.scheme, false, false)
				draw.Draw(img, image.Rect(x, y, x+cellW, y+cellH), image.NewUniform(bg), image.Point{}, draw.Src)
			}
			if cell.Ch == 0 || cell.Ch == ' ' {
				continue
			}
			fg := cell.Style.Fg.Resolve(t.scheme, true, cell.Style.Bold)
			t.drawGlyph(img, cell.Ch, cell.Style.Bold, fg, x, y)
		}
	}

	if t.cursorVisible() && t.curRow >= 1 && t.curRow <= t.rows && t.curCol >= 1 && t.curCol <= t.cols {
		x := t.cfg.XPad + (t.curCol-1)*cellW
		y := t.cfg.YPad + (t.curRow-1)*cellH
		t.drawGlyph(img, t.cfg.Cursor, false, t.scheme.DefaultFg, x, y)
	}

	return img
}

// drawGlyph paints a single rune with its baseline derived from the cell
// origin and the font ascent.
func (t *Terminal) drawGlyph(dst *image.RGBA, ch rune, bold bool, fg ansi.RGB, x, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: t.font.pick(bold),
		Dot:  fixed.P(x, y+t.font.ascent),
	}
	d.DrawString(string(ch))
}

// writeFrame renders the canvas and writes it as the n-th frame PNG.
func (t *Terminal) writeFrame(n int) (string, error) {
	path := filepath.Join(t.cfg.FrameDir, fmt.Sprintf("%s%d.png", t.cfg.FrameBase, n))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("term: create frame %s: %w", path, err)
	}
	if err := png.Encode(f, t.Render()); err != nil {
		f.Close()
		return "", fmt.Errorf("term: encode frame %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("term: close frame %s: %w", path, err)
	}
	return path, nil
}
