package term

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fynn9563/bootgif/internal/ansi"
)

// writeTransparentPNG creates a fully transparent w x h image file.
func writeTransparentPNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "avatar.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompositeTransparentYieldsUniformFill(t *testing.T) {
	src := writeTransparentPNG(t, 12, 9)
	bg := ansi.RGB{R: 12, G: 14, B: 15}

	out, err := CompositeOnBackground(src, bg)
	if err != nil {
		t.Fatalf("CompositeOnBackground returned error: %v", err)
	}
	defer os.Remove(out)

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode composited image: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 12 || b.Dy() != 9 {
		t.Errorf("composited size = %dx%d, expected 12x9", b.Dx(), b.Dy())
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if uint8(r>>8) != bg.R || uint8(g>>8) != bg.G || uint8(bl>>8) != bg.B || a != 0xffff {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d,%d), expected opaque background fill",
					x, y, r>>8, g>>8, bl>>8, a>>8)
			}
		}
	}
}

func TestCompositeMissingFile(t *testing.T) {
	if _, err := CompositeOnBackground(filepath.Join(t.TempDir(), "nope.png"), ansi.RGB{}); err == nil {
		t.Error("CompositeOnBackground with missing file succeeded, expected error")
	}
}
