package gifenc

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testEncoder(t *testing.T, frameDir string) (*Encoder, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "output.gif")
	return New(frameDir, "frame_", out, 15, log.New(io.Discard)), out
}

func writeTestFrame(t *testing.T, dir, name string, fill color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create frame: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode frame: %v", err)
	}
}

func TestFrameDurationMS(t *testing.T) {
	cases := []struct {
		fps      int
		expected int
	}{
		{15, 67},
		{30, 33},
		{10, 100},
		{50, 20},
	}
	for _, c := range cases {
		if got := FrameDurationMS(c.fps); got != c.expected {
			t.Errorf("FrameDurationMS(%d) = %d, expected %d", c.fps, got, c.expected)
		}
	}
}

func TestDelayCentiseconds(t *testing.T) {
	cases := []struct {
		ms       int
		expected int
	}{
		{67, 7},
		{33, 3},
		{100, 10},
		{20, 2},
	}
	for _, c := range cases {
		if got := delayCentiseconds(c.ms); got != c.expected {
			t.Errorf("delayCentiseconds(%d) = %d, expected %d", c.ms, got, c.expected)
		}
	}
}

func TestEncodeFallbackNoFrames(t *testing.T) {
	enc, _ := testEncoder(t, t.TempDir())
	err := enc.EncodeFallback()
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("EncodeFallback() on empty dir = %v, expected ErrNoFrames", err)
	}
}

func TestEncodeFallbackWritesGIF(t *testing.T) {
	frameDir := t.TempDir()
	writeTestFrame(t, frameDir, "frame_0.png", color.RGBA{10, 20, 30, 255})
	writeTestFrame(t, frameDir, "frame_1.png", color.RGBA{40, 50, 60, 255})
	writeTestFrame(t, frameDir, "frame_2.png", color.RGBA{70, 80, 90, 255})
	os.WriteFile(filepath.Join(frameDir, "notes.txt"), []byte("skip me"), 0o644)

	enc, out := testEncoder(t, frameDir)
	if err := enc.EncodeFallback(); err != nil {
		t.Fatalf("EncodeFallback() error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("frame count = %d, expected 3", len(anim.Image))
	}
	if anim.LoopCount != 0 {
		t.Errorf("loop count = %d, expected 0", anim.LoopCount)
	}
	for i, d := range anim.Delay {
		if d != 7 {
			t.Errorf("delay[%d] = %d, expected 7", i, d)
		}
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind after rename")
	}
}

func TestEncodeFallbackNaturalOrder(t *testing.T) {
	frameDir := t.TempDir()
	first := color.RGBA{200, 0, 0, 255}
	second := color.RGBA{0, 200, 0, 255}
	third := color.RGBA{0, 0, 200, 255}
	writeTestFrame(t, frameDir, "frame_10.png", third)
	writeTestFrame(t, frameDir, "frame_1.png", first)
	writeTestFrame(t, frameDir, "frame_2.png", second)

	enc, out := testEncoder(t, frameDir)
	if err := enc.EncodeFallback(); err != nil {
		t.Fatalf("EncodeFallback() error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	expected := []color.RGBA{first, second, third}
	for i, frame := range anim.Image {
		got := color.RGBAModel.Convert(frame.At(0, 0)).(color.RGBA)
		if got != expected[i] {
			t.Errorf("frame %d pixel = %v, expected %v", i, got, expected[i])
		}
	}
}

func TestFramePaletteExact(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	colors := []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{12, 14, 15, 255},
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, colors[(y*4+x)%3])
		}
	}
	pal := framePalette(img)
	if len(pal) != 3 {
		t.Errorf("framePalette() size = %d, expected 3", len(pal))
	}
}

func TestFramePaletteOverflow(t *testing.T) {
	// 20x20 distinct colors, well past the 256 slot capacity.
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 12), uint8(y * 12), uint8(x + y), 255})
		}
	}
	pal := framePalette(img)
	if len(pal) != 256 {
		t.Errorf("framePalette() overflow size = %d, expected 256", len(pal))
	}
}
