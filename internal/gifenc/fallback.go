package gifenc

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoFrames reports that the frame directory held nothing to encode. The
// render pipeline treats it as a degraded run, not a failure.
var ErrNoFrames = errors.New("gifenc: no frames to encode")

// maxExactColors is the GIF palette capacity. Frames at or under it keep
// their exact colors; frames over it map onto the Plan9 palette.
const maxExactColors = 256

// FrameDurationMS returns the per-frame display time in milliseconds for
// the given frame rate. 15 fps yields 67 ms.
func FrameDurationMS(fps int) int {
	return int(math.Round(1000 / float64(fps)))
}

// delayCentiseconds converts a millisecond duration to the GIF container
// unit. 67 ms yields 7 cs.
func delayCentiseconds(ms int) int {
	return int(math.Round(float64(ms) / 10))
}

// EncodeFallback assembles the GIF in process. Frames are decoded in
// natural order, quantized per frame, and written through a temp file so a
// failed encode never clobbers an existing artifact.
func (e *Encoder) EncodeFallback() error {
	names, err := frameFiles(e.frameDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		e.logger.Warn("no frames found", "dir", e.frameDir)
		return ErrNoFrames
	}
	e.logger.Info("assembling gif in process", "frames", len(names), "fps", e.fps)

	delay := delayCentiseconds(FrameDurationMS(e.fps))
	anim := &gif.GIF{LoopCount: 0}
	for i, name := range names {
		frame, err := loadPaletted(filepath.Join(e.frameDir, name))
		if err != nil {
			return err
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
		if (i+1)%100 == 0 {
			e.logger.Info("frames loaded", "done", i+1, "total", len(names))
		}
	}
	if err := writeGIF(e.output, anim); err != nil {
		return err
	}
	if info, err := os.Stat(e.output); err == nil {
		e.logger.Info("gif written", "path", e.output,
			"size_mb", fmt.Sprintf("%.2f", float64(info.Size())/(1<<20)))
	}
	return nil
}

// frameFiles lists the .png entries of dir in natural order.
func frameFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("gifenc: read frame dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		names = append(names, entry.Name())
	}
	sortFrames(names)
	return names, nil
}

func loadPaletted(path string) (*image.Paletted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gifenc: open frame: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("gifenc: decode frame %s: %w", filepath.Base(path), err)
	}
	return palettedFrame(img), nil
}

// palettedFrame quantizes img to at most 256 colors. Flat terminal frames
// almost always fit exactly; overlay-heavy frames fall back to Plan9.
func palettedFrame(img image.Image) *image.Paletted {
	p := image.NewPaletted(img.Bounds(), framePalette(img))
	draw.Draw(p, img.Bounds(), img, img.Bounds().Min, draw.Src)
	return p
}

// framePalette collects the distinct colors of img in first-seen order. As
// soon as the count passes the palette capacity it gives up and returns the
// Plan9 palette instead.
func framePalette(img image.Image) color.Palette {
	seen := make(map[color.RGBA]struct{}, 64)
	var pal color.Palette
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == maxExactColors {
				return palette.Plan9
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
		}
	}
	return pal
}

// writeGIF encodes g to path via a sibling temp file and a rename.
func writeGIF(path string, g *gif.GIF) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("gifenc: create %s: %w", tmp, err)
	}
	if err := gif.EncodeAll(f, g); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("gifenc: encode gif: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("gifenc: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("gifenc: rename gif into place: %w", err)
	}
	return nil
}
