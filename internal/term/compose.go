package term

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"

	"github.com/fynn9563/bootgif/internal/ansi"
)

// CompositeOnBackground flattens an image with transparency onto an opaque
// canvas of the given color and writes the result to a fresh temp PNG,
// returning its path. Transparent regions pin to the given color instead of
// blending with whatever sits under the paste rectangle. The caller owns
// the returned file and removes it when done, on every path.
func CompositeOnBackground(path string, bg ansi.RGB) (string, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("term: open image %s: %w", path, err)
	}
	b := src.Bounds()
	base := imaging.New(b.Dx(), b.Dy(), color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
	flat := imaging.Overlay(base, src, image.Point{}, 1.0)

	tmp, err := os.CreateTemp("", "bootgif-avatar-*.png")
	if err != nil {
		return "", fmt.Errorf("term: create temp image: %w", err)
	}
	if err := imaging.Encode(tmp, flat, imaging.PNG); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("term: write composited image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("term: close composited image: %w", err)
	}
	return tmp.Name(), nil
}
