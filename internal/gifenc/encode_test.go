package gifenc

import (
	"context"
	"image/color"
	"os"
	"testing"
)

func TestEncodeFallsBackWithoutFFmpeg(t *testing.T) {
	// An empty PATH makes the primary encoder unavailable, so Encode must
	// come back with the in-process result.
	t.Setenv("PATH", t.TempDir())

	frameDir := t.TempDir()
	writeTestFrame(t, frameDir, "frame_0.png", color.RGBA{10, 10, 10, 255})
	writeTestFrame(t, frameDir, "frame_1.png", color.RGBA{20, 20, 20, 255})

	enc, out := testEncoder(t, frameDir)
	if err := enc.Encode(context.Background()); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("output size = 0, expected a non-empty gif")
	}
}
