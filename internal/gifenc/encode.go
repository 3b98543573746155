package gifenc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// MinValidSize is the smallest output, in bytes, the primary encoder may
// produce and still be trusted. ffmpeg sometimes exits zero after writing a
// truncated file; anything at or under this is treated as a failed run.
const MinValidSize = 10000

// Encoder turns a directory of numbered frame files into one looping GIF.
type Encoder struct {
	frameDir  string
	frameBase string
	output    string
	fps       int
	logger    *log.Logger
}

// New returns an Encoder reading frameBase-prefixed .png files from
// frameDir and writing the result to output.
func New(frameDir, frameBase, output string, fps int, logger *log.Logger) *Encoder {
	return &Encoder{
		frameDir:  frameDir,
		frameBase: frameBase,
		output:    output,
		fps:       fps,
		logger:    logger,
	}
}

// Encode tries ffmpeg first and falls back to the in-process encoder when
// ffmpeg is missing, exits nonzero, or leaves an undersized file behind.
func (e *Encoder) Encode(ctx context.Context) error {
	if err := e.encodePrimary(ctx); err != nil {
		e.logger.Warn("ffmpeg encode failed, assembling in process", "err", err)
		return e.EncodeFallback()
	}
	e.logger.Info("gif generated with ffmpeg", "path", e.output)
	return nil
}

// encodePrimary runs ffmpeg over the frame sequence with a two-pass
// palette filter, then validates what it wrote.
func (e *Encoder) encodePrimary(ctx context.Context) error {
	pattern := filepath.Join(e.frameDir, e.frameBase+"%d.png")
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-r", strconv.Itoa(e.fps),
		"-i", pattern,
		"-filter_complex", "[0:v] split [a][b];[a] palettegen [p];[b][p] paletteuse",
		e.output,
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("gifenc: ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("gifenc: ffmpeg: %w", err)
	}
	info, err := os.Stat(e.output)
	if err != nil {
		return fmt.Errorf("gifenc: ffmpeg wrote no output: %w", err)
	}
	if info.Size() <= MinValidSize {
		return fmt.Errorf("gifenc: ffmpeg output is %d bytes, under the %d byte floor", info.Size(), MinValidSize)
	}
	return nil
}
