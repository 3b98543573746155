package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fynn9563/bootgif/internal/platform/tui"
)

var flagLoop bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the boot sequence in the terminal",
	Long: `Render the boot script in memory and play it back in the terminal,
without writing frames or encoding a GIF.

Controls:
  Space      - Pause/resume
  Left/Right - Step one frame while paused
  R          - Restart
  Q/Ctrl+C   - Quit

Examples:
  bootgif preview
  bootgif preview --loop`,
	Run: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&flagLoop, "loop", false, "Restart playback after the last frame")
	previewCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the stats cache and fetch fresh data")
}

func runPreview(_ *cobra.Command, _ []string) {
	logger := newLogger()

	seq, err := renderSequence(logger, false, true, flagNoCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The frame grid has a fixed cell size; a smaller terminal clips it.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < seq.term.Cols() || h < seq.term.Rows()+1 {
			logger.Warn("terminal is smaller than the frame grid, playback will clip",
				"terminal", fmt.Sprintf("%dx%d", w, h),
				"frames", fmt.Sprintf("%dx%d", seq.term.Cols(), seq.term.Rows()+1),
			)
		}
	}

	cursor := cursorRune(seq.settings.General.Cursor)
	if err := tui.Run(seq.term.Snapshots(), seq.scheme, cursor, seq.settings.General.FPS, flagLoop); err != nil {
		fmt.Fprintf(os.Stderr, "Error running playback: %v\n", err)
		os.Exit(1)
	}
}
