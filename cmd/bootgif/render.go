package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fynn9563/bootgif/internal/gifenc"
	"github.com/fynn9563/bootgif/internal/readme"
)

var (
	flagNoCache  bool
	flagNoReadme bool
	flagOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the boot sequence GIF",
	Long: `Render every scene of the boot script to PNG frames, encode them into
an animated GIF and rewrite the README fragment that embeds it.

Encoding runs ffmpeg with a two-pass palette when available and falls
back to a pure in-process encoder otherwise.

Stats for the fetch card come from the GitHub GraphQL API. Set
GITHUB_TOKEN in the environment or a .env file. Fetched stats are
cached between runs; --no-cache forces a fresh fetch.

Examples:
  bootgif render
  bootgif render --no-cache
  bootgif render --output demo.gif --no-readme`,
	Run: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the stats cache and fetch fresh data")
	renderCmd.Flags().BoolVar(&flagNoReadme, "no-readme", false, "Do not rewrite the README fragment")
	renderCmd.Flags().StringVar(&flagOutput, "output", "", "Output GIF path (default: from settings)")
}

func runRender(_ *cobra.Command, _ []string) {
	logger := newLogger()

	seq, err := renderSequence(logger, true, false, flagNoCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output := flagOutput
	if output == "" {
		output = seq.settings.Files.OutputGif()
	}

	enc := gifenc.New(
		seq.settings.Files.FrameFolderName,
		seq.settings.Files.FrameBaseName,
		output,
		seq.settings.General.FPS,
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := enc.Encode(ctx); err != nil {
		// A script that paints no frames is not an error; the README
		// fragment is still rewritten so the embed stays valid.
		if !errors.Is(err, gifenc.ErrNoFrames) {
			fmt.Fprintf(os.Stderr, "Error encoding GIF: %v\n", err)
			os.Exit(1)
		}
		logger.Warn("no frames rendered, skipping gif encode")
	}

	if !flagNoReadme {
		if err := readme.Write(seq.settings.Files.ReadmeName, filepath.Base(output), seq.profile.HostName); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing README: %v\n", err)
			os.Exit(1)
		}
		logger.Info("readme fragment written", "path", seq.settings.Files.ReadmeName)
	}
}
