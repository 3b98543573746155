package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fynn9563/bootgif/internal/ansi"
	"github.com/fynn9563/bootgif/internal/config"
	"github.com/fynn9563/bootgif/internal/github"
	"github.com/fynn9563/bootgif/internal/scenes"
	"github.com/fynn9563/bootgif/internal/term"
)

// sequence is one fully rendered run of the boot script.
type sequence struct {
	settings config.Settings
	profile  config.Profile
	scheme   *ansi.Scheme
	term     *term.Terminal
}

// renderSequence loads configuration, fetches stats and drives every scene
// over a fresh canvas. writeFrames emits one PNG per frame for the GIF
// encoder; keepSnapshots retains in-memory frames for replay surfaces.
func renderSequence(logger *log.Logger, writeFrames, keepSnapshots, skipCache bool) (*sequence, error) {
	settings, profile, schemes := loadSetup(logger)
	scheme := schemes.Resolve(settings.General.ColorScheme)

	baseFace, err := term.LoadFace(settings.Fonts.TerminalFile, settings.Fonts.TerminalSize)
	if err != nil {
		return nil, err
	}
	var logoFace *term.Face
	if settings.Fonts.LogoFile != "" {
		logoFace, err = term.LoadFace(settings.Fonts.LogoFile, settings.Fonts.LogoSize)
		if err != nil {
			return nil, err
		}
	}

	stats, err := fetchStats(logger, settings, profile, skipCache)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}

	frameDir := ""
	if writeFrames {
		frameDir = settings.Files.FrameFolderName
	}

	t, err := term.New(term.Config{
		Width:         settings.Canvas.Width,
		Height:        settings.Canvas.Height,
		XPad:          settings.Canvas.XPad,
		YPad:          settings.Canvas.YPad,
		FPS:           settings.General.FPS,
		Cursor:        cursorRune(settings.General.Cursor),
		ShowCursor:    settings.General.ShowCursor,
		BlinkCursor:   settings.General.BlinkCursor,
		Scheme:        scheme,
		Font:          baseFace,
		FrameDir:      frameDir,
		FrameBase:     settings.Files.FrameBaseName,
		KeepSnapshots: keepSnapshots,
		Debug:         settings.General.Debug,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	t.SetPrompt(scenes.PromptFor(&profile))

	// The avatar pastes over the scheme background, so transparency has to
	// be flattened against it first.
	avatar := ""
	if settings.Files.AvatarFile != "" {
		if _, statErr := os.Stat(settings.Files.AvatarFile); statErr == nil {
			flat, avErr := term.CompositeOnBackground(settings.Files.AvatarFile, scheme.DefaultBg)
			if avErr != nil {
				logger.Warn("could not composite avatar", "error", avErr)
			} else {
				avatar = flat
			}
		} else {
			logger.Debug("avatar file missing, skipping paste", "path", settings.Files.AvatarFile)
		}
	}

	ctx := &scenes.Context{
		Term:     t,
		Profile:  &profile,
		UserName: settings.General.UserName,
		Stats:    stats,
		Age:      github.CalcAge(profile.Birthday.Day, profile.Birthday.Month, profile.Birthday.Year),
		Avatar:   avatar,
		LogoFace: logoFace,
		Logger:   logger,
	}

	logger.Info("rendering boot sequence", "scenes", len(scenes.List()), "fps", settings.General.FPS)
	start := time.Now()
	runErr := scenes.RunAll(ctx)

	// The overlay is decoded during the paste; the flattened temp file is
	// not needed once the scenes have run.
	if avatar != "" {
		if rmErr := os.Remove(avatar); rmErr != nil {
			logger.Debug("could not remove avatar temp file", "error", rmErr)
		}
	}
	if runErr != nil {
		return nil, runErr
	}
	logger.Info("scenes rendered", "frames", t.FrameCount(), "elapsed", time.Since(start).Round(time.Millisecond))

	return &sequence{
		settings: settings,
		profile:  profile,
		scheme:   scheme,
		term:     t,
	}, nil
}
