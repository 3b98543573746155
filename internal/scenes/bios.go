package scenes

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fynn9563/bootgif/internal/term"
)

// Memory test sweep. Values below memSlowCapK hold for two frames.
const (
	memTotalK   = 131072
	memStepK    = 14336
	memSlowCapK = 60000
)

func init() { Register(1, "bios", func() Scene { return biosScene{} }) }

type biosScene struct{}

func (biosScene) ID() string    { return "bios" }
func (biosScene) Title() string { return "BIOS power-on self test" }

func (biosScene) Run(ctx *Context) error {
	t := ctx.Term
	if err := t.PrintOpts("", 1, term.PrintOptions{Frames: 20}); err != nil {
		return err
	}
	t.ToggleShowCursor(false)

	osName := osLabel(ctx.Profile.HostName)
	if err := t.Print(fmt.Sprintf("%s Modular BIOS v4.2.0", osName), 1); err != nil {
		return err
	}
	vendor := titleCase(ctx.Profile.DisplayName)
	banner := fmt.Sprintf("Copyright (C) %d, \x1b[31m%s Industries Ltd.\x1b[0m", ctx.now().Year(), vendor)
	if err := t.Print(banner, 2); err != nil {
		return err
	}
	if err := t.Print("\x1b[94mGitHub Profile ReadMe Terminal, Rev 9563\x1b[0m", 4); err != nil {
		return err
	}
	if err := t.Print("Quantum(tm) GIFCPU - 420Hz", 6); err != nil {
		return err
	}
	press := "Press \x1b[94mDEL\x1b[0m to enter SETUP, \x1b[94mESC\x1b[0m to cancel Memory Test"
	if err := t.Print(press, t.Rows()); err != nil {
		return err
	}

	for size := 0; size < memTotalK; size += memStepK {
		t.DeleteRow(7)
		frames := 1
		if size < memSlowCapK {
			frames = 2
		}
		line := fmt.Sprintf("Memory Test: %d", size)
		if err := t.PrintOpts(line, 7, term.PrintOptions{Frames: frames, Keep: true}); err != nil {
			return err
		}
	}
	t.DeleteRow(7)
	ok := fmt.Sprintf("Memory Test: %dK OK", memTotalK)
	if err := t.PrintOpts(ok, 7, term.PrintOptions{Frames: 10, Keep: true}); err != nil {
		return err
	}
	return t.PrintOpts("", 11, term.PrintOptions{Frames: 10, Keep: true})
}

// osLabel turns a host name like "fynn-os" into the banner form "FYNN_OS".
func osLabel(host string) string {
	return strings.ToUpper(strings.ReplaceAll(host, "-", "_"))
}

// titleCase upper-cases the first rune only.
func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
