package scenes

import (
	"strings"

	"github.com/fynn9563/bootgif/internal/term"
)

const logoScrambleFrames = 3

func init() { Register(2, "boot", func() Scene { return bootScene{} }) }

type bootScene struct{}

func (bootScene) ID() string    { return "boot" }
func (bootScene) Title() string { return "Boot sequence and logo reveal" }

func (bootScene) Run(ctx *Context) error {
	t := ctx.Term
	t.ClearFrame()
	if err := t.PrintOpts("Initiating Boot Sequence ", 1, term.PrintOptions{Frames: 1, Keep: true}); err != nil {
		return err
	}
	if err := t.TypeText(".....", 1); err != nil {
		return err
	}
	// Carry the logo color without emitting a frame.
	if err := t.PrintOpts("\x1b[96m", 1, term.PrintOptions{Frames: 0, Keep: true}); err != nil {
		return err
	}

	if ctx.LogoFace != nil {
		t.SetFont(ctx.LogoFace)
	}
	logo := strings.ToUpper(strings.ReplaceAll(ctx.Profile.HostName, "-", " "))
	midRow := (t.Rows() + 1) / 2
	midCol := (t.Cols() - len([]rune(logo)) + 1) / 2
	for _, line := range term.ScrambleLines(logo, logoScrambleFrames, false, nil) {
		t.DeleteRow(midRow + 1)
		opts := term.PrintOptions{Col: midCol + 1, Frames: 1}
		if err := t.PrintOpts(line, midRow+1, opts); err != nil {
			return err
		}
	}
	t.ResetFont()
	return nil
}
