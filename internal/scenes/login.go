package scenes

import (
	"fmt"

	"github.com/fynn9563/bootgif/internal/term"
)

func init() { Register(3, "login", func() Scene { return loginScene{} }) }

type loginScene struct{}

func (loginScene) ID() string    { return "login" }
func (loginScene) Title() string { return "Login and first prompt" }

func (loginScene) Run(ctx *Context) error {
	t := ctx.Term
	t.ClearFrame()
	if err := t.CloneFrame(5); err != nil {
		return err
	}
	t.ToggleShowCursor(false)

	banner := fmt.Sprintf("\x1b[93m%s v4.2.0 (tty1)\x1b[0m", osLabel(ctx.Profile.HostName))
	if err := t.PrintOpts(banner, 1, term.PrintOptions{Frames: 5}); err != nil {
		return err
	}
	if err := t.PrintOpts("login: ", 3, term.PrintOptions{Frames: 5}); err != nil {
		return err
	}
	t.ToggleShowCursor(true)
	if err := t.TypeText(ctx.UserName, 3); err != nil {
		return err
	}
	if err := t.PrintOpts("", 4, term.PrintOptions{Frames: 5}); err != nil {
		return err
	}
	t.ToggleShowCursor(false)
	if err := t.PrintOpts("password: ", 4, term.PrintOptions{Frames: 5}); err != nil {
		return err
	}
	t.ToggleShowCursor(true)
	if err := t.TypeText("*********", 4); err != nil {
		return err
	}
	t.ToggleShowCursor(false)

	stamp := ctx.now().Format("Mon Jan 02 03:04:05 PM MST 2006")
	if err := t.Print(fmt.Sprintf("Last login: %s on tty1", stamp), 6); err != nil {
		return err
	}

	// Typo first, then the corrected command cut back to the prompt.
	if err := t.PromptN(7, 5); err != nil {
		return err
	}
	promptCol := t.CurCol()
	t.ToggleShowCursor(true)
	if err := t.TypeText("\x1b[91mclea", 7); err != nil {
		return err
	}
	t.DeleteRowFrom(7, promptCol)
	return t.PrintOpts("\x1b[92mclear\x1b[0m", 7, term.PrintOptions{Frames: 3, Keep: true})
}
