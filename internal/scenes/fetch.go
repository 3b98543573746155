package scenes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fynn9563/bootgif/internal/term"
)

// Avatar placement on the fetch screen.
const (
	avatarRow  = 10
	avatarCol  = 2
	avatarMult = 0.07
)

const (
	cardRow       = 2
	cardCol       = 35
	cardHoldCount = 5
	outroHold     = 120
)

func init() { Register(4, "fetch", func() Scene { return fetchScene{} }) }

type fetchScene struct{}

func (fetchScene) ID() string    { return "fetch" }
func (fetchScene) Title() string { return "Stats fetch and outro" }

func (fetchScene) Run(ctx *Context) error {
	if ctx.Stats == nil {
		return errors.New("scenes: fetch scene needs stats")
	}
	t := ctx.Term
	t.ClearFrame()

	if err := t.Prompt(1); err != nil {
		return err
	}
	promptCol := t.CurCol()
	if err := t.CloneFrame(10); err != nil {
		return err
	}
	t.ToggleShowCursor(true)
	if err := t.TypeText("\x1b[91mfetch.s", 1); err != nil {
		return err
	}
	t.DeleteRowFrom(1, promptCol)
	if err := t.PrintOpts("\x1b[92mfetch.sh\x1b[0m", 1, term.PrintOptions{Frames: 1, Keep: true}); err != nil {
		return err
	}
	if err := t.TypeText(fmt.Sprintf(" -u %s", ctx.UserName), 1); err != nil {
		return err
	}
	t.ToggleShowCursor(false)

	if ctx.Avatar != "" {
		if err := t.PasteImage(ctx.Avatar, avatarRow, avatarCol, avatarMult); err != nil {
			return err
		}
	}
	card := fetchCard(ctx)
	opts := term.PrintOptions{Col: cardCol, Frames: cardHoldCount, Keep: true}
	if err := t.PrintOpts(card, cardRow, opts); err != nil {
		return err
	}

	if err := t.Prompt(t.CurRow()); err != nil {
		return err
	}
	t.ToggleShowCursor(true)
	thanks := "\x1b[92m# Thanks for stopping by! Have a great day :D"
	if err := t.TypeText(thanks, t.CurRow()); err != nil {
		return err
	}
	return t.PrintOpts("", t.CurRow(), term.PrintOptions{Frames: outroHold, Keep: true})
}

// fetchCard renders the profile-and-stats block drawn beside the avatar.
func fetchCard(ctx *Context) string {
	stats := ctx.Stats
	top := stats.TopLanguages(5)
	lang := func(i int) string {
		if i < len(top) {
			return top[i]
		}
		return ""
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		b.WriteString("\n    ")
		fmt.Fprintf(&b, format, args...)
	}
	line("\x1b[30;101m%s@GitHub\x1b[0m", ctx.Profile.DisplayName)
	line("--------------")
	line("\x1b[96mOS:       \x1b[93m%s\x1b[0m", ctx.Profile.OS)
	line("\x1b[96mRole:     \x1b[93m%s\x1b[0m", ctx.Profile.Role)
	line("\x1b[96mLocation: \x1b[93m%s\x1b[0m", ctx.Profile.Location)
	line("\x1b[96mUptime:   \x1b[93m%d years, %d months, %d days\x1b[0m",
		ctx.Age.Years, ctx.Age.Months, ctx.Age.Days)
	line("\x1b[96mIDE:      \x1b[93m%s\x1b[0m", ctx.Profile.IDE)
	b.WriteString("\n")
	line("\x1b[30;101mGitHub Stats:\x1b[0m")
	line("--------------")
	line("\x1b[96mUser Rating:  \x1b[93m%s\x1b[0m", stats.Rank.Level)
	line("\x1b[96mTotal Stars:  \x1b[93m%d\x1b[0m", stats.TotalStars)
	line("\x1b[96mTotal Commits (%d): \x1b[93m%d\x1b[0m", ctx.now().Year()-1, stats.CommitsLastYear)
	line("\x1b[96mTotal PRs:    \x1b[93m%d\x1b[0m", stats.PullRequestsMade)
	line("\x1b[96mMerged PR %%:  \x1b[93m%s\x1b[0m", formatPercent(stats.MergedPercentage))
	line("\x1b[96mContributions:\x1b[93m%d\x1b[0m", stats.RepoContributions)
	line("\x1b[96mTop Languages:\x1b[0m")
	for i := 0; i < 5; i++ {
		line("\x1b[93m  %s\x1b[0m", lang(i))
	}
	b.WriteString("\n    ")
	return b.String()
}

// formatPercent prints a percentage with at least one decimal place.
func formatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
