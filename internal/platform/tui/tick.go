// Package tui provides the Bubble Tea integration for the boot sequence.
// It handles the terminal playback loop, input mapping, and the SSH
// replay server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance playback by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// animation frame rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 15
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
