package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fynn9563/bootgif/internal/ansi"
	"github.com/fynn9563/bootgif/internal/term"
)

// statusStyle dims the playback footer below the frame.
var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// PlayerModel is the Bubble Tea model that steps through captured frames
// at the animation rate.
type PlayerModel struct {
	frames   []*term.Snapshot
	renderer *Renderer
	keys     *KeyMapper
	fps      int
	frame    int
	loop     bool
	paused   bool
	quitting bool
}

// NewPlayerModel creates a playback model over the captured frames.
// When loop is set, playback restarts from the first frame after the last;
// otherwise it holds on the final frame.
func NewPlayerModel(frames []*term.Snapshot, scheme *ansi.Scheme, cursor rune, fps int, loop bool) PlayerModel {
	return PlayerModel{
		frames:   frames,
		renderer: NewRenderer(scheme, cursor),
		keys:     NewKeyMapper(),
		fps:      fps,
		loop:     loop,
	}
}

// Init starts the playback tick loop.
func (m PlayerModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the playback state.
func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case ActionTogglePause:
		m.paused = !m.paused
	case ActionRestart:
		m.frame = 0
	case ActionStepForward:
		if m.paused && m.frame < len(m.frames)-1 {
			m.frame++
		}
	case ActionStepBack:
		if m.paused && m.frame > 0 {
			m.frame--
		}
	}

	return m, nil
}

// handleTick advances playback by one frame. The tick loop keeps running
// while paused so resume needs no re-arm.
func (m PlayerModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		if m.frame < len(m.frames)-1 {
			m.frame++
		} else if m.loop {
			m.frame = 0
		}
	}
	return m, tickCmd(m.fps)
}

// Frame returns the index of the frame currently shown.
func (m PlayerModel) Frame() int {
	return m.frame
}

// Paused reports whether playback is paused.
func (m PlayerModel) Paused() bool {
	return m.paused
}

// View renders the current frame with a status footer.
func (m PlayerModel) View() string {
	if m.quitting || len(m.frames) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderer.Frame(m.frames[m.frame]))
	sb.WriteRune('\n')
	sb.WriteString(statusStyle.Render(m.statusLine()))
	return sb.String()
}

// statusLine names the playback position and the active key bindings.
func (m PlayerModel) statusLine() string {
	hints := "space pause • r restart • q quit"
	if m.paused {
		hints = "space resume • left/right step • r restart • q quit"
	}
	return fmt.Sprintf("frame %d/%d  %s", m.frame+1, len(m.frames), hints)
}

// Run plays the captured frames in the terminal until the user quits.
func Run(frames []*term.Snapshot, scheme *ansi.Scheme, cursor rune, fps int, loop bool) error {
	if len(frames) == 0 {
		return errors.New("tui: no frames to play")
	}

	model := NewPlayerModel(frames, scheme, cursor, fps, loop)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
