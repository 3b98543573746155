package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PlayerAction represents a playback control derived from input.
type PlayerAction int

const (
	ActionNone PlayerAction = iota
	ActionQuit
	ActionTogglePause
	ActionRestart
	ActionStepForward
	ActionStepBack
)

// KeyMapper translates Bubble Tea key messages to playback actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a playback action.
// Unbound keys map to ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) PlayerAction {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q", "esc":
		return ActionQuit
	}

	switch key {
	case " ", "p":
		return ActionTogglePause
	case "r":
		return ActionRestart
	case "right", "l": // vim-style l for forward
		return ActionStepForward
	case "left", "h": // vim-style h for back
		return ActionStepBack
	}

	return ActionNone
}
