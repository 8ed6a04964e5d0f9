package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/waddle/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that own a run and
// fill the header's player, score and lives.
type StatusProvider interface {
	Status() layout.Status
}

// StackMsg marks a message that is delivered to every screen on the
// router stack, not just the active one. Timer callbacks use it so they
// still land while another screen is on top.
type StackMsg interface {
	tea.Msg
	StackMsg()
}
