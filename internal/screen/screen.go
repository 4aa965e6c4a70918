package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/testlab/internal/ui/layout"
)

// Screen is one page of the lab. The router owns the stack of screens and
// forwards messages to the one on top.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only. The app draws header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that are editing text and want
// plain keys such as "q" delivered to them rather than treated as
// shortcuts by the app.
type InputCapturer interface {
	CapturingInput() bool
}
