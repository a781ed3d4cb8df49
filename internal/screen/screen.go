// Package screen defines the contract between the router and the views
// of the assessment flow.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindscope/internal/ui/layout"
)

// Screen is one page of the flow: welcome, topic menu, quiz or report.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body only; the app frame draws header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider supplies footer hints in place of the app defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that consume Esc while it reports
// true, e.g. to leave an edit field before the screen is popped.
type BackHandler interface {
	HandlesBack() bool
}
