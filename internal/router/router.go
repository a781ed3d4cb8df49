// Package router keeps the stack of screens for the assessment flow:
// welcome or home at the bottom, then quiz, then report.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindscope/internal/screen"
)

// Navigation messages. Screens return them through the Cmd helpers below
// instead of touching the router.
type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	PopToRootMsg     struct{}
)

// PushCmd opens s above the current screen.
func PushCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// ReplaceCmd swaps the current screen for s, so Esc will not return to it.
func ReplaceCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// PopCmd closes the current screen.
func PopCmd() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// PopToRootCmd closes everything above the root screen.
func PopToRootCmd() tea.Cmd {
	return func() tea.Msg { return PopToRootMsg{} }
}

// Router is a non-empty stack of screens. Only the top one sees input.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with root at the bottom of the stack.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push adds s on top and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. The root is never removed.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) > 1 {
		r.stack[len(r.stack)-1] = nil
		r.stack = r.stack[:len(r.stack)-1]
	}
	return nil
}

// Replace swaps the top screen for s and returns its Init command. Replacing
// the root makes s the new root.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// PopToRoot removes every screen but the root.
func (r *Router) PopToRoot() tea.Cmd {
	clear(r.stack[1:])
	r.stack = r.stack[:1]
	return nil
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
