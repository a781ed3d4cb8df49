package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled entries are drawn dimmed and
// skipped by the cursor.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor that wraps at both ends. The first
// nine entries can also be chosen with the digit keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

// move steps the cursor by delta (±1) to the next enabled item, wrapping
// around. The cursor stays put when nothing else is enabled.
func (m *Menu) move(delta int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+delta*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Current returns the item under the cursor.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) activate() tea.Cmd {
	item, ok := m.Current()
	if !ok || item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// Update moves the cursor on ↑/↓ (or k/j), jumps on Home/End and runs the
// selected action on Enter or a digit shortcut.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "home", "g":
		m.Selected = -1
		m.move(1)
	case "end", "G":
		m.Selected = len(m.Items)
		m.move(-1)
	case "enter":
		return m, m.activate()
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			i := int(k[0] - '1')
			if i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate()
			}
		}
	}
	return m, nil
}

// View renders one line per item, numbering the first nine.
func (m Menu) View() string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		num := "  "
		if i < 9 {
			num = fmt.Sprintf("%d.", i+1)
		}

		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + num + " " + item.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + num + " " + item.Label)
			if item.Hint != "" {
				line += "  " + theme.Hint.Render(item.Hint)
			}
		default:
			line = theme.Unselected.Render("    " + num + " " + item.Label)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
