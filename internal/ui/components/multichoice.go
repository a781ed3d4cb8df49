package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/ui/theme"
)

// MultiChoice is a single-answer selector. There is no correct option;
// the caller reads ChosenIndex after Submitted is set.
type MultiChoice struct {
	Question    string
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a new multiple-choice component. previous is the
// index chosen earlier for this question, or -1; the cursor starts there.
func NewMultiChoice(question string, options []string, previous int) MultiChoice {
	selected := 0
	if previous >= 0 && previous < len(options) {
		selected = previous
	}
	return MultiChoice{
		Question:    question,
		Options:     options,
		Selected:    selected,
		ChosenIndex: previous,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Digit keys jump to
// and submit the matching option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.Submitted = true
			m.ChosenIndex = m.Selected
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
			}
		}
	}

	return m, nil
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		marker := " "
		if i == m.ChosenIndex {
			marker = "✓"
		}
		line := fmt.Sprintf("%s%d)  %s %s", prefix, i+1, opt, marker)

		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		case i == m.ChosenIndex:
			b.WriteString(theme.Chosen.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
