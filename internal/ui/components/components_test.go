package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func TestMultiChoice_EnterSubmitsCursor(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b", "c"}, -1)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown}) // clamped at last
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !m.Submitted || m.ChosenIndex != 2 {
		t.Errorf("Submitted=%v ChosenIndex=%d, want true 2", m.Submitted, m.ChosenIndex)
	}

	// Submitted components ignore further input.
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("Selected moved after submit: %d", m.Selected)
	}
}

func TestMultiChoice_DigitKeys(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b"}, -1)

	m, _ = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if m.Submitted {
		t.Fatal("out-of-range digit should be ignored")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if !m.Submitted || m.ChosenIndex != 1 {
		t.Errorf("Submitted=%v ChosenIndex=%d, want true 1", m.Submitted, m.ChosenIndex)
	}
}

func TestMultiChoice_PreviousAnswer(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b", "c"}, 1)
	if m.Selected != 1 || m.ChosenIndex != 1 || m.Submitted {
		t.Errorf("unexpected state %+v", m)
	}
	if !strings.Contains(m.View(), "✓") {
		t.Error("expected earlier answer to be marked")
	}
}

func TestMultiChoice_NoOptions(t *testing.T) {
	m := NewMultiChoice("q", nil, -1)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Submitted {
		t.Error("empty choice should not submit")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var fired string
	items := []MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { fired = "one"; return nil }},
		{Label: "off2", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { fired = "two"; return nil }},
	}
	m := NewMenu(items)
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if fired != "two" {
		t.Errorf("fired = %q, want two", fired)
	}
}

func TestMenu_Wraps(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c", Disabled: true}})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up from first: Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("down from last enabled: Selected = %d, want 0", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	if m.Selected != 1 {
		t.Errorf("end: Selected = %d, want 1", m.Selected)
	}
}

func TestMenu_DigitShortcut(t *testing.T) {
	var fired string
	m := NewMenu([]MenuItem{
		{Label: "a", Action: func() tea.Cmd { fired = "a"; return nil }},
		{Label: "b", Disabled: true, Action: func() tea.Cmd { fired = "b"; return nil }},
		{Label: "c", Action: func() tea.Cmd { fired = "c"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if fired != "" || m.Selected != 0 {
		t.Errorf("disabled shortcut fired %q, Selected = %d", fired, m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if fired != "c" || m.Selected != 2 {
		t.Errorf("fired = %q, Selected = %d, want c and 2", fired, m.Selected)
	}
	if !strings.Contains(m.View(), "3. c") {
		t.Errorf("view missing numbered item:\n%s", m.View())
	}
}

func TestMenu_Empty(t *testing.T) {
	m := NewMenu(nil)
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty menu should not produce a command")
	}
	if _, ok := m.Current(); ok {
		t.Error("empty menu has no current item")
	}
}

func TestProgressBar_Width(t *testing.T) {
	for _, v := range []float64{-0.5, 0, 0.01, 0.42, 0.999, 1, 1.7} {
		p := NewProgressBar("睡眠质量", v, 40)
		p.Suffix = " 82"
		if got := lipgloss.Width(p.View()); got != 40 {
			t.Errorf("value %v: width = %d, want 40", v, got)
		}
	}
}

func TestGauge_Fill(t *testing.T) {
	tests := []struct {
		value float64
		full  int
		part  string
	}{
		{0, 0, ""},
		{0.5, 5, ""},
		{0.55, 5, "▌"},
		{1, 10, ""},
		{2, 10, ""},
	}
	for _, tt := range tests {
		out := gauge(tt.value, 10, nil)
		if got := strings.Count(out, "█"); got != tt.full {
			t.Errorf("value %v: %d full cells, want %d", tt.value, got, tt.full)
		}
		if tt.part != "" && !strings.Contains(out, tt.part) {
			t.Errorf("value %v: missing partial cell %q in %q", tt.value, tt.part, out)
		}
		if got := lipgloss.Width(out); got != 10 {
			t.Errorf("value %v: width = %d, want 10", tt.value, got)
		}
	}
}

func TestTextInput_ValueTrimmed(t *testing.T) {
	ti := NewTextInput("topic", 20)
	ti.Focus()
	for _, r := range " 自信 " {
		ti, _ = ti.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	if ti.Value() != "自信" {
		t.Errorf("Value() = %q, want %q", ti.Value(), "自信")
	}
	ti.Reset()
	if ti.Value() != "" {
		t.Error("expected empty value after Reset")
	}
}
