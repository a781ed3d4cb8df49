// Package theme holds the colours and shared styles of the TUI. The palette
// is muted so long answers and reports stay readable on dark terminals.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#8B5CF6") // violet
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#22C55E") // green
	Error     = lipgloss.Color("#F43F5E") // rose
	Info      = lipgloss.Color("#22D3EE") // cyan

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	BgCard  = lipgloss.Color("#1E293B")
	Border  = lipgloss.Color("#334155")
)

// Score bands, lowest first. A score belongs to the last band whose floor
// it reaches.
var scoreBands = []struct {
	floor int
	color color.Color
}{
	{0, Error},
	{40, Accent},
	{60, Secondary},
	{80, Success},
}

// ScoreColor returns the gauge colour for a 0-100 dimension score.
func ScoreColor(score int) color.Color {
	c := scoreBands[0].color
	for _, b := range scoreBands {
		if score >= b.floor {
			c = b.color
		}
	}
	return c
}

// Text styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body    = lipgloss.NewStyle().Foreground(Text)
	Hint    = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Section = lipgloss.NewStyle().Foreground(Info).Bold(true)
)

// Card frames a block of content.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// Cursor states for menus and option lists.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Chosen     = lipgloss.NewStyle().Foreground(Success).Bold(true)
)

// List markers in the report.
var (
	StrengthMark       = lipgloss.NewStyle().Foreground(Success).Render("+")
	WeaknessMark       = lipgloss.NewStyle().Foreground(Accent).Render("!")
	RecommendationMark = lipgloss.NewStyle().Foreground(Info).Render("→")
)
