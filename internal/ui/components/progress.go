package components

import (
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/ui/theme"
)

// eighths are the partial block glyphs, from one eighth to seven eighths.
var eighths = []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// ProgressBar draws a labelled horizontal gauge with eighth-cell precision.
//
//	焦虑指数  ██████████▌░░░░░░░  82 表现卓越
type ProgressBar struct {
	Label      string
	LabelWidth int // pad the label to this many cells; 0 means no padding
	Value      float64
	Suffix     string // rendered after the bar, e.g. a score
	Width      int    // total width including label and suffix
	Fill       color.Color
}

// NewProgressBar creates a bar with the default fill.
func NewProgressBar(label string, value float64, width int) ProgressBar {
	return ProgressBar{Label: label, Value: value, Width: width, Fill: theme.Secondary}
}

// View renders the bar. The result is exactly Width cells wide when the
// label and suffix leave room for at least four bar cells.
func (p ProgressBar) View() string {
	var left, right string
	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		left = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}
	if p.Suffix != "" {
		right = "  " + p.Suffix
	}

	cells := p.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if cells < 4 {
		cells = 4
	}

	return left + gauge(p.Value, cells, p.Fill) + right
}

// gauge renders value in [0, 1] across cells. A nil fill uses the theme.
func gauge(value float64, cells int, fill color.Color) string {
	if fill == nil {
		fill = theme.Secondary
	}
	value = math.Max(0, math.Min(1, value))
	units := int(math.Round(value * float64(cells*8)))
	full, part := units/8, units%8

	var bar strings.Builder
	bar.WriteString(strings.Repeat("█", full))
	used := full
	if part > 0 {
		bar.WriteString(eighths[part-1])
		used++
	}

	filled := lipgloss.NewStyle().Foreground(fill).Render(bar.String())
	empty := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-used))
	return filled + empty
}
