// Package layout draws the application frame: a header with the product
// name, screen title and analysis mode, the screen body, and a footer of
// key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	HeaderHeight = 3
	FooterHeight = 3

	CompactHeightThreshold = 30

	maxContentWidth = 72
	minContentWidth = 20
)

const brand = "  MindScope"

// KeyHint is one footer entry, e.g. {"Enter", "开始"}.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight reports whether decorative elements should be dropped.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal is below the supported size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentWidth returns the width of the centered column screens draw in.
func ContentWidth(frameWidth int) int {
	return max(minContentWidth, min(maxContentWidth, frameWidth-6))
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"终端窗口太小\n\n请调整到至少 %d x %d\n\n当前: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the brand on the left, title centered and mode on the
// right. The mode is dropped when the three do not fit.
func RenderHeader(title, mode string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(mode + " ")

	inner := max(0, width-4) // border and padding
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	if lw+cw+rw+2 > inner {
		right, rw = "", 0
	}

	leftGap := max(1, (inner-cw)/2-lw)
	rightGap := max(1, inner-lw-leftGap-cw-rw)
	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return bar(content, width)
}

// RenderFooter draws key hints left to right, dropping trailing hints that
// do not fit in width.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	avail := max(0, width-6)

	var b strings.Builder
	b.WriteString("  ")
	used := 0
	for i, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		w := lipgloss.Width(part)
		if i > 0 {
			w += len(sep)
		}
		if used+w > avail {
			break
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(part)
		used += w
	}
	return bar(b.String(), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, body and footer, padding the body so the
// footer stays at the bottom.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	return header + "\n" +
		lipgloss.NewStyle().Width(width).Height(body).Render(content) + "\n" +
		footer
}

// Divider renders a horizontal rule of n cells.
func Divider(n int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, n)))
}
