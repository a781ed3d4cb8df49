// Package report renders a finished assessment.
package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/arbiter"
	"github.com/abhisek/mindscope/internal/assessment"
	"github.com/abhisek/mindscope/internal/router"
	"github.com/abhisek/mindscope/internal/screen"
	"github.com/abhisek/mindscope/internal/ui/components"
	"github.com/abhisek/mindscope/internal/ui/layout"
	"github.com/abhisek/mindscope/internal/ui/theme"
)

// EmptyPlaceholder is shown for a report section with no entries.
const EmptyPlaceholder = "暂无数据"

// ReportScreen displays an assessment report. Enter or Esc returns to
// the home screen.
type ReportScreen struct {
	topic   string
	verdict arbiter.Verdict
	offset  int
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)
var _ screen.BackHandler = (*ReportScreen)(nil)

// New creates a ReportScreen.
func New(topic string, v arbiter.Verdict) *ReportScreen {
	return &ReportScreen{topic: topic, verdict: v}
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return "测评报告"
}

func (s *ReportScreen) HandlesBack() bool {
	return true
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "滚动"},
		{Key: "Enter", Description: "重新开始"},
		{Key: "Ctrl+C", Description: "退出"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.PopToRootCmd()
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	lines := strings.Split(s.render(width), "\n")

	maxOffset := max(len(lines)-height, 0)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}

func (s *ReportScreen) render(width int) string {
	res := s.verdict.Result
	cw := layout.ContentWidth(width)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title.Render(s.topic)))
	b.WriteString("\n")
	b.WriteString(center(theme.Hint.Render(sourceLabel(s.verdict.Resolution))))
	b.WriteString("\n\n")

	summary := res.Summary
	if strings.TrimSpace(summary) == "" {
		summary = EmptyPlaceholder
	}
	b.WriteString(center(theme.Card.Width(cw).Render(theme.Body.Render(summary))))
	b.WriteString("\n\n")

	b.WriteString(center(section("维度分析", cw)))
	b.WriteString("\n")
	if len(res.Dimensions) == 0 {
		b.WriteString(center(emptyLine(cw)))
		b.WriteString("\n")
	}
	labelWidth := 0
	for _, d := range res.Dimensions {
		labelWidth = max(labelWidth, lipgloss.Width(d.Name))
	}
	for _, d := range res.Dimensions {
		b.WriteString(center(dimensionLine(d, labelWidth, cw)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(center(list("优势", theme.StrengthMark, res.Strengths, cw)))
	b.WriteString("\n\n")
	b.WriteString(center(list("待提升", theme.WeaknessMark, res.Weaknesses, cw)))
	b.WriteString("\n\n")
	b.WriteString(center(list("建议", theme.RecommendationMark, res.Recommendations, cw)))

	return b.String()
}

func dimensionLine(d assessment.DimensionScore, labelWidth, cw int) string {
	score := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("%3d", d.Score))
	bar := components.ProgressBar{
		Label:      d.Name,
		LabelWidth: labelWidth,
		Value:      float64(d.Score) / 100,
		Suffix:     score + " " + theme.Hint.Render(d.Description),
		Width:      cw,
		Fill:       theme.ScoreColor(d.Score),
	}
	return lipgloss.NewStyle().Width(cw).Render(bar.View())
}

func list(title, mark string, items []string, cw int) string {
	var b strings.Builder
	b.WriteString(section(title, cw))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(emptyLine(cw))
		return b.String()
	}
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Width(cw).Render(" " + mark + " " + theme.Body.Render(it)))
	}
	return b.String()
}

func section(title string, cw int) string {
	head := theme.Section.Render(title)
	return lipgloss.NewStyle().Width(cw).Render(head + "\n" + layout.Divider(cw))
}

func emptyLine(cw int) string {
	return lipgloss.NewStyle().Width(cw).Render(theme.Hint.Render("   " + EmptyPlaceholder))
}

func sourceLabel(r arbiter.Resolution) string {
	if r == arbiter.ResolvedRemote {
		return "AI 深度分析"
	}
	return "本地智能分析"
}
