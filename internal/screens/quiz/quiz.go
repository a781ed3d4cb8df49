// Package quiz administers an assessment one question at a time and hands
// the answers to the arbiter.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/mindscope/internal/arbiter"
	"github.com/abhisek/mindscope/internal/assessment"
	"github.com/abhisek/mindscope/internal/llm"
	"github.com/abhisek/mindscope/internal/questionbank"
	"github.com/abhisek/mindscope/internal/router"
	"github.com/abhisek/mindscope/internal/screen"
	"github.com/abhisek/mindscope/internal/screens/report"
	"github.com/abhisek/mindscope/internal/ui/components"
	"github.com/abhisek/mindscope/internal/ui/layout"
	"github.com/abhisek/mindscope/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Resolver settles a report for a set of answers.
type Resolver interface {
	Resolve(ctx context.Context, topic string, responses []assessment.Response) arbiter.Verdict
}

// QuizScreen implements screen.Screen for an assessment in progress.
type QuizScreen struct {
	assessment questionbank.Assessment
	resolver   Resolver
	sessionID  string

	index     int
	answers   []int // chosen option index per question, -1 when unanswered
	mc        components.MultiChoice
	analyzing bool
	frame     int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for a drawn assessment.
func New(a questionbank.Assessment, resolver Resolver) *QuizScreen {
	answers := make([]int, len(a.Questions))
	for i := range answers {
		answers[i] = -1
	}
	s := &QuizScreen{
		assessment: a,
		resolver:   resolver,
		sessionID:  uuid.NewString(),
		answers:    answers,
	}
	if len(a.Questions) > 0 {
		s.mc = s.choiceFor(0)
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if len(s.assessment.Questions) == 0 {
		return s.finish()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return s.assessment.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.analyzing {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "退出"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter/1-9", Description: "确认"},
	}
	if s.index > 0 {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "上一题"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "返回"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportReadyMsg:
		return s, router.ReplaceCmd(report.New(s.assessment.Title, msg.Verdict))

	case spinnerTickMsg:
		if !s.analyzing {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyMsg:
		if s.analyzing {
			return s, nil
		}
		switch msg.String() {
		case "left", "h", "backspace":
			s.previous()
			return s, nil
		}

		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			return s, tea.Batch(cmd, s.submit(s.mc.ChosenIndex))
		}
		return s, cmd
	}
	return s, nil
}

// previous moves back one question, keeping its earlier answer selected.
func (s *QuizScreen) previous() {
	if s.index == 0 {
		return
	}
	s.index--
	s.mc = s.choiceFor(s.index)
}

// submit records the answer for the current position, replacing any
// earlier answer, and advances or finishes.
func (s *QuizScreen) submit(choice int) tea.Cmd {
	s.answers[s.index] = choice
	if s.index < len(s.assessment.Questions)-1 {
		s.index++
		s.mc = s.choiceFor(s.index)
		return nil
	}
	return s.finish()
}

func (s *QuizScreen) finish() tea.Cmd {
	s.analyzing = true
	return tea.Batch(s.analyze(), spinnerTick())
}

// analyze runs the arbiter off the UI goroutine.
func (s *QuizScreen) analyze() tea.Cmd {
	topic := s.assessment.Title
	responses := s.Responses()
	resolver := s.resolver
	ctx := llm.WithSession(context.Background(), s.sessionID)
	return func() tea.Msg {
		return reportReadyMsg{Verdict: resolver.Resolve(ctx, topic, responses)}
	}
}

// Responses returns the answers given so far, in question order.
func (s *QuizScreen) Responses() []assessment.Response {
	out := make([]assessment.Response, 0, len(s.answers))
	for i, choice := range s.answers {
		if choice < 0 {
			continue
		}
		q := s.assessment.Questions[i]
		r, err := q.Answer(q.Options[choice].ID)
		if err != nil {
			slog.Warn("skip answer", "question", q.ID, "error", err)
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *QuizScreen) choiceFor(i int) components.MultiChoice {
	q := s.assessment.Questions[i]
	opts := make([]string, len(q.Options))
	for j, o := range q.Options {
		opts[j] = o.Text
	}
	return components.NewMultiChoice(q.Text, opts, s.answers[i])
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *QuizScreen) View(width, height int) string {
	if s.analyzing {
		return s.renderAnalyzing(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	cw := layout.ContentWidth(width)
	total := len(s.assessment.Questions)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(cw).Render(s.assessment.Description))
	b.WriteString("\n\n")

	bar := components.NewProgressBar(fmt.Sprintf("第 %d / %d 题", s.index+1, total),
		float64(s.index)/float64(total), cw)
	bar.Suffix = theme.Hint.Render(fmt.Sprintf("%d%%", s.index*100/total))
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Card.Width(cw).Render(s.mc.View()))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderAnalyzing(width, height int) string {
	spin := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(spinnerFrames[s.frame])
	text := spin + " " + theme.Body.Render("正在分析您的回答…")
	hint := theme.Hint.Render(fmt.Sprintf("已完成 %d 道题", len(s.Responses())))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text+"\n\n"+hint)
}
