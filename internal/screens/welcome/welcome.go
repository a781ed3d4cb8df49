// Package welcome is the opening splash. Besides the logo it tells the
// user where their answers will be analysed before the first question is
// shown.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/router"
	"github.com/abhisek/mindscope/internal/screen"
	"github.com/abhisek/mindscope/internal/ui/theme"
)

const (
	frameInterval = 100 * time.Millisecond
	revealFrame   = 4  // banner, tagline and notice appear
	lastFrame     = 25 // splash hands over to home
)

const lensArt = `   ╭─────────╮
  ╱  ◜     ◝  ╲
 │   ( ◉ )    │
  ╲  ◟     ◞  ╱
   ╰─────────╯`

// pulse cycles on both sides of the lens once the splash is revealed.
var pulse = []string{"·", "∘", "○", "∘"}

type frameMsg struct{}

// WelcomeScreen is the splash. It replaces itself with the home screen
// after lastFrame frames or on any key.
type WelcomeScreen struct {
	home   func() screen.Screen
	notice string
	frame  int
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the splash. home builds the screen shown afterwards; notice
// is the one-line data disclosure, e.g. which provider receives answers.
func New(home func() screen.Screen, notice string) *WelcomeScreen {
	return &WelcomeScreen{home: home, notice: notice}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nextFrame()
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) revealed() bool {
	return w.frame >= revealFrame
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.frame++
		if w.frame >= lastFrame {
			return w, w.leave()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave swaps in the home screen. It runs at most once.
func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	return router.ReplaceCmd(w.home())
}

func (w *WelcomeScreen) View(width, height int) string {
	lens := lipgloss.NewStyle().Foreground(theme.Secondary).Render(lensArt)
	if !w.revealed() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, lens)
	}

	p := lipgloss.NewStyle().Foreground(theme.Info).Render(pulse[w.frame%len(pulse)])
	lines := strings.Split(lens, "\n")
	lines[2] = p + "  " + lines[2] + "  " + p

	sections := []string{
		strings.Join(lines, "\n"),
		"",
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("了解真实的自己"),
	}
	if w.notice != "" {
		sections = append(sections, "", theme.Subtitle.Width(min(width, 60)).Render(w.notice))
	}
	sections = append(sections, "", theme.Hint.Render("按任意键继续"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
