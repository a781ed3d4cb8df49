package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/questionbank"
	"github.com/abhisek/mindscope/internal/router"
	"github.com/abhisek/mindscope/internal/screen"
	"github.com/abhisek/mindscope/internal/screens/home"
	"github.com/abhisek/mindscope/internal/screens/quiz"
	"github.com/abhisek/mindscope/internal/screens/welcome"
	"github.com/abhisek/mindscope/internal/ui/layout"
)

// Options holds dependencies for the TUI.
type Options struct {
	Bank     *questionbank.Bank
	Resolver quiz.Resolver
	// Count is the number of questions per assessment.
	Count int
	// Mode is shown on the right of the header, e.g. "AI" or "本地".
	Mode string
	// Notice tells the user on the splash where answers are analysed.
	Notice string
	// Topic, when set, skips the home menu and starts this assessment.
	Topic string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	mode   string
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel. It opens on the welcome splash, or
// on a quiz above the home screen when a topic is given.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Bank, opts.Resolver, opts.Count)
	}
	m := AppModel{mode: opts.Mode}

	if opts.Topic == "" {
		w := welcome.New(homeFactory, opts.Notice)
		m.router = router.New(w)
		m.start = w.Init()
		return m
	}

	m.router = router.New(homeFactory())
	q := quiz.New(opts.Bank.Pick(opts.Topic, opts.Count), opts.Resolver)
	m.start = router.PushCmd(q)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.PopCmd()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame as a string. It is empty until the first
// window size arrives.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.mode, m.width)

	var footerHints []layout.KeyHint
	if khp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = khp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "返回"},
			{Key: "Ctrl+C", Description: "退出"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
