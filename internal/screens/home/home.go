package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindscope/internal/questionbank"
	"github.com/abhisek/mindscope/internal/router"
	"github.com/abhisek/mindscope/internal/screen"
	"github.com/abhisek/mindscope/internal/screens/quiz"
	"github.com/abhisek/mindscope/internal/screens/welcome"
	"github.com/abhisek/mindscope/internal/ui/components"
	"github.com/abhisek/mindscope/internal/ui/layout"
	"github.com/abhisek/mindscope/internal/ui/theme"
)

const customTopicLabel = "自定义主题…"

// HomeScreen lists the available assessments and accepts a custom topic.
type HomeScreen struct {
	bank     *questionbank.Bank
	resolver quiz.Resolver
	count    int

	menu    components.Menu
	input   components.TextInput
	editing bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.BackHandler = (*HomeScreen)(nil)

// New creates a HomeScreen. count is the number of questions per
// assessment; non-positive means questionbank.DefaultCount.
func New(bank *questionbank.Bank, resolver quiz.Resolver, count int) *HomeScreen {
	h := &HomeScreen{
		bank:     bank,
		resolver: resolver,
		count:    count,
		input:    components.NewTextInput("输入想要测评的主题，例如：时间管理能力", 40),
	}

	var items []components.MenuItem
	for _, t := range bank.Topics() {
		label := t.Label
		if label == "" {
			label = t.Title
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Hint:   t.Description,
			Action: h.start(t.Title),
		})
	}
	items = append(items,
		components.MenuItem{Label: customTopicLabel, Action: func() tea.Cmd {
			h.editing = true
			return h.input.Focus()
		}},
		components.MenuItem{Label: "退出", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)
	return h
}

// start returns a menu action that opens a quiz for topic.
func (h *HomeScreen) start(topic string) func() tea.Cmd {
	return func() tea.Cmd {
		a := h.bank.Pick(topic, h.count)
		return router.PushCmd(quiz.New(a, h.resolver))
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "首页"
}

func (h *HomeScreen) HandlesBack() bool {
	return h.editing
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "开始测评"},
			{Key: "Esc", Description: "取消"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "开始"},
		{Key: "1-9", Description: "快速选择"},
		{Key: "Ctrl+C", Description: "退出"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.editing {
		return h.updateInput(msg)
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			h.stopEditing()
			return h, nil
		case "enter":
			topic := h.input.Value()
			if topic == "" {
				return h, nil
			}
			h.stopEditing()
			return h, h.start(topic)()
		}
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) stopEditing() {
	h.editing = false
	h.input.Blur()
	h.input.Reset()
}

func (h *HomeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	bannerWidth := cw
	if compact {
		bannerWidth = 0
	}
	sections := []string{lipgloss.PlaceHorizontal(cw, lipgloss.Center, welcome.RenderBanner(bannerWidth))}
	sections = append(sections, theme.Subtitle.Width(cw).Render("选择一个测评主题，了解真实的自己"))

	sections = append(sections, theme.Card.Width(cw).Render(h.menu.View()))

	if h.editing {
		sections = append(sections, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Width(cw).
			Render(h.input.View()))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
