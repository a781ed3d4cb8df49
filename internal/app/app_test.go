package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindscope/internal/arbiter"
	"github.com/abhisek/mindscope/internal/assessment"
	"github.com/abhisek/mindscope/internal/questionbank"
	"github.com/abhisek/mindscope/internal/router"
)

type nopResolver struct{}

func (nopResolver) Resolve(context.Context, string, []assessment.Response) arbiter.Verdict {
	return arbiter.Verdict{}
}

func testOptions() Options {
	return Options{Bank: questionbank.Default(), Resolver: nopResolver{}, Mode: "本地"}
}

// drain runs cmd and feeds the resulting navigation message back in.
func drain(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
		next, _ := m.Update(msg)
		return next.(AppModel)
	}
	return m
}

func TestAppModel_SplashThenHome(t *testing.T) {
	m := newAppModel(testOptions())
	if m.Init() == nil {
		t.Error("expected the splash to start ticking")
	}
	if m.router.Active().Title() != "" {
		t.Errorf("expected splash first, got %q", m.router.Active().Title())
	}

	next, cmd := m.Update(tea.KeyPressMsg{Code: ' '})
	m = drain(t, next.(AppModel), cmd)
	if m.router.Depth() != 1 || m.router.Active().Title() != "首页" {
		t.Errorf("expected home after splash, got %q", m.router.Active().Title())
	}
}

func TestAppModel_TopicSkipsHome(t *testing.T) {
	opts := testOptions()
	opts.Topic = "大五人格特质"
	m := newAppModel(opts)

	m = drain(t, m, m.Init())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if m.router.Active().Title() != "大五人格特质" {
		t.Errorf("active = %q", m.router.Active().Title())
	}
}

func TestAppModel_EscPopsQuiz(t *testing.T) {
	m := newAppModel(testOptions())
	next, cmd := m.Update(tea.KeyPressMsg{Code: ' '})
	m = drain(t, next.(AppModel), cmd)

	next, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = drain(t, next.(AppModel), cmd)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2 after starting a quiz", m.router.Depth())
	}

	next, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = drain(t, next.(AppModel), cmd)
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1 after Esc", m.router.Depth())
	}
}

func TestAppModel_ViewShowsModeAndTooSmall(t *testing.T) {
	m := newAppModel(testOptions())

	if m.render() != "" {
		t.Error("expected an empty frame before the first window size")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := next.(AppModel).render()
	if !strings.Contains(view, "MindScope") || !strings.Contains(view, "本地") {
		t.Error("expected header with app name and mode")
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(next.(AppModel).render(), "终端窗口太小") {
		t.Error("expected too-small message")
	}
}

func TestAppModel_ViewUsesAltScreen(t *testing.T) {
	m := newAppModel(testOptions())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !next.(AppModel).View().AltScreen {
		t.Error("expected the alt screen to be requested")
	}
}
