package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/echolens/echolens/internal/analysis"
	"github.com/echolens/echolens/internal/capture"
	"github.com/echolens/echolens/internal/tui/views"
	"github.com/echolens/echolens/internal/vocab"
)

func newTestApp() AppModel {
	set := vocab.NewSet("Clarity")
	return NewApp(Options{
		Client:     analysis.NewClient("http://127.0.0.1:5000"),
		Recorder:   capture.NewRecorder(nil),
		Vocabulary: set.Terms,
		Set:        set,
		Presets:    vocab.BuiltinPresets(),
		TopTerms:   6,
	})
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T, want AppModel", next)
	}
	return app, cmd
}

func TestAppAnalysisDoneLandsInSessionAndShowsResults(t *testing.T) {
	m := newTestApp()

	m, _ = update(t, m, views.AnalysisDoneMsg{
		Label:  "standup",
		Text:   "the demo went well",
		Result: analysis.Result{Keywords: []string{"demo"}},
	})

	if m.store.Len() != 1 {
		t.Fatalf("store.Len() = %d, want 1", m.store.Len())
	}
	if m.currentView != ViewResults {
		t.Errorf("currentView = %v, want ViewResults", m.currentView)
	}

	entry, ok := m.store.ActiveEntry()
	if !ok {
		t.Fatal("no active entry after analysis")
	}
	if entry.Label != "standup" || entry.RawText != "the demo went well" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestAppBlankLabelDefaultsToUntitled(t *testing.T) {
	m := newTestApp()

	m, _ = update(t, m, views.AnalysisDoneMsg{Text: "feedback"})

	entry, ok := m.store.ActiveEntry()
	if !ok {
		t.Fatal("no active entry")
	}
	if entry.Label != "Untitled" {
		t.Errorf("label = %q, want Untitled", entry.Label)
	}
}

func TestAppQuitKeysRespectTextInput(t *testing.T) {
	m := newTestApp()

	// The compose view has a focused text field, so "q" must type, not quit.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("q quit while a text field was focused")
		}
	}

	// On the results view no field is focused and "q" quits.
	m = m.switchView(ViewResults)
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command on the results view")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("q did not quit on the results view")
	}
}

func TestAppNumberKeysSwitchViews(t *testing.T) {
	m := newTestApp()
	m = m.switchView(ViewResults)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	if m.currentView != ViewVocabulary {
		t.Errorf("currentView = %v, want ViewVocabulary", m.currentView)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if m.currentView != ViewResults {
		t.Errorf("currentView = %v, want ViewResults", m.currentView)
	}
}

func TestAppEscFocusesSidebarThenQuits(t *testing.T) {
	m := newTestApp()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.sidebarActive {
		t.Fatal("esc did not focus the sidebar")
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("second esc produced no command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("second esc did not quit")
	}
}

func TestAppSidebarNavigation(t *testing.T) {
	m := newTestApp()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.currentView != ViewResults {
		t.Errorf("currentView = %v, want ViewResults", m.currentView)
	}
	if m.sidebarActive {
		t.Error("sidebar still active after selection")
	}
}

func TestAppWindowSizeMakesReady(t *testing.T) {
	m := newTestApp()
	if m.ready {
		t.Fatal("ready before first WindowSizeMsg")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !m.ready {
		t.Error("not ready after WindowSizeMsg")
	}
	if m.View() == "Loading..." {
		t.Error("still rendering the loading screen")
	}
}
