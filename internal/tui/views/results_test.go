package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/echolens/echolens/internal/analysis"
	"github.com/echolens/echolens/internal/session"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleResult(keywords ...string) analysis.Result {
	return analysis.Result{
		Emotions: map[string]float64{"joy": 0.8, "neutral": 0.15},
		Keywords: keywords,
		TermRelevance: []analysis.TermScore{
			{Term: "Clarity", Relevance: 0.9},
		},
	}
}

func TestResultsEmptyStorePlaceholder(t *testing.T) {
	m := NewResultsModel(session.NewStore(), 6)

	view := m.View()
	if !strings.Contains(view, "No analyses yet") {
		t.Errorf("view missing placeholder:\n%s", view)
	}
}

func TestResultsTabSwitching(t *testing.T) {
	store := session.NewStore()
	store.Append("first", "one", sampleResult("one"))
	store.Append("second", "two", sampleResult("two"))

	m := NewResultsModel(store, 6)

	if active, _ := store.Active(); active != 1 {
		t.Fatalf("active = %d, want 1 after appends", active)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if active, _ := store.Active(); active != 0 {
		t.Errorf("active = %d after left, want 0", active)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if active, _ := store.Active(); active != 1 {
		t.Errorf("active = %d after wrap, want 1", active)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if active, _ := store.Active(); active != 0 {
		t.Errorf("active = %d after right wrap, want 0", active)
	}
}

func TestResultsTabSwitchingRendersExactlyOneActiveTab(t *testing.T) {
	store := session.NewStore()
	store.Append("alpha", "text a", sampleResult())
	store.Append("beta", "text b", sampleResult())

	m := NewResultsModel(store, 6)

	bar := m.renderTabBar()
	if !strings.Contains(bar, "alpha") || !strings.Contains(bar, "beta") {
		t.Errorf("tab bar missing labels:\n%s", bar)
	}
	if !strings.Contains(bar, "2/2") {
		t.Errorf("tab bar missing position indicator:\n%s", bar)
	}
}

func TestResultsKeywordSelectionCycles(t *testing.T) {
	store := session.NewStore()
	store.Append("", "good flow", sampleResult("flow", "good"))

	m := NewResultsModel(store, 6)
	if m.selectedKeyword != -1 {
		t.Fatalf("selectedKeyword = %d, want -1 initially", m.selectedKeyword)
	}

	m, _ = m.Update(keyRune('j'))
	if m.selectedKeyword != 0 {
		t.Errorf("selectedKeyword = %d after j, want 0", m.selectedKeyword)
	}
	m, _ = m.Update(keyRune('j'))
	if m.selectedKeyword != 1 {
		t.Errorf("selectedKeyword = %d after jj, want 1", m.selectedKeyword)
	}
	m, _ = m.Update(keyRune('j'))
	if m.selectedKeyword != 0 {
		t.Errorf("selectedKeyword = %d after jjj, want wrap to 0", m.selectedKeyword)
	}

	m, _ = m.Update(keyRune('x'))
	if m.selectedKeyword != -1 {
		t.Errorf("selectedKeyword = %d after x, want -1", m.selectedKeyword)
	}
}

func TestResultsHighlightIsReversible(t *testing.T) {
	store := session.NewStore()
	store.Append("", "Good flow and good balance, goodness aside", sampleResult("good"))

	m := NewResultsModel(store, 6)
	before := m.View()

	m, _ = m.Update(keyRune('j'))
	highlighted := m.View()
	if highlighted == before {
		t.Error("selecting a keyword did not change the rendered text")
	}

	m, _ = m.Update(keyRune('x'))
	after := m.View()
	if after != before {
		t.Error("clearing the selection did not restore the original rendering")
	}
}

func TestResultsTabSwitchClearsKeywordSelection(t *testing.T) {
	store := session.NewStore()
	store.Append("a", "alpha text", sampleResult("alpha"))
	store.Append("b", "beta text", sampleResult("beta"))

	m := NewResultsModel(store, 6)
	m, _ = m.Update(keyRune('j'))
	if m.selectedKeyword != 0 {
		t.Fatalf("selectedKeyword = %d, want 0", m.selectedKeyword)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.selectedKeyword != -1 {
		t.Errorf("selectedKeyword = %d after tab switch, want -1", m.selectedKeyword)
	}
}

func TestResultsNoRelevantTermsPlaceholder(t *testing.T) {
	store := session.NewStore()
	store.Append("", "some text", analysis.Result{
		Emotions: map[string]float64{"neutral": 0.9},
	})

	m := NewResultsModel(store, 6)
	view := m.View()
	if !strings.Contains(view, "No relevant terms found") {
		t.Errorf("view missing empty-relevance placeholder:\n%s", view)
	}
}

func TestResultsShowsPercentages(t *testing.T) {
	store := session.NewStore()
	store.Append("", "some text", analysis.Result{
		Emotions:      map[string]float64{"joy": 0.8},
		TermRelevance: []analysis.TermScore{{Term: "Clarity", Relevance: 0.255}},
	})

	m := NewResultsModel(store, 6)
	view := m.View()
	if !strings.Contains(view, "80%") {
		t.Errorf("view missing emotion percentage:\n%s", view)
	}
	if !strings.Contains(view, "26%") {
		t.Errorf("view missing rounded relevance percentage:\n%s", view)
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wordWrap = %q, want %q", got, want)
	}
}
