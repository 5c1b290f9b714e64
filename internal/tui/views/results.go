package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/echolens/echolens/internal/analysis"
	"github.com/echolens/echolens/internal/highlight"
	"github.com/echolens/echolens/internal/session"
	"github.com/mattn/go-runewidth"
)

// maxEmotions caps the sentiment panel at the strongest emotions.
const maxEmotions = 5

// Results view styles
var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 2).
			Margin(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#2d3436")).
			Padding(0, 2).
			Margin(0, 1)

	tabNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true).
			Padding(0, 1)

	tabBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ffe66d")).
			Padding(0, 2).
			Margin(1, 0)

	pillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#a8dadc")).
			Padding(0, 1)

	pillSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1a1a2e")).
				Background(lipgloss.Color("#ffe66d")).
				Padding(0, 1)

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#ffe66d")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

// Model explanation footers, shown with "i". Adapted from the service's
// documentation of its underlying models.
const (
	keywordsInfo  = "Keywords are extracted with KeyBERT, which embeds the text and returns the most semantically important phrases."
	emotionsInfo  = "Emotions come from a RoBERTa classifier fine-tuned on the GoEmotions dataset; each score is the probability of that emotion."
	relevanceInfo = "Term relevance is the cosine similarity between sentence embeddings of the text and each vocabulary term."
)

// ResultsModel shows every analysis of the session as tabs, with four result
// panels for the active entry. Switching tabs re-renders from the stored
// result; the service is never re-queried.
type ResultsModel struct {
	store    *session.Store
	topTerms int

	// selectedKeyword indexes the active entry's keyword pills, -1 when no
	// pill is selected.
	selectedKeyword int
	showInfo        bool

	width  int
	height int
}

// NewResultsModel creates the results view over the shared session store.
func NewResultsModel(store *session.Store, topTerms int) ResultsModel {
	return ResultsModel{
		store:           store,
		topTerms:        topTerms,
		selectedKeyword: -1,
	}
}

// SetSize updates the view dimensions.
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// EntryAppended resets per-entry interaction state after a new analysis
// became the active entry.
func (m *ResultsModel) EntryAppended() {
	m.selectedKeyword = -1
}

// CapturesInput reports whether keystrokes go to a text field. The results
// view has none.
func (m ResultsModel) CapturesInput() bool {
	return false
}

// Update handles messages.
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.selectTab(-1)
			return m, nil
		case "right", "l":
			m.selectTab(1)
			return m, nil
		case "j", "down":
			m.moveKeyword(1)
			return m, nil
		case "k", "up":
			m.moveKeyword(-1)
			return m, nil
		case "x":
			m.selectedKeyword = -1
			return m, nil
		case "i":
			m.showInfo = !m.showInfo
			return m, nil
		}
	}
	return m, nil
}

// selectTab moves the active selection by delta, wrapping around. A failed
// selection (stale index) is a no-op.
func (m *ResultsModel) selectTab(delta int) {
	active, ok := m.store.Active()
	if !ok {
		return
	}

	next := active + delta
	if next < 0 {
		next = m.store.Len() - 1
	}
	if next >= m.store.Len() {
		next = 0
	}

	if err := m.store.Select(next); err != nil {
		return
	}
	m.selectedKeyword = -1
}

func (m *ResultsModel) moveKeyword(delta int) {
	entry, ok := m.store.ActiveEntry()
	if !ok {
		return
	}
	n := len(entry.Result.Keywords)
	if n == 0 {
		return
	}

	if m.selectedKeyword < 0 {
		if delta > 0 {
			m.selectedKeyword = 0
		} else {
			m.selectedKeyword = n - 1
		}
		return
	}

	m.selectedKeyword += delta
	if m.selectedKeyword < 0 {
		m.selectedKeyword = n - 1
	}
	if m.selectedKeyword >= n {
		m.selectedKeyword = 0
	}
}

// View renders the results view.
func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Analysis Results"))
	b.WriteString("\n")

	entry, ok := m.store.ActiveEntry()
	if !ok {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("No analyses yet. Submit feedback from the Compose view."))
		return b.String()
	}

	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.renderTextPanel(entry))
	b.WriteString("\n")
	b.WriteString(m.renderSentimentPanel(entry.Result))
	b.WriteString("\n")
	b.WriteString(m.renderRelevancePanel(entry.Result))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("←/→: switch analysis • j/k: select keyword • x: clear highlight • i: model info"))

	return b.String()
}

func (m ResultsModel) renderTabBar() string {
	active, _ := m.store.Active()
	labels := m.store.Labels()

	var tabs []string
	for i, label := range labels {
		if i == active {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	nav := ""
	if len(labels) > 1 {
		nav = tabNavStyle.Render(fmt.Sprintf("◀ %d/%d ▶", active+1, len(labels)))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	combined := lipgloss.JoinHorizontal(lipgloss.Center, bar, "  ", nav)
	return tabBarStyle.Render(combined)
}

func (m ResultsModel) contentWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

// renderTextPanel shows the raw submitted text and its keyword pills. With a
// pill selected, whole-word occurrences of that keyword are highlighted; the
// marks are re-derived from the stored raw text on every render, so clearing
// the selection restores the text exactly.
func (m ResultsModel) renderTextPanel(entry session.Entry) string {
	width := m.contentWidth()
	var lines []string

	wrapped := wordWrap(entry.RawText, width-6)
	display := valueStyle.Render(wrapped)

	keywords := entry.Result.Keywords
	if m.selectedKeyword >= 0 && m.selectedKeyword < len(keywords) {
		matcher := highlight.NewMatcher(keywords[m.selectedKeyword])
		display = matcher.Mark(wrapped, func(match string) string {
			return highlightStyle.Render(match)
		})
	}
	lines = append(lines, display)

	if len(keywords) > 0 {
		lines = append(lines, "")
		lines = append(lines, m.renderPills(keywords, width-6)...)
		lines = append(lines, "")
		lines = append(lines, helpStyle.Render("Select a keyword to highlight it in the text."))
	}

	if m.showInfo {
		lines = append(lines, "")
		lines = append(lines, infoStyle.Render(wordWrap(keywordsInfo, width-6)))
	}

	content := strings.Join(lines, "\n")
	return boxStyle.Render(subtitleStyle.Render("Original Text & Keywords") + "\n\n" + content)
}

// renderPills lays the keyword pills out in rows that fit width. Duplicate
// keywords get duplicate pills; the service's order is preserved.
func (m ResultsModel) renderPills(keywords []string, width int) []string {
	var rows []string
	var row []string
	rowWidth := 0

	for i, kw := range keywords {
		pillWidth := runewidth.StringWidth(kw) + 3
		if rowWidth+pillWidth > width && len(row) > 0 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
			rowWidth = 0
		}

		if i == m.selectedKeyword {
			row = append(row, pillSelectedStyle.Render(kw))
		} else {
			row = append(row, pillStyle.Render(kw))
		}
		rowWidth += pillWidth
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return rows
}

func (m ResultsModel) renderSentimentPanel(result analysis.Result) string {
	width := m.contentWidth()
	top := analysis.TopEmotions(result, maxEmotions)

	var lines []string
	if len(top) == 0 {
		lines = append(lines, helpStyle.Render("No sentiment data"))
	}

	labelWidth := 0
	for _, e := range top {
		if w := runewidth.StringWidth(e.Emotion); w > labelWidth {
			labelWidth = w
		}
	}

	barWidth := width - labelWidth - 16
	if barWidth < 10 {
		barWidth = 10
	}

	for _, e := range top {
		pct := analysis.Percent(e.Score)
		bar := strings.Repeat("█", pct*barWidth/100)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			labelStyle.Width(labelWidth+1).Render(capitalize(e.Emotion)),
			percentStyle.Width(4).Render(fmt.Sprintf("%d%%", pct)),
			barStyle.Render(bar),
		))
	}

	if m.showInfo {
		lines = append(lines, "")
		lines = append(lines, infoStyle.Render(wordWrap(emotionsInfo, width-6)))
	}

	content := strings.Join(lines, "\n")
	return boxStyle.Render(subtitleStyle.Render("Sentiment Analysis") + "\n\n" + content)
}

func (m ResultsModel) renderRelevancePanel(result analysis.Result) string {
	width := m.contentWidth()
	top := analysis.TopTerms(result, m.topTerms)

	var lines []string
	if len(top) == 0 {
		lines = append(lines, helpStyle.Render("No relevant terms found"))
	}
	for _, t := range top {
		lines = append(lines, fmt.Sprintf("%s %s",
			percentStyle.Width(5).Render(fmt.Sprintf("%d%%", analysis.Percent(t.Relevance))),
			valueStyle.Render(t.Term),
		))
	}

	if m.showInfo {
		lines = append(lines, "")
		lines = append(lines, infoStyle.Render(wordWrap(relevanceInfo, width-6)))
	}

	content := strings.Join(lines, "\n")
	return boxStyle.Render(subtitleStyle.Render("Term Relevance Scores") + "\n\n" + content)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func wordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	words := strings.Fields(s)
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+wordWidth+1 > width && currentWidth > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			currentLine.WriteString(" ")
			currentWidth++
		}
		currentLine.WriteString(word)
		currentWidth += wordWidth
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return strings.Join(lines, "\n")
}
