package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/echolens/echolens/internal/analysis"
	"github.com/echolens/echolens/internal/capture"
	"github.com/echolens/echolens/internal/session"
	"github.com/echolens/echolens/internal/tui/views"
	"github.com/echolens/echolens/internal/vocab"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewCompose ViewType = iota
	ViewResults
	ViewVocabulary
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// Options bundles the dependencies the TUI needs.
type Options struct {
	Client     *analysis.Client
	Recorder   *capture.Recorder
	Vocabulary func() []string // terms sent with every analysis request
	Set        *vocab.Set      // nil when the vocabulary source is fixed
	VocabStore *vocab.Store    // nil when persistence is unavailable
	Presets    vocab.Presets
	TopTerms   int
}

// AppModel is the main TUI model: a sidebar plus the three views sharing one
// session store.
type AppModel struct {
	store *session.Store

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	composeView    views.ComposeModel
	resultsView    views.ResultsModel
	vocabularyView views.VocabularyModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application.
func NewApp(opts Options) AppModel {
	store := session.NewStore()

	menuItems := []MenuItem{
		{Label: "Compose", View: ViewCompose, Shortcut: "1"},
		{Label: "Results", View: ViewResults, Shortcut: "2"},
		{Label: "Vocabulary", View: ViewVocabulary, Shortcut: "3"},
	}

	editable := opts.Set != nil
	set := opts.Set
	if set == nil {
		set = vocab.NewSet(opts.Presets.Fixed()...)
	}

	return AppModel{
		store:        store,
		sidebarWidth: 18,
		currentView:  ViewCompose,
		menuItems:    menuItems,

		composeView:    views.NewComposeModel(opts.Client, opts.Vocabulary, opts.Recorder),
		resultsView:    views.NewResultsModel(store, opts.TopTerms),
		vocabularyView: views.NewVocabularyModel(set, opts.VocabStore, opts.Presets, editable),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// ctrl+c and esc work everywhere; the rest of the global keys are
		// reserved only while no text field is focused, so typing "q" into
		// the feedback area stays typing.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		}

		if m.sidebarActive || !m.activeViewCapturesInput() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "1":
				return m.switchView(ViewCompose), nil
			case "2":
				return m.switchView(ViewResults), nil
			case "3":
				return m.switchView(ViewVocabulary), nil
			}
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
				return m, nil
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
				return m, nil
			case "enter", "l", "right":
				return m.switchView(m.menuItems[m.selectedMenu].View), nil
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.composeView.SetSize(contentWidth, contentHeight)
		m.resultsView.SetSize(contentWidth, contentHeight)
		m.vocabularyView.SetSize(contentWidth, contentHeight)

		return m, nil

	case views.AnalysisDoneMsg:
		// A finished analysis always lands in the session and becomes the
		// active tab; the compose view still needs the message to reset.
		m.store.Append(msg.Label, msg.Text, msg.Result)
		m.resultsView.EntryAppended()

		var cmd tea.Cmd
		m.composeView, cmd = m.composeView.Update(msg)
		app := m.switchView(ViewResults)
		return app, cmd
	}

	// Keystrokes go to the active view only. Everything else (spinner
	// ticks, capture and analysis messages) is broadcast, so an in-flight
	// submission keeps progressing while the user browses other views.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		var cmd tea.Cmd
		switch m.currentView {
		case ViewCompose:
			m.composeView, cmd = m.composeView.Update(msg)
		case ViewResults:
			m.resultsView, cmd = m.resultsView.Update(msg)
		case ViewVocabulary:
			m.vocabularyView, cmd = m.vocabularyView.Update(msg)
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.composeView, cmd = m.composeView.Update(msg)
	cmds = append(cmds, cmd)
	m.resultsView, cmd = m.resultsView.Update(msg)
	cmds = append(cmds, cmd)
	m.vocabularyView, cmd = m.vocabularyView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m AppModel) activeViewCapturesInput() bool {
	switch m.currentView {
	case ViewCompose:
		return m.composeView.CapturesInput()
	case ViewVocabulary:
		return m.vocabularyView.CapturesInput()
	default:
		return false
	}
}

func (m AppModel) switchView(v ViewType) AppModel {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
	return m
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewCompose:
		content = m.composeView.View()
	case ViewResults:
		content = m.resultsView.View()
	case ViewVocabulary:
		content = m.vocabularyView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	title := SidebarTitleStyle.Render("  EchoLens  ")
	items = append(items, title)
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label
		if item.View == ViewResults && m.store.Len() > 0 {
			label += " ●"
		}

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	// Spacer
	usedHeight := len(items) + 4
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}

	help := SidebarHelpStyle.Render("? Help  esc Menu")
	items = append(items, help)

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render("EchoLens - Feedback Analysis") + "\n\n"

	helpText += sectionStyle.Render("Global Keys") + "\n"
	helpText += keyStyle.Render("1-3") + descStyle.Render("Switch views") + "\n"
	helpText += keyStyle.Render("esc") + descStyle.Render("Focus sidebar / quit") + "\n"
	helpText += keyStyle.Render("?") + descStyle.Render("Show this help") + "\n"
	helpText += keyStyle.Render("ctrl+c") + descStyle.Render("Quit") + "\n"

	helpText += sectionStyle.Render("Compose View") + "\n"
	helpText += keyStyle.Render("ctrl+s") + descStyle.Render("Analyze feedback") + "\n"
	helpText += keyStyle.Render("ctrl+r") + descStyle.Render("Start/stop recording") + "\n"
	helpText += keyStyle.Render("tab") + descStyle.Render("Switch field") + "\n"

	helpText += sectionStyle.Render("Results View") + "\n"
	helpText += keyStyle.Render("←/→") + descStyle.Render("Switch analysis") + "\n"
	helpText += keyStyle.Render("j/k") + descStyle.Render("Select keyword") + "\n"
	helpText += keyStyle.Render("x") + descStyle.Render("Clear highlight") + "\n"
	helpText += keyStyle.Render("i") + descStyle.Render("Model info") + "\n"

	helpText += sectionStyle.Render("Vocabulary View") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Add term") + "\n"
	helpText += keyStyle.Render("tab") + descStyle.Render("Edit term list") + "\n"
	helpText += keyStyle.Render("d") + descStyle.Render("Remove selected term") + "\n"
	helpText += keyStyle.Render("p") + descStyle.Render("Cycle presets") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	helpBox := boxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
