// Package views provides the individual views for the echolens TUI.
package views

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/echolens/echolens/internal/analysis"
	"github.com/echolens/echolens/internal/capture"
)

// Shared view styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	recordingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff3b30")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(1, 2)
)

// AnalysisDoneMsg is sent when the analysis service accepts a submission.
// The root model appends it to the session and shows the results view.
type AnalysisDoneMsg struct {
	Label  string
	Text   string
	Result analysis.Result
}

type analysisErrorMsg struct {
	err error
}

type captureEventMsg struct {
	event  capture.Event
	events <-chan capture.Event
	ok     bool
}

type recordingTickMsg struct{}

func recordingTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return recordingTickMsg{}
	})
}

// ComposeModel is the feedback entry view: a free-text area, an optional
// note label, and the record/analyze controls.
type ComposeModel struct {
	text textarea.Model
	note textinput.Model
	spin spinner.Model

	client     *analysis.Client
	vocabulary func() []string
	recorder   *capture.Recorder

	focusNote bool
	analyzing bool
	recording bool
	dots      int

	status  string
	isError bool

	width  int
	height int
}

// NewComposeModel creates the compose view. vocabulary is called at submit
// time so the current term list accompanies every request.
func NewComposeModel(client *analysis.Client, vocabulary func() []string, recorder *capture.Recorder) ComposeModel {
	ta := textarea.New()
	ta.Placeholder = "Speak or type your feedback..."
	ta.SetWidth(60)
	ta.SetHeight(6)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "Note (label for this analysis, optional)"
	ti.CharLimit = 60
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	m := ComposeModel{
		text:       ta,
		note:       ti,
		spin:       sp,
		client:     client,
		vocabulary: vocabulary,
		recorder:   recorder,
	}

	// Missing capture capability is reported once, at startup.
	if !recorder.Available() {
		m.status = "Speech capture is not available; type your feedback instead."
	}

	return m
}

// SetSize updates the view dimensions.
func (m *ComposeModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	textWidth := width - 6
	if textWidth > 76 {
		textWidth = 76
	}
	if textWidth > 10 {
		m.text.SetWidth(textWidth)
	}
}

// Analyzing reports whether a submission is in flight.
func (m ComposeModel) Analyzing() bool {
	return m.analyzing
}

// CapturesInput reports whether keystrokes go to the text fields. The compose
// view always has a focused field.
func (m ComposeModel) CapturesInput() bool {
	return true
}

// Update handles messages.
func (m ComposeModel) Update(msg tea.Msg) (ComposeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.focusNote = !m.focusNote
			if m.focusNote {
				m.text.Blur()
				m.note.Focus()
			} else {
				m.note.Blur()
				m.text.Focus()
			}
			return m, nil
		case "ctrl+s":
			return m.submit()
		case "ctrl+r":
			return m.toggleRecording()
		}

	case spinner.TickMsg:
		if m.analyzing {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case recordingTickMsg:
		if m.recording {
			m.dots = (m.dots + 1) % 4
			return m, recordingTick()
		}
		return m, nil

	case AnalysisDoneMsg:
		m.analyzing = false
		m.text.Reset()
		m.note.Reset()
		m.status = "Analysis complete — see the Results view."
		m.isError = false
		return m, nil

	case analysisErrorMsg:
		m.analyzing = false
		m.setError(errorText(msg.err))
		return m, nil

	case captureEventMsg:
		return m.handleCaptureEvent(msg)
	}

	var cmd tea.Cmd
	if m.focusNote {
		m.note, cmd = m.note.Update(msg)
	} else {
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

// submit sends the current text for analysis. Submission is non-reentrant:
// while a request is in flight further submits are ignored.
func (m ComposeModel) submit() (ComposeModel, tea.Cmd) {
	if m.analyzing {
		return m, nil
	}

	text := m.text.Value()
	if strings.TrimSpace(text) == "" {
		m.setError("Please enter or record text to analyze.")
		return m, nil
	}

	m.analyzing = true
	m.status = ""
	m.isError = false

	label := strings.TrimSpace(m.note.Value())
	terms := m.vocabulary()
	client := m.client

	analyzeCmd := func() tea.Msg {
		result, err := client.Analyze(context.Background(), text, terms)
		if err != nil {
			return analysisErrorMsg{err: err}
		}
		return AnalysisDoneMsg{Label: label, Text: text, Result: result}
	}

	return m, tea.Batch(m.spin.Tick, analyzeCmd)
}

func (m ComposeModel) toggleRecording() (ComposeModel, tea.Cmd) {
	events, err := m.recorder.Toggle()
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}
	if events == nil {
		// Stop requested; the running attempt delivers the closing events.
		return m, nil
	}
	return m, readCapture(events)
}

func readCapture(events <-chan capture.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return captureEventMsg{event: ev, events: events, ok: ok}
	}
}

func (m ComposeModel) handleCaptureEvent(msg captureEventMsg) (ComposeModel, tea.Cmd) {
	if !msg.ok {
		m.recording = false
		return m, nil
	}

	var cmds []tea.Cmd
	switch msg.event.Kind {
	case capture.CaptureStarted:
		m.recording = true
		m.dots = 1
		m.status = ""
		m.isError = false
		cmds = append(cmds, recordingTick())

	case capture.TranscriptReady:
		m.text.SetValue(msg.event.Text)

	case capture.CaptureFailed:
		if text := msg.event.Reason.Message(); text != "" {
			m.setError(text)
		}

	case capture.CaptureEnded:
		m.recording = false
	}

	cmds = append(cmds, readCapture(msg.events))
	return m, tea.Batch(cmds...)
}

func (m *ComposeModel) setError(text string) {
	m.status = text
	m.isError = true
}

func errorText(err error) string {
	var svcErr *analysis.ServiceError
	if errors.As(err, &svcErr) {
		return "Error: " + svcErr.Message
	}
	return err.Error()
}

// View renders the compose view.
func (m ComposeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Compose Feedback"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Note: "))
	b.WriteString(m.note.View())
	b.WriteString("\n\n")

	b.WriteString(m.text.View())
	b.WriteString("\n\n")

	switch {
	case m.recording:
		b.WriteString(recordingStyle.Render("● Recording in progress" + strings.Repeat(".", m.dots)))
		b.WriteString("\n")
	case m.analyzing:
		b.WriteString(m.spin.View())
		b.WriteString(loadingStyle.Render("Analyzing..."))
		b.WriteString("\n")
	case m.status != "":
		style := successStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := []string{"ctrl+s: analyze", "tab: switch field"}
	if m.recorder.Available() {
		help = append(help, "ctrl+r: record/stop")
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return b.String()
}
