package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/echolens/echolens/internal/vocab"
)

// VocabularyModel manages the term list scored against each submission.
// With the editable source the list can be changed and is persisted through
// the store; with the fixed source it is shown read-only.
type VocabularyModel struct {
	input textinput.Model

	set     *vocab.Set
	store   *vocab.Store
	presets vocab.Presets

	editable    bool
	focusList   bool
	selected    int
	presetIndex int

	status  string
	isError bool

	width  int
	height int
}

// NewVocabularyModel creates the vocabulary view. store may be nil, in which
// case changes live only for the session. editable false renders the list
// read-only.
func NewVocabularyModel(set *vocab.Set, store *vocab.Store, presets vocab.Presets, editable bool) VocabularyModel {
	ti := textinput.New()
	ti.Placeholder = "Add a new term..."
	ti.CharLimit = 60
	ti.Width = 40
	if editable {
		ti.Focus()
	}

	return VocabularyModel{
		input:       ti,
		set:         set,
		store:       store,
		presets:     presets,
		editable:    editable,
		selected:    -1,
		presetIndex: -1,
	}
}

// SetSize updates the view dimensions.
func (m *VocabularyModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CapturesInput reports whether keystrokes currently go to the term input.
func (m VocabularyModel) CapturesInput() bool {
	return m.editable && !m.focusList
}

// Update handles messages.
func (m VocabularyModel) Update(msg tea.Msg) (VocabularyModel, tea.Cmd) {
	if !m.editable {
		return m, nil
	}

	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.focusList {
		switch key.String() {
		case "tab", "a":
			m.focusList = false
			m.input.Focus()
			return m, nil
		case "left", "h", "up", "k":
			m.moveSelection(-1)
			return m, nil
		case "right", "l", "down", "j":
			m.moveSelection(1)
			return m, nil
		case "d", "backspace":
			m.removeSelected()
			return m, nil
		case "p":
			m.cyclePreset()
			return m, nil
		}
		return m, nil
	}

	switch key.String() {
	case "tab":
		if m.set.Len() > 0 {
			m.focusList = true
			m.input.Blur()
			if m.selected < 0 {
				m.selected = 0
			}
		}
		return m, nil
	case "enter":
		m.addTerm()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *VocabularyModel) addTerm() {
	term := strings.TrimSpace(m.input.Value())
	if term == "" {
		return
	}

	if !m.set.Add(term) {
		m.setError("This term already exists in your vocabulary.")
		return
	}

	m.input.Reset()
	m.setStatus(fmt.Sprintf("Added %q.", term))
	m.persist()
}

func (m *VocabularyModel) removeSelected() {
	terms := m.set.Terms()
	if m.selected < 0 || m.selected >= len(terms) {
		return
	}

	term := terms[m.selected]
	m.set.Remove(term)
	if m.selected >= m.set.Len() {
		m.selected = m.set.Len() - 1
	}
	if m.set.Len() == 0 {
		m.focusList = false
		m.input.Focus()
	}

	m.setStatus(fmt.Sprintf("Removed %q.", term))
	m.persist()
}

func (m *VocabularyModel) cyclePreset() {
	names := m.presets.Names()
	if len(names) == 0 {
		return
	}

	m.presetIndex = (m.presetIndex + 1) % len(names)
	name := names[m.presetIndex]
	m.set.LoadPreset(m.presets, name)

	if m.selected >= m.set.Len() {
		m.selected = m.set.Len() - 1
	}

	m.setStatus(fmt.Sprintf("Loaded the %q preset (%d terms).", name, m.set.Len()))
	m.persist()
}

func (m *VocabularyModel) moveSelection(delta int) {
	n := m.set.Len()
	if n == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = n - 1
	}
	if m.selected >= n {
		m.selected = 0
	}
}

// persist writes the current term list through the store. A write failure is
// surfaced but the in-memory set keeps the change.
func (m *VocabularyModel) persist() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.set.Terms()); err != nil {
		m.setError("Could not save vocabulary: " + err.Error())
	}
}

func (m *VocabularyModel) setStatus(text string) {
	m.status = text
	m.isError = false
}

func (m *VocabularyModel) setError(text string) {
	m.status = text
	m.isError = true
}

// View renders the vocabulary view.
func (m VocabularyModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vocabulary"))
	b.WriteString("\n\n")

	if !m.editable {
		b.WriteString(helpStyle.Render("The vocabulary is fixed for this session."))
		b.WriteString("\n\n")
		b.WriteString(m.renderTerms())
		return b.String()
	}

	b.WriteString(labelStyle.Render("New term: "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.set.Len() == 0 {
		b.WriteString(helpStyle.Render("No terms yet. Add one above or press tab, then p for a preset."))
	} else {
		b.WriteString(m.renderTerms())
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		style := successStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.focusList {
		b.WriteString(helpStyle.Render("←/→: select • d: remove • p: cycle presets • tab: back to input"))
	} else {
		b.WriteString(helpStyle.Render("enter: add term • tab: edit list"))
	}

	return b.String()
}

func (m VocabularyModel) renderTerms() string {
	terms := m.set.Terms()
	if len(terms) == 0 {
		return helpStyle.Render("(empty)")
	}

	width := m.width - 10
	if width < 40 {
		width = 40
	}

	var rows []string
	var row []string
	rowWidth := 0
	for i, term := range terms {
		pillWidth := len(term) + 3
		if rowWidth+pillWidth > width && len(row) > 0 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
			rowWidth = 0
		}

		if m.focusList && i == m.selected {
			row = append(row, pillSelectedStyle.Render(term))
		} else {
			row = append(row, pillStyle.Render(term))
		}
		rowWidth += pillWidth
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}

	return boxStyle.Render(strings.Join(rows, "\n"))
}
