// Package tui implements the terminal editor for extraction requests: a
// form view and a raw JSON view over one shared value, plus one-shot
// submission to a running extractor server.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwootten/extractor/internal/editor"
)

type tab int

const (
	tabForm tab = iota
	tabJSON
	tabResult
)

var tabNames = []string{"Form", "JSON", "Result"}

// formField indexes the focusable widgets on the form tab.
type formField int

const (
	fieldPrompt formField = iota
	fieldModel
	fieldText

	numFormFields
)

// Styles holds the lipgloss styles used by the editor.
type Styles struct {
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Label       lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Muted       lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Label:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// submitDoneMsg is emitted when a submission settles.
type submitDoneMsg struct {
	started bool
}

// Model is the bubbletea model for the request editor.
type Model struct {
	session *editor.Session
	styles  Styles
	hints   map[string]string

	tab   tab
	focus formField

	prompt   textinput.Model
	modelID  textinput.Model
	textArea textarea.Model

	jsonArea textarea.Model

	resultView viewport.Model
	spin       spinner.Model

	submitting bool
	width      int
	height     int
}

// New creates the editor model for a loaded session.
func New(session *editor.Session) Model {
	styles := DefaultStyles()

	prompt := textinput.New()
	prompt.Placeholder = "What to extract and how"
	prompt.Focus()

	modelID := textinput.New()
	modelID.Placeholder = "gemini-2.5-flash"

	text := textarea.New()
	text.Placeholder = "Text to extract from"
	text.SetHeight(6)

	jsonArea := textarea.New()
	jsonArea.SetHeight(16)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		session:    session,
		styles:     styles,
		hints:      schemaHints(session.Schema()),
		prompt:     prompt,
		modelID:    modelID,
		textArea:   text,
		jsonArea:   jsonArea,
		resultView: viewport.New(80, 16),
		spin:       spin,
	}
	m.syncFromStore()
	return m
}

// syncFromStore refreshes all widgets from the store's current state.
func (m *Model) syncFromStore() {
	value := m.session.Store().Value()
	m.prompt.SetValue(value.PromptDescription)
	m.modelID.SetValue(value.ModelID)
	m.textArea.SetValue(value.TextOrDocuments)
	m.jsonArea.SetValue(m.session.Store().Text())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = msg.Width - 4
		m.modelID.Width = msg.Width - 4
		m.textArea.SetWidth(msg.Width - 4)
		m.jsonArea.SetWidth(msg.Width - 4)
		m.resultView.Width = msg.Width - 4
		m.resultView.Height = msg.Height - 6
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.tab = (m.tab + 1) % 3
			if m.tab == tabJSON {
				m.jsonArea.SetValue(m.session.Store().Text())
				m.jsonArea.Focus()
			}
			if m.tab == tabResult {
				m.resultView.SetContent(m.renderResult())
			}
			return m, nil
		case "ctrl+d":
			m.session.LoadDemo()
			m.syncFromStore()
			return m, nil
		case "ctrl+s":
			return m.startSubmit()
		}

	case submitDoneMsg:
		m.submitting = false
		m.tab = tabResult
		m.resultView.SetContent(m.renderResult())
		return m, nil

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m.updateActiveTab(msg)
}

// startSubmit kicks off a submission unless one is already in flight. The
// controller re-checks the guard, so racing keypresses cannot start a
// second call.
func (m Model) startSubmit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true

	session := m.session
	submit := func() tea.Msg {
		started := session.Controller().Submit(context.Background())
		return submitDoneMsg{started: started}
	}
	return m, tea.Batch(submit, m.spin.Tick)
}

// updateActiveTab routes input to the focused widget and pushes edits into
// the store.
func (m Model) updateActiveTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.tab {
	case tabForm:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "tab", "shift+tab":
				if key.String() == "tab" {
					m.focus = (m.focus + 1) % numFormFields
				} else {
					m.focus = (m.focus + numFormFields - 1) % numFormFields
				}
				m.prompt.Blur()
				m.modelID.Blur()
				m.textArea.Blur()
				switch m.focus {
				case fieldPrompt:
					m.prompt.Focus()
				case fieldModel:
					m.modelID.Focus()
				case fieldText:
					m.textArea.Focus()
				}
				return m, nil
			}
		}

		switch m.focus {
		case fieldPrompt:
			m.prompt, cmd = m.prompt.Update(msg)
		case fieldModel:
			m.modelID, cmd = m.modelID.Update(msg)
		case fieldText:
			m.textArea, cmd = m.textArea.Update(msg)
		}
		m.pushFormEdits()
		return m, cmd

	case tabJSON:
		before := m.jsonArea.Value()
		m.jsonArea, cmd = m.jsonArea.Update(msg)
		if after := m.jsonArea.Value(); after != before {
			m.session.Store().UpdateFromText(after)
		}
		return m, cmd

	case tabResult:
		m.resultView, cmd = m.resultView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// pushFormEdits rebuilds the logical value from the form widgets. Examples
// are preserved; they are edited through the JSON view.
func (m *Model) pushFormEdits() {
	value := m.session.Store().Value()
	value.PromptDescription = m.prompt.Value()
	value.ModelID = m.modelID.Value()
	value.TextOrDocuments = m.textArea.Value()
	m.session.Store().UpdateFromForm(value)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabForm:
		b.WriteString(m.fieldLabel("Prompt description", "prompt_description"))
		b.WriteString(m.prompt.View() + "\n\n")
		b.WriteString(m.fieldLabel("Model", "model_id"))
		b.WriteString(m.modelID.View() + "\n\n")
		b.WriteString(m.fieldLabel("Text or documents", "text_or_documents"))
		b.WriteString(m.textArea.View() + "\n")
		b.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("\n%d example(s) — edit examples in the JSON view\n", len(m.session.Store().Value().Examples)),
		))

	case tabJSON:
		b.WriteString(m.jsonArea.View())
		b.WriteString("\n")
		if errMsg := m.session.Store().ValidationError(); errMsg != "" {
			b.WriteString(m.styles.Error.Render(errMsg) + "\n")
		}

	case tabResult:
		if m.submitting {
			b.WriteString(m.spin.View() + " extracting...\n")
		} else {
			b.WriteString(m.resultView.View() + "\n")
		}
	}

	b.WriteString("\n" + m.renderFooter())
	return b.String()
}

// fieldLabel renders a form label, with the server's schema description for
// the field underneath when one was published.
func (m Model) fieldLabel(title, field string) string {
	out := m.styles.Label.Render(title) + "\n"
	if hint := m.hints[field]; hint != "" {
		out += m.styles.Muted.Render(hint) + "\n"
	}
	return out
}

// schemaHints pulls per-field descriptions out of the request schema so the
// form describes fields the way the server does.
func schemaHints(schema json.RawMessage) map[string]string {
	var doc struct {
		Properties map[string]struct {
			Description string `json:"description"`
		} `json:"properties"`
	}
	hints := make(map[string]string)
	if err := json.Unmarshal(schema, &doc); err != nil {
		return hints
	}
	for name, p := range doc.Properties {
		if p.Description != "" {
			hints[name] = p.Description
		}
	}
	return hints
}

func (m Model) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts[i] = m.styles.TabActive.Render(name)
		} else {
			parts[i] = m.styles.TabInactive.Render(name)
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	status := ""
	if m.submitting {
		status = m.spin.View() + " submitting  "
	}
	return status + m.styles.Muted.Render(
		"ctrl+t: switch view • ctrl+d: demo data • ctrl+s: submit • ctrl+c: quit",
	)
}

// renderResult formats the last submission outcome.
func (m Model) renderResult() string {
	ctrl := m.session.Controller()
	switch ctrl.State() {
	case editor.StateSucceeded:
		result := ctrl.Result()
		header := m.styles.Success.Render("Extraction succeeded")
		if result.Message != "" {
			header += "\n" + m.styles.Muted.Render(result.Message)
		}
		var doc any
		if err := json.Unmarshal(result.Result, &doc); err != nil {
			return header + "\n\n" + string(result.Result)
		}
		pretty, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return header + "\n\n" + string(result.Result)
		}
		return header + "\n\n" + string(pretty)

	case editor.StateFailed:
		return m.styles.Error.Render("Extraction failed") + "\n\n" + ctrl.ErrorMessage()

	default:
		return m.styles.Muted.Render("No submission yet. Press ctrl+s to submit.")
	}
}

// Run starts the editor program and blocks until it exits.
func Run(session *editor.Session) error {
	p := tea.NewProgram(New(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
