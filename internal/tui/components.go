// Package tui contains reusable TUI components
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nettracex/netlistx/internal/domain"
)

// FormField represents a single form field
type FormField struct {
	Key      string
	Label    string
	Input    textinput.Model
	HelpText string
}

// FormState reports whether the user confirmed or abandoned a form
type FormState int

const (
	FormEditing FormState = iota
	FormSubmitted
	FormCancelled
)

// FormModel provides a column of labelled text inputs. Enter submits and
// Esc cancels; the owner reads State after each update and decides what a
// submission means.
type FormModel struct {
	fields  []FormField
	focused int
	width   int
	height  int
	theme   domain.Theme
	title   string
	hint    string
	state   FormState
	keyMap  KeyMap
}

// NewFormModel creates a new form model
func NewFormModel(title string) *FormModel {
	return &FormModel{
		title:   title,
		focused: 0,
		keyMap:  DefaultKeyMap(),
		hint:    "tab: next field • enter: confirm • esc: cancel",
	}
}

// AddField adds a field to the form
func (m *FormModel) AddField(key, label, helpText string) {
	input := textinput.New()
	input.Placeholder = label
	input.CharLimit = 1024
	input.Width = 60

	field := FormField{
		Key:      key,
		Label:    label,
		Input:    input,
		HelpText: helpText,
	}

	// Focus the first field
	if len(m.fields) == 0 {
		field.Input.Focus()
	}

	m.fields = append(m.fields, field)
}

// SetHint replaces the key hint line
func (m *FormModel) SetHint(hint string) {
	m.hint = hint
}

// SetFieldValue sets the value of a field
func (m *FormModel) SetFieldValue(key, value string) {
	for i := range m.fields {
		if m.fields[i].Key == key {
			m.fields[i].Input.SetValue(value)
			m.fields[i].Input.CursorEnd()
			break
		}
	}
}

// GetFieldValue gets the value of a field
func (m *FormModel) GetFieldValue(key string) string {
	for _, field := range m.fields {
		if field.Key == key {
			return field.Input.Value()
		}
	}
	return ""
}

// FocusField moves focus to the field with the given key
func (m *FormModel) FocusField(key string) {
	for i := range m.fields {
		if m.fields[i].Key == key {
			m.setFocus(i)
			return
		}
	}
}

// State returns the form state after the last update
func (m *FormModel) State() FormState {
	return m.state
}

// Reopen returns a submitted or cancelled form to editing
func (m *FormModel) Reopen() {
	m.state = FormEditing
}

// Init implements tea.Model
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keyMap.NextField):
			m.setFocus(m.focused + 1)
			return m, nil

		case key.Matches(msg, m.keyMap.PrevField):
			m.setFocus(m.focused - 1)
			return m, nil

		case key.Matches(msg, m.keyMap.Enter):
			m.state = FormSubmitted
			return m, nil

		case key.Matches(msg, m.keyMap.Back):
			m.state = FormCancelled
			return m, nil
		}
	}

	// Update the focused field
	var cmd tea.Cmd
	if m.focused >= 0 && m.focused < len(m.fields) {
		m.fields[m.focused].Input, cmd = m.fields[m.focused].Input.Update(msg)
	}

	return m, cmd
}

// View implements tea.Model
func (m *FormModel) View() string {
	var content []string

	// Title
	if m.title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 0, 1, 0)
		content = append(content, titleStyle.Render(m.title))
	}

	for i, field := range m.fields {
		content = append(content, m.renderField(field, i == m.focused))
	}

	if m.hint != "" {
		content = append(content, StyleFor(m.theme, "muted").Render(m.hint))
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

// renderField renders a single form field
func (m *FormModel) renderField(field FormField, focused bool) string {
	var parts []string

	parts = append(parts, lipgloss.NewStyle().Bold(true).Render(field.Label))

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if m.width > 8 {
		inputStyle = inputStyle.Width(m.width - 4)
	}

	if focused {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("62"))
	} else {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("240"))
	}

	parts = append(parts, inputStyle.Render(field.Input.View()))

	if field.HelpText != "" {
		helpStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
		parts = append(parts, helpStyle.Render(field.HelpText))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// setFocus moves focus to field i, wrapping around
func (m *FormModel) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}

	// Blur current field
	if m.focused >= 0 && m.focused < len(m.fields) {
		m.fields[m.focused].Input.Blur()
	}

	n := len(m.fields)
	m.focused = ((i % n) + n) % n

	m.fields[m.focused].Input.Focus()
}

// SetSize implements domain.TUIComponent
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	for i := range m.fields {
		m.fields[i].Input.Width = max(width-10, 10)
	}
}

// SetTheme implements domain.TUIComponent
func (m *FormModel) SetTheme(theme domain.Theme) {
	m.theme = theme
}

// Focus implements domain.TUIComponent
func (m *FormModel) Focus() {
	if len(m.fields) > 0 && m.focused >= 0 && m.focused < len(m.fields) {
		m.fields[m.focused].Input.Focus()
	}
}

// Blur implements domain.TUIComponent
func (m *FormModel) Blur() {
	if len(m.fields) > 0 && m.focused >= 0 && m.focused < len(m.fields) {
		m.fields[m.focused].Input.Blur()
	}
}

// MessageBoxModel is a modal notice dismissed with enter, esc or space
type MessageBoxModel struct {
	title  string
	text   string
	kind   string
	width  int
	theme  domain.Theme
	closed bool
	keyMap KeyMap
}

// NewMessageBox creates a message box. kind is a theme element such as
// "error" or "info".
func NewMessageBox(title, text, kind string) *MessageBoxModel {
	return &MessageBoxModel{
		title:  title,
		text:   text,
		kind:   kind,
		keyMap: DefaultKeyMap(),
	}
}

// Closed reports whether the box was dismissed
func (m *MessageBoxModel) Closed() bool {
	return m.closed
}

// Init implements tea.Model
func (m *MessageBoxModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *MessageBoxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keyMap.Enter, m.keyMap.Back, m.keyMap.Toggle) {
			m.closed = true
		}
	}
	return m, nil
}

// View implements tea.Model
func (m *MessageBoxModel) View() string {
	box := StyleFor(m.theme, "message_box")
	if m.theme == nil {
		box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	}
	if m.width > 10 {
		box = box.MaxWidth(m.width - 2)
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.title))
		b.WriteString("\n\n")
	}
	b.WriteString(StyleFor(m.theme, m.kind).Render(m.text))
	b.WriteString("\n\n")
	b.WriteString(StyleFor(m.theme, "muted").Render("press enter to continue"))

	return box.Render(b.String())
}

// SetSize implements domain.TUIComponent
func (m *MessageBoxModel) SetSize(width, height int) {
	m.width = width
}

// SetTheme implements domain.TUIComponent
func (m *MessageBoxModel) SetTheme(theme domain.Theme) {
	m.theme = theme
}

// Focus implements domain.TUIComponent
func (m *MessageBoxModel) Focus() {}

// Blur implements domain.TUIComponent
func (m *MessageBoxModel) Blur() {}
