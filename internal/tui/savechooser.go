package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nettracex/netlistx/internal/dialog"
	"github.com/nettracex/netlistx/internal/domain"
)

const fieldPath = "path"

// SaveChooserModel asks for the netlist output path, prefilled with the
// default path of a dialog.SaveRequest
type SaveChooserModel struct {
	request dialog.SaveRequest
	form    *FormModel
}

// NewSaveChooserModel creates a save chooser for req
func NewSaveChooserModel(req dialog.SaveRequest) *SaveChooserModel {
	form := NewFormModel(req.Title)
	form.AddField(fieldPath, "File name", wildcardHint(req.Wildcard))
	form.SetFieldValue(fieldPath, req.DefaultPath())
	form.SetHint("enter: save • esc: cancel")

	return &SaveChooserModel{request: req, form: form}
}

// wildcardHint turns "KiCad netlist file (*.net)|*.net" into its description
func wildcardHint(wildcard string) string {
	desc, _, _ := strings.Cut(wildcard, "|")
	return desc
}

// Request returns the save request being completed
func (m *SaveChooserModel) Request() dialog.SaveRequest {
	return m.request
}

// Path returns the entered path, trimmed
func (m *SaveChooserModel) Path() string {
	return strings.TrimSpace(m.form.GetFieldValue(fieldPath))
}

// State reports whether a path was confirmed or the chooser was cancelled
func (m *SaveChooserModel) State() FormState {
	if m.form.State() == FormSubmitted && m.Path() == "" {
		return FormEditing
	}
	return m.form.State()
}

// Init implements tea.Model
func (m *SaveChooserModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *SaveChooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.form.Update(msg)
	if m.form.State() == FormSubmitted && m.Path() == "" {
		m.form.Reopen()
	}
	return m, cmd
}

// View implements tea.Model
func (m *SaveChooserModel) View() string {
	return m.form.View()
}

// SetSize implements domain.TUIComponent
func (m *SaveChooserModel) SetSize(width, height int) {
	m.form.SetSize(width, height)
}

// SetTheme implements domain.TUIComponent
func (m *SaveChooserModel) SetTheme(theme domain.Theme) {
	m.form.SetTheme(theme)
}

// Focus implements domain.TUIComponent
func (m *SaveChooserModel) Focus() {
	m.form.Focus()
}

// Blur implements domain.TUIComponent
func (m *SaveChooserModel) Blur() {
	m.form.Blur()
}
