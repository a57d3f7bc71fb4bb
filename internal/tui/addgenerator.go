package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nettracex/netlistx/internal/dialog"
	"github.com/nettracex/netlistx/internal/domain"
)

const (
	fieldTitle   = "title"
	fieldCommand = "command"
)

// AddGeneratorModel collects the title and command of a new generator. A
// confirmation with a blank field shows a message and keeps the sub-dialog
// open; Done reports true only once the input is valid or the user gave up.
type AddGeneratorModel struct {
	form     *FormModel
	picker   filepicker.Model
	browsing bool
	message  *MessageBoxModel

	width  int
	height int
	theme  domain.Theme
	keyMap KeyMap

	done      bool
	confirmed bool
}

// NewAddGeneratorModel creates the sub-dialog. browseDir is where the file
// browser starts.
func NewAddGeneratorModel(browseDir string) *AddGeneratorModel {
	form := NewFormModel("Add a Plugin")
	form.AddField(fieldTitle, "Title", "Shown as the page name")
	form.AddField(fieldCommand, "Netlist command", `%I is the intermediate netlist, %O the output file without extension`)
	form.SetHint("tab: next field • ctrl+o: browse • enter: ok • esc: cancel")

	picker := filepicker.New()
	picker.CurrentDirectory = browseDir
	picker.DirAllowed = false
	picker.FileAllowed = true
	picker.ShowHidden = false
	picker.AutoHeight = false
	picker.Height = 12

	return &AddGeneratorModel{
		form:   form,
		picker: picker,
		keyMap: DefaultKeyMap(),
	}
}

// Title returns the entered title, trimmed
func (m *AddGeneratorModel) Title() string {
	return strings.TrimSpace(m.form.GetFieldValue(fieldTitle))
}

// Command returns the entered command, trimmed
func (m *AddGeneratorModel) Command() string {
	return strings.TrimSpace(m.form.GetFieldValue(fieldCommand))
}

// Done reports whether the sub-dialog has closed
func (m *AddGeneratorModel) Done() bool {
	return m.done
}

// Confirmed reports whether it closed with valid input
func (m *AddGeneratorModel) Confirmed() bool {
	return m.confirmed
}

// Message returns the open message box, if any
func (m *AddGeneratorModel) Message() *MessageBoxModel {
	return m.message
}

// Browsing reports whether the file browser is shown
func (m *AddGeneratorModel) Browsing() bool {
	return m.browsing
}

// UseFile fills the command with the template for the picked file. When no
// title was entered yet the user is reminded to choose one.
func (m *AddGeneratorModel) UseFile(path string) {
	m.browsing = false
	m.form.SetFieldValue(fieldCommand, dialog.CommandTemplateFor(path))
	if m.Title() == "" {
		m.form.FocusField(fieldTitle)
		m.showMessage(dialog.MsgChooseTitle, "info")
	}
}

func (m *AddGeneratorModel) showMessage(text, kind string) {
	m.message = NewMessageBox("Add a Plugin", text, kind)
	m.message.SetSize(m.width, m.height)
	m.message.SetTheme(m.theme)
}

// Init implements tea.Model
func (m *AddGeneratorModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *AddGeneratorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.message != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.message.Update(msg)
			if m.message.Closed() {
				m.message = nil
			}
			return m, nil
		}
	}

	if m.browsing {
		return m.updateBrowser(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keyMap.Browse) {
		m.browsing = true
		return m, m.picker.Init()
	}

	_, cmd := m.form.Update(msg)

	switch m.form.State() {
	case FormSubmitted:
		m.form.Reopen()
		if err := dialog.ValidateGenerator(m.Title(), m.Command()); err != nil {
			m.showMessage(dialog.Message(err), "error")
			return m, nil
		}
		m.done = true
		m.confirmed = true
	case FormCancelled:
		m.done = true
	}

	return m, cmd
}

func (m *AddGeneratorModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keyMap.Back) {
		m.browsing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.UseFile(path)
	}

	return m, cmd
}

// View implements tea.Model
func (m *AddGeneratorModel) View() string {
	if m.message != nil {
		return m.message.View()
	}

	if m.browsing {
		header := lipgloss.NewStyle().Bold(true).Render("Plugin files: " + m.picker.CurrentDirectory)
		hint := StyleFor(m.theme, "muted").Render("enter: select • ←/→: directory • esc: back")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", m.picker.View(), "", hint)
	}

	return m.form.View()
}

// SetSize implements domain.TUIComponent
func (m *AddGeneratorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form.SetSize(width, height)
	m.picker.Height = max(height-8, 3)
	if m.message != nil {
		m.message.SetSize(width, height)
	}
}

// SetTheme implements domain.TUIComponent
func (m *AddGeneratorModel) SetTheme(theme domain.Theme) {
	m.theme = theme
	m.form.SetTheme(theme)
}

// Focus implements domain.TUIComponent
func (m *AddGeneratorModel) Focus() {
	m.form.Focus()
}

// Blur implements domain.TUIComponent
func (m *AddGeneratorModel) Blur() {
	m.form.Blur()
}
