package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/nettracex/netlistx/internal/dialog"
	"github.com/nettracex/netlistx/internal/domain"
	"github.com/nettracex/netlistx/internal/logging"
)

// DialogMode is the part of the dialog that receives input
type DialogMode int

const (
	ModePages DialogMode = iota
	ModeAddGenerator
	ModeSaveChooser
	ModeMessage
	ModeHelp
)

// control is one focusable element of the page area
type control int

const (
	ctlDefault control = iota
	ctlTitle
	ctlCommand
	ctlAdjust
	ctlNetname
	ctlSimulate
	btnGenerate
	btnAdd
	btnRemove
	btnCancel
)

var controlLabels = map[control]string{
	ctlSimulate: "Run Simulator",
	btnGenerate: "Generate",
	btnAdd:      "Add Generator",
	btnRemove:   "Remove Generator",
	btnCancel:   "Cancel",
}

func (c control) zoneID() string {
	return fmt.Sprintf("control-%d", c)
}

func tabZoneID(i int) string {
	return fmt.Sprintf("tab-%d", i)
}

// pageInputs holds the editable text of one page
type pageInputs struct {
	title   textinput.Model
	command textinput.Model
}

// DialogOptions configures a DialogModel
type DialogOptions struct {
	Theme  domain.Theme
	Logger domain.Logger
	// BrowseDir is where the generator file browser starts
	BrowseDir string
	// Mouse enables clickable tabs and buttons
	Mouse bool
}

// DialogModel is the netlist dialog: one tab per dialog.Page, the page
// controls and the dialog buttons. It ends with a domain.DialogResult.
type DialogModel struct {
	shell  *dialog.Shell
	logger domain.Logger
	theme  domain.Theme
	keyMap KeyMap
	zones  *zone.Manager
	layout *ResponsiveLayout

	inputs []pageInputs
	focus  int

	mode              DialogMode
	adder             *AddGeneratorModel
	chooser           *SaveChooserModel
	message           *MessageBoxModel
	help              *HelpModel
	closeAfterMessage bool

	browseDir string
	width     int
	height    int

	result domain.DialogResult
	done   bool
}

// NewDialogModel creates the dialog for shell
func NewDialogModel(shell *dialog.Shell, opts DialogOptions) *DialogModel {
	theme := opts.Theme
	if theme == nil {
		theme = NewDefaultTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	m := &DialogModel{
		shell:     shell,
		logger:    logger,
		theme:     theme,
		keyMap:    DefaultKeyMap(),
		zones:     zone.New(),
		layout:    NewResponsiveLayout(),
		help:      NewHelpModel(),
		browseDir: opts.BrowseDir,
		result:    domain.ResultCancel,
	}

	for _, page := range shell.Pages() {
		m.inputs = append(m.inputs, newPageInputs(page))
	}

	m.help.SetTheme(theme)
	return m
}

func newPageInputs(page *dialog.Page) pageInputs {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 256
	title.SetValue(page.Title)

	command := textinput.New()
	command.Placeholder = "Command line"
	command.CharLimit = 1024
	command.SetValue(page.Command)

	return pageInputs{title: title, command: command}
}

// Result returns the result the dialog ended with
func (m *DialogModel) Result() domain.DialogResult {
	return m.result
}

// Done reports whether the dialog has ended
func (m *DialogModel) Done() bool {
	return m.done
}

// Mode returns the part of the dialog receiving input
func (m *DialogModel) Mode() DialogMode {
	return m.mode
}

// Close releases the mouse zone tracker
func (m *DialogModel) Close() {
	m.zones.Close()
}

// Init implements tea.Model
func (m *DialogModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *DialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Quit) {
			return m.finish(domain.ResultCancel)
		}

	case tea.MouseMsg:
		if m.mode == ModePages {
			return m.handleMouse(msg)
		}
		return m, nil
	}

	switch m.mode {
	case ModeAddGenerator:
		return m.updateAdder(msg)
	case ModeSaveChooser:
		return m.updateChooser(msg)
	case ModeMessage:
		return m.updateMessage(msg)
	case ModeHelp:
		return m.updateHelp(msg)
	}

	return m.updatePages(msg)
}

func (m *DialogModel) updatePages(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocusedInput(msg)
	}

	focused := m.focusedControl()

	switch {
	case key.Matches(keyMsg, m.keyMap.NextTab):
		m.switchPage(m.shell.Active() + 1)
	case key.Matches(keyMsg, m.keyMap.PrevTab):
		m.switchPage(m.shell.Active() - 1)
	case key.Matches(keyMsg, m.keyMap.NextField):
		m.setFocus(m.focus + 1)
	case key.Matches(keyMsg, m.keyMap.PrevField):
		m.setFocus(m.focus - 1)
	case key.Matches(keyMsg, m.keyMap.Generate):
		return m.startGenerate()
	case key.Matches(keyMsg, m.keyMap.Add):
		return m.openAdder()
	case key.Matches(keyMsg, m.keyMap.Remove):
		return m.removeGenerator()
	case key.Matches(keyMsg, m.keyMap.Simulate):
		if m.shell.ActivePage().Format == domain.SpiceFormat {
			return m.runSimulator()
		}
	case key.Matches(keyMsg, m.keyMap.Help):
		m.openHelp()
	case key.Matches(keyMsg, m.keyMap.Back):
		return m.finish(domain.ResultCancel)
	case key.Matches(keyMsg, m.keyMap.Enter):
		if isInput(focused) {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.activate(focused)
	case key.Matches(keyMsg, m.keyMap.Toggle) && !isInput(focused):
		return m.activate(focused)
	default:
		return m, m.updateFocusedInput(msg)
	}

	return m, nil
}

func isInput(c control) bool {
	return c == ctlTitle || c == ctlCommand
}

// controls lists the focusable elements of the active page in focus order
func (m *DialogModel) controls() []control {
	page := m.shell.ActivePage()
	controls := []control{ctlDefault}

	switch {
	case page.Format == domain.SpiceFormat:
		controls = append(controls, ctlCommand, ctlAdjust, ctlNetname, ctlSimulate)
	case page.Format.IsCustom():
		controls = append(controls, ctlTitle, ctlCommand)
	}

	controls = append(controls, btnGenerate, btnAdd)
	if page.Format.IsCustom() {
		controls = append(controls, btnRemove)
	}
	return append(controls, btnCancel)
}

func (m *DialogModel) focusedControl() control {
	controls := m.controls()
	if m.focus < 0 || m.focus >= len(controls) {
		return ctlDefault
	}
	return controls[m.focus]
}

// setFocus moves focus to control i, wrapping around
func (m *DialogModel) setFocus(i int) {
	controls := m.controls()
	n := len(controls)
	m.focus = ((i % n) + n) % n

	in := &m.inputs[m.shell.Active()]
	in.title.Blur()
	in.command.Blur()

	switch controls[m.focus] {
	case ctlTitle:
		in.title.Focus()
	case ctlCommand:
		in.command.Focus()
	}
}

func (m *DialogModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	in := &m.inputs[m.shell.Active()]
	var cmd tea.Cmd

	switch m.focusedControl() {
	case ctlTitle:
		in.title, cmd = in.title.Update(msg)
	case ctlCommand:
		in.command, cmd = in.command.Update(msg)
	}
	return cmd
}

// commitInputs copies the edited text back to the pages
func (m *DialogModel) commitInputs() {
	for i, page := range m.shell.Pages() {
		in := m.inputs[i]
		switch {
		case page.Format.IsCustom():
			page.Title = strings.TrimSpace(in.title.Value())
			page.Command = in.command.Value()
		case page.Format == domain.SpiceFormat:
			page.Command = in.command.Value()
		}
	}
}

func (m *DialogModel) switchPage(i int) {
	m.commitInputs()

	n := len(m.shell.Pages())
	i = ((i % n) + n) % n
	if err := m.shell.SetActive(i); err != nil {
		m.logger.Error("Failed to switch page", "page", i, "error", err)
		return
	}
	m.setFocus(0)
}

// activate presses a button or toggles a checkbox
func (m *DialogModel) activate(c control) (tea.Model, tea.Cmd) {
	page := m.shell.ActivePage()

	switch c {
	case ctlDefault:
		if !page.IsDefault {
			if err := m.shell.SelectDefault(m.shell.Active()); err != nil {
				m.logger.Error("Failed to select default format", "error", err)
			}
		}
	case ctlAdjust:
		page.AdjustPassiveValues = !page.AdjustPassiveValues
	case ctlNetname:
		m.shell.SetUseDefaultNetname(!m.shell.UseDefaultNetname())
	case ctlSimulate:
		return m.runSimulator()
	case btnGenerate:
		return m.startGenerate()
	case btnAdd:
		return m.openAdder()
	case btnRemove:
		return m.removeGenerator()
	case btnCancel:
		return m.finish(domain.ResultCancel)
	}
	return m, nil
}

func (m *DialogModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for i := range m.shell.Pages() {
		if m.zones.Get(tabZoneID(i)).InBounds(msg) {
			m.switchPage(i)
			return m, nil
		}
	}

	for i, c := range m.controls() {
		if m.zones.Get(c.zoneID()).InBounds(msg) {
			m.setFocus(i)
			if isInput(c) {
				return m, nil
			}
			return m.activate(c)
		}
	}

	return m, nil
}

func (m *DialogModel) startGenerate() (tea.Model, tea.Cmd) {
	m.commitInputs()

	m.chooser = NewSaveChooserModel(m.shell.PrepareGenerate())
	m.chooser.SetSize(m.layout.GetFormWidth(), m.height)
	m.chooser.SetTheme(m.theme)
	m.mode = ModeSaveChooser
	return m, m.chooser.Init()
}

func (m *DialogModel) updateChooser(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.chooser.Update(msg)

	switch m.chooser.State() {
	case FormCancelled:
		req := m.chooser.Request()
		m.chooser = nil
		m.mode = ModePages
		if _, err := m.shell.CompleteGenerate(req, ""); err != nil {
			m.showMessage(fmt.Sprintf("Failed to save settings: %v", err), "error", false)
		}
		return m, nil

	case FormSubmitted:
		req, path := m.chooser.Request(), m.chooser.Path()
		m.chooser = nil
		m.mode = ModePages

		outcome, err := m.shell.CompleteGenerate(req, path)
		m.result = outcome.Result
		switch {
		case err != nil:
			m.showMessage(fmt.Sprintf("Failed to save settings: %v", err), "error", outcome.Closed)
			return m, nil
		case outcome.Notice != "":
			m.showMessage(outcome.Notice, "warning", outcome.Closed)
			return m, nil
		}
		m.logger.Info("Netlist written", "path", outcome.Path)
		return m.finish(outcome.Result)
	}

	return m, cmd
}

func (m *DialogModel) openAdder() (tea.Model, tea.Cmd) {
	m.commitInputs()

	m.adder = NewAddGeneratorModel(m.browseDir)
	m.adder.SetSize(m.layout.GetFormWidth(), m.height)
	m.adder.SetTheme(m.theme)
	m.mode = ModeAddGenerator
	return m, m.adder.Init()
}

func (m *DialogModel) updateAdder(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.adder.Update(msg)
	if !m.adder.Done() {
		return m, cmd
	}

	adder := m.adder
	m.adder = nil
	m.mode = ModePages

	if !adder.Confirmed() {
		return m, nil
	}

	result, err := m.shell.AddCustomTarget(adder.Title(), adder.Command())
	if err != nil {
		m.showMessage(dialog.Message(err), "error", false)
		return m, nil
	}
	return m.finish(result)
}

func (m *DialogModel) removeGenerator() (tea.Model, tea.Cmd) {
	m.commitInputs()

	result, err := m.shell.RemoveCustomTarget()
	if err != nil {
		m.showMessage(dialog.Message(err), "error", false)
		return m, nil
	}
	return m.finish(result)
}

func (m *DialogModel) runSimulator() (tea.Model, tea.Cmd) {
	m.commitInputs()

	if err := m.shell.RunSimulator(); err != nil {
		m.showMessage(fmt.Sprintf("Failed to start simulator: %v", err), "error", false)
		return m, nil
	}
	for i, page := range m.shell.Pages() {
		if page.Format == domain.SpiceFormat {
			m.inputs[i].command.SetValue(page.Command)
		}
	}
	return m, nil
}

// showMessage opens a message box. With closeAfter the dialog ends with the
// current result once it is dismissed.
func (m *DialogModel) showMessage(text, kind string, closeAfter bool) {
	m.message = NewMessageBox("Netlist", text, kind)
	m.message.SetSize(m.layout.GetFormWidth(), m.height)
	m.message.SetTheme(m.theme)
	m.closeAfterMessage = closeAfter
	m.mode = ModeMessage
}

func (m *DialogModel) updateMessage(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.message.Update(msg)
	if !m.message.Closed() {
		return m, nil
	}

	m.message = nil
	m.mode = ModePages
	if m.closeAfterMessage {
		return m.finish(m.result)
	}
	return m, nil
}

func (m *DialogModel) openHelp() {
	m.help.Reset()
	m.help.SetSize(m.width, max(m.height-2, 1))
	m.mode = ModeHelp
}

func (m *DialogModel) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.help.Update(msg)
	if m.help.Closed() {
		m.mode = ModePages
	}
	return m, cmd
}

func (m *DialogModel) finish(result domain.DialogResult) (tea.Model, tea.Cmd) {
	m.result = result
	m.done = true
	m.logger.Debug("Netlist dialog closed", "result", result.String())
	return m, tea.Quit
}

// View implements tea.Model
func (m *DialogModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var body string
	switch m.mode {
	case ModeAddGenerator:
		body = m.centered(m.adder.View())
	case ModeSaveChooser:
		body = m.centered(m.chooser.View())
	case ModeMessage:
		body = m.centered(m.message.View())
	case ModeHelp:
		body = m.help.View()
	default:
		body = m.renderPages()
	}

	_, contentHeight := m.layout.GetContentArea(lipgloss.Height(header), lipgloss.Height(footer))
	body = lipgloss.NewStyle().Width(m.width).Height(contentHeight).Render(body)

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}

func (m *DialogModel) centered(content string) string {
	_, h := m.layout.GetContentArea(2, 1)
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, content)
}

// renderHeader renders the dialog title bar
func (m *DialogModel) renderHeader() string {
	title := fmt.Sprintf("Netlist: %s", m.shell.ActivePage().Label())
	return StyleFor(m.theme, "header").Width(m.width).Render(title)
}

// renderFooter renders the key hints of the current mode
func (m *DialogModel) renderFooter() string {
	var keys []string

	switch m.mode {
	case ModeAddGenerator:
		keys = []string{"tab: next field", "ctrl+o: browse", "enter: ok", "esc: cancel"}
	case ModeSaveChooser:
		keys = []string{"enter: save", "esc: cancel"}
	case ModeMessage:
		keys = []string{"enter: continue"}
	case ModeHelp:
		keys = []string{"↑/↓: scroll", "esc: back"}
	case ModePages:
		if m.layout.IsSmallScreen() {
			keys = []string{"ctrl+g: generate", "F1: help", "esc: cancel"}
			break
		}
		keys = []string{
			"ctrl+←/→: page",
			"tab: field",
			"space: toggle",
			"ctrl+g: generate",
			"ctrl+n: add",
			"F1: help",
			"esc: cancel",
		}
		if m.shell.ActivePage().Format.IsCustom() {
			keys = slices.Insert(keys, 5, "ctrl+x: remove")
		}
	}

	return StyleFor(m.theme, "footer").Width(m.width).Render(strings.Join(keys, " • "))
}

func (m *DialogModel) renderPages() string {
	tabs := m.renderTabs()
	page := m.renderPage()
	buttons := m.renderButtons()

	return lipgloss.JoinVertical(lipgloss.Left, tabs, "", page, "", buttons)
}

func (m *DialogModel) renderTabs() string {
	var tabs []string
	for i, page := range m.shell.Pages() {
		label := page.Label()
		if page.IsDefault {
			label += " *"
		}

		style := StyleFor(m.theme, "tab")
		if i == m.shell.Active() {
			style = StyleFor(m.theme, "tab_active")
		}
		tabs = append(tabs, m.zones.Mark(tabZoneID(i), style.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *DialogModel) renderPage() string {
	page := m.shell.ActivePage()
	in := m.inputs[m.shell.Active()]

	rows := []string{m.renderCheckbox(ctlDefault, "Default format", page.IsDefault)}

	switch {
	case page.Format == domain.SpiceFormat:
		rows = append(rows,
			m.renderInput(ctlCommand, "Simulator command", in.command),
			m.renderCheckbox(ctlAdjust, "Reformat passive component values (1M -> 1Meg, 4k7 -> 4.7k)", page.AdjustPassiveValues),
			m.renderCheckbox(ctlNetname, "Use default net names", m.shell.UseDefaultNetname()),
			"",
			m.renderButton(ctlSimulate),
		)
	case page.Format.IsCustom():
		rows = append(rows,
			m.renderInput(ctlTitle, "Title", in.title),
			m.renderInput(ctlCommand, "Netlist command", in.command),
		)
	default:
		ext, _, _ := page.Format.FileParams()
		rows = append(rows, StyleFor(m.theme, "muted").Render(fmt.Sprintf("Writes a %s netlist (*.%s)", page.Name, ext)))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *DialogModel) renderCheckbox(c control, label string, checked bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}

	line := box + " " + label
	if m.focusedControl() == c {
		line = StyleFor(m.theme, "info").Bold(true).Render("> " + line)
	} else {
		line = "  " + line
	}
	return m.zones.Mark(c.zoneID(), line)
}

func (m *DialogModel) renderInput(c control, label string, input textinput.Model) string {
	style := StyleFor(m.theme, "form_input")
	if m.focusedControl() == c {
		style = StyleFor(m.theme, "form_input_focused")
	}
	style = style.Width(max(m.layout.GetFormWidth()-4, 10))

	field := lipgloss.JoinVertical(lipgloss.Left,
		StyleFor(m.theme, "form_label").Render(label),
		style.Render(input.View()),
	)
	return m.zones.Mark(c.zoneID(), field)
}

func (m *DialogModel) renderButton(c control) string {
	style := StyleFor(m.theme, "button")
	if m.focusedControl() == c {
		style = StyleFor(m.theme, "button_focused")
	}
	return m.zones.Mark(c.zoneID(), style.Render(controlLabels[c]))
}

func (m *DialogModel) renderButtons() string {
	var buttons []string
	for _, c := range m.controls() {
		if c >= btnGenerate {
			buttons = append(buttons, m.renderButton(c), " ")
		}
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}

// SetSize implements domain.TUIComponent
func (m *DialogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layout.SetSize(width, height)

	formWidth := m.layout.GetFormWidth()
	for i := range m.inputs {
		m.inputs[i].title.Width = max(formWidth-8, 10)
		m.inputs[i].command.Width = max(formWidth-8, 10)
	}
	if m.adder != nil {
		m.adder.SetSize(formWidth, height)
	}
	if m.chooser != nil {
		m.chooser.SetSize(formWidth, height)
	}
	if m.message != nil {
		m.message.SetSize(formWidth, height)
	}
	m.help.SetSize(width, max(height-2, 1))
}

// SetTheme implements domain.TUIComponent
func (m *DialogModel) SetTheme(theme domain.Theme) {
	m.theme = theme
	m.help.SetTheme(theme)
}

// Focus implements domain.TUIComponent
func (m *DialogModel) Focus() {
	m.setFocus(m.focus)
}

// Blur implements domain.TUIComponent
func (m *DialogModel) Blur() {
	in := &m.inputs[m.shell.Active()]
	in.title.Blur()
	in.command.Blur()
}

// Run shows the dialog until the user closes it and returns its result
func Run(shell *dialog.Shell, opts DialogOptions) (domain.DialogResult, error) {
	model := NewDialogModel(shell, opts)
	defer model.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return domain.ResultCancel, fmt.Errorf("netlist dialog failed: %w", err)
	}

	return final.(*DialogModel).Result(), nil
}
