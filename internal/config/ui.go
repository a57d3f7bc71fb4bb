package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nettracex/netlistx/internal/domain"
)

// ConfigUIModel is the settings editor behind `netlistx settings`
type ConfigUIModel struct {
	manager     *Manager
	state       configUIState
	sections    list.Model
	settings    list.Model
	editor      textinput.Model
	current     ConfigSetting
	width       int
	height      int
	styles      configUIStyles
	keyMap      configUIKeyMap
	message     string
	messageType messageType
}

type configUIState int

const (
	stateSelectingSection configUIState = iota
	stateSelectingSetting
	stateEditingValue
)

type messageType int

const (
	messageTypeNone messageType = iota
	messageTypeSuccess
	messageTypeError
	messageTypeInfo
)

type configUIKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Escape key.Binding
	Save   key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

type configUIStyles struct {
	titleStyle    lipgloss.Style
	settingStyle  lipgloss.Style
	valueStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	errorStyle    lipgloss.Style
	successStyle  lipgloss.Style
	infoStyle     lipgloss.Style
	helpStyle     lipgloss.Style
	borderStyle   lipgloss.Style
}

// Section names shown by the editor
const (
	SectionNetlist    = "Netlist"
	SectionProject    = "Project"
	SectionGenerators = "Generators"
	SectionUI         = "UI"
	SectionLogging    = "Logging"
)

// ConfigSection is one group of settings
type ConfigSection struct {
	Name    string
	Summary string
}

// ConfigSetting is one editable key
type ConfigSetting struct {
	Key         string
	Name        string
	Description string
	Value       interface{}
	Type        string   // string, int, bool or enum
	Options     []string // enum values
}

// ConfigSettingDelegate renders a setting with its current value on a second line
type ConfigSettingDelegate struct {
	styles configUIStyles
}

// NewConfigSettingDelegate creates a new configuration setting delegate
func NewConfigSettingDelegate(styles configUIStyles) *ConfigSettingDelegate {
	return &ConfigSettingDelegate{styles: styles}
}

// Height returns the height of a list item
func (d *ConfigSettingDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between list items
func (d *ConfigSettingDelegate) Spacing() int {
	return 1
}

// Update handles updates for the delegate
func (d *ConfigSettingDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a configuration setting with its current value
func (d *ConfigSettingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	setting, ok := item.(ConfigSetting)
	if !ok {
		return
	}

	nameStyle, valueStyle := d.styles.settingStyle, d.styles.valueStyle
	if index == m.Index() {
		nameStyle, valueStyle = d.styles.selectedStyle, d.styles.selectedStyle
	}

	current := fmt.Sprintf("%v", setting.Value)
	if current == "" {
		current = "(empty)"
	}
	if len(current) > 60 {
		current = current[:57] + "..."
	}

	line := nameStyle.Render("  " + setting.Name)
	if setting.Description != "" {
		line += " - " + nameStyle.Faint(true).Render(setting.Description)
	}

	fmt.Fprint(w, line)
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, valueStyle.Render("    Current: "+current))
}

// NewConfigUIModel creates a new settings editor
func NewConfigUIModel(manager *Manager) *ConfigUIModel {
	keyMap := configUIKeyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "back")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "select")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit/confirm")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back/cancel")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save config")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset section")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}

	styles := configUIStyles{
		titleStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		settingStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		valueStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		selectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230")),
		errorStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		successStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		infoStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		helpStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		borderStyle:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")),
	}

	sections := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	sections.Title = "Configuration Sections"
	sections.SetShowStatusBar(false)
	sections.SetFilteringEnabled(false)

	settings := list.New([]list.Item{}, NewConfigSettingDelegate(styles), 0, 0)
	settings.Title = "Settings"
	settings.SetShowStatusBar(false)
	settings.SetFilteringEnabled(false)

	editor := textinput.New()
	editor.Placeholder = "Enter value..."
	editor.CharLimit = 512

	model := &ConfigUIModel{
		manager:  manager,
		state:    stateSelectingSection,
		sections: sections,
		settings: settings,
		editor:   editor,
		keyMap:   keyMap,
		styles:   styles,
	}

	model.sections.SetItems([]list.Item{
		ConfigSection{Name: SectionNetlist, Summary: "Netlist dialog behaviour"},
		ConfigSection{Name: SectionProject, Summary: "Per-project export settings"},
		ConfigSection{Name: SectionGenerators, Summary: "User netlist generators"},
		ConfigSection{Name: SectionUI, Summary: "User interface preferences"},
		ConfigSection{Name: SectionLogging, Summary: "Logging configuration"},
	})
	return model
}

// sectionSettings returns the settings of a section with current values
func (m *ConfigUIModel) sectionSettings(section string) []ConfigSetting {
	config := m.manager.GetConfig()

	switch section {
	case SectionNetlist:
		return []ConfigSetting{
			{Key: "netlist.max_custom_targets", Name: "Generator Slots", Description: "Maximum number of user generators", Value: config.Netlist.MaxCustomTargets, Type: "int"},
			{Key: "netlist.intermediate_ext", Name: "Intermediate Extension", Description: "Extension of the file handed to generators as %I", Value: config.Netlist.IntermediateExt, Type: "string"},
			{Key: "netlist.shell", Name: "Shell", Description: "Shell used to run generator commands (empty for the platform default)", Value: config.Netlist.Shell, Type: "string"},
			{Key: KeyUseDefaultNetname, Name: "Use Default Net Names", Description: "Keep default net names in exported netlists", Value: m.manager.GetBool(KeyUseDefaultNetname), Type: "bool"},
		}
	case SectionProject:
		return []ConfigSetting{
			{Key: "project.netlist_format", Name: "Default Format", Description: "Page selected when the dialog opens", Value: config.Project.NetlistFormat, Type: "string"},
			{Key: "project.simulator_command", Name: "Simulator Command", Description: "Command run by Run Simulator", Value: config.Project.SimulatorCommand, Type: "string"},
			{Key: "project.spice_adjust_passive_values", Name: "Adjust Passive Values", Description: "Rewrite passive values for Spice (1M -> 1Meg)", Value: config.Project.SpiceAdjustPassiveValues, Type: "bool"},
		}
	case SectionGenerators:
		return m.generatorSettings(config.Netlist.MaxCustomTargets)
	case SectionUI:
		return []ConfigSetting{
			{Key: "ui.theme", Name: "Theme", Description: "UI color theme", Value: config.UI.Theme, Type: "enum", Options: validThemes},
			{Key: "ui.show_help", Name: "Show Help", Description: "Show the key help line", Value: config.UI.ShowHelp, Type: "bool"},
			{Key: "ui.mouse", Name: "Mouse", Description: "Clickable tabs and buttons", Value: config.UI.Mouse, Type: "bool"},
			{Key: "ui.color_mode", Name: "Color Mode", Description: "Color output mode", Value: config.UI.ColorMode, Type: "enum", Options: validColorModes},
		}
	case SectionLogging:
		return []ConfigSetting{
			{Key: "logging.level", Name: "Log Level", Description: "Minimum log level to output", Value: config.Logging.Level, Type: "enum", Options: validLogLevels},
			{Key: "logging.format", Name: "Log Format", Description: "Log line format", Value: config.Logging.Format, Type: "enum", Options: validLogFormats},
			{Key: "logging.output", Name: "Log Output", Description: "Log destination", Value: config.Logging.Output, Type: "enum", Options: validLogOutputs},
			{Key: "logging.file", Name: "Log File", Description: "Path used when output is file", Value: config.Logging.File, Type: "string"},
		}
	}
	return nil
}

// generatorSettings lists title and command of every slot up to the first
// empty one, plus that empty slot so a new generator can be typed in
func (m *ConfigUIModel) generatorSettings(limit int) []ConfigSetting {
	var settings []ConfigSetting
	next := 0
	for slot, target := range CustomTargets(m.manager, limit) {
		settings = append(settings, generatorPair(slot+1, target)...)
		next = slot + 1
	}
	if next < limit {
		settings = append(settings, generatorPair(next+1, Target{})...)
	}
	return settings
}

func generatorPair(n int, target Target) []ConfigSetting {
	return []ConfigSetting{
		{Key: TitleKey(n), Name: fmt.Sprintf("Generator %d Title", n), Value: target.Title, Type: "string"},
		{Key: CommandKey(n), Name: fmt.Sprintf("Generator %d Command", n), Value: target.Command, Type: "string"},
	}
}

// Init implements tea.Model
func (m *ConfigUIModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *ConfigUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateSelectingSection:
			switch {
			case key.Matches(msg, m.keyMap.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keyMap.Enter), key.Matches(msg, m.keyMap.Right):
				if section, ok := m.sections.SelectedItem().(ConfigSection); ok {
					m.loadSettings(section.Name)
					m.state = stateSelectingSetting
				}
				return m, nil
			case key.Matches(msg, m.keyMap.Save):
				m.save()
				return m, nil
			case key.Matches(msg, m.keyMap.Reset):
				if section, ok := m.sections.SelectedItem().(ConfigSection); ok {
					m.resetSection(section.Name)
				}
				return m, nil
			}
			m.sections, cmd = m.sections.Update(msg)
			return m, cmd

		case stateSelectingSetting:
			switch {
			case key.Matches(msg, m.keyMap.Escape), key.Matches(msg, m.keyMap.Left):
				m.state = stateSelectingSection
				return m, nil
			case key.Matches(msg, m.keyMap.Enter), key.Matches(msg, m.keyMap.Right):
				if setting, ok := m.settings.SelectedItem().(ConfigSetting); ok {
					m.startEditing(setting)
				}
				return m, nil
			case key.Matches(msg, m.keyMap.Save):
				m.save()
				return m, nil
			}
			m.settings, cmd = m.settings.Update(msg)
			return m, cmd

		case stateEditingValue:
			switch {
			case key.Matches(msg, m.keyMap.Escape):
				m.cancelEditing()
				return m, nil
			case key.Matches(msg, m.keyMap.Enter):
				m.saveCurrentValue()
				return m, nil
			}
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *ConfigUIModel) View() string {
	if m.width == 0 {
		return "Loading configuration..."
	}

	var content strings.Builder
	content.WriteString(m.styles.titleStyle.Render("NetlistX Configuration") + "\n\n")

	if m.message != "" {
		style := m.styles.infoStyle
		switch m.messageType {
		case messageTypeSuccess:
			style = m.styles.successStyle
		case messageTypeError:
			style = m.styles.errorStyle
		}
		content.WriteString(style.Render(m.message) + "\n\n")
	}

	switch m.state {
	case stateSelectingSection:
		content.WriteString(m.styles.borderStyle.Width(m.width - 4).Render(m.sections.View()))
	case stateSelectingSetting:
		content.WriteString(m.styles.helpStyle.Render("← Back to sections") + "\n\n")
		content.WriteString(m.styles.borderStyle.Width(m.width - 4).Render(m.settings.View()))
	case stateEditingValue:
		content.WriteString(m.renderValueEditor())
	}

	content.WriteString("\n" + m.renderHelp())
	return content.String()
}

func (m *ConfigUIModel) renderValueEditor() string {
	var content strings.Builder

	content.WriteString(m.styles.helpStyle.Render("Editing: "+m.current.Key) + "\n\n")
	if len(m.current.Options) > 0 {
		content.WriteString(m.styles.infoStyle.Render("One of: "+strings.Join(m.current.Options, ", ")) + "\n")
	}
	content.WriteString("New value:\n")
	content.WriteString(m.editor.View() + "\n\n")
	content.WriteString(m.styles.helpStyle.Render("Press Enter to save, Esc to cancel"))

	return content.String()
}

func (m *ConfigUIModel) renderHelp() string {
	var help string
	switch m.state {
	case stateSelectingSection:
		help = "Enter/→: Select section • s: Save config • r: Reset section • q: Quit"
	case stateSelectingSetting:
		help = "Enter/→: Edit setting • ←/Esc: Back • s: Save config"
	case stateEditingValue:
		help = "Enter: Save • Esc: Cancel"
	}
	return m.styles.helpStyle.Render(help)
}

func (m *ConfigUIModel) loadSettings(section string) {
	settings := m.sectionSettings(section)
	items := make([]list.Item, len(settings))
	for i, s := range settings {
		items[i] = s
	}
	m.settings.SetItems(items)
}

func (m *ConfigUIModel) reloadSelectedSection() {
	if section, ok := m.sections.SelectedItem().(ConfigSection); ok {
		m.loadSettings(section.Name)
	}
}

func (m *ConfigUIModel) save() {
	if err := m.manager.Save(); err != nil {
		m.setMessage("Failed to save configuration: "+err.Error(), messageTypeError)
		return
	}
	m.setMessage("Configuration saved to "+m.manager.GetConfigFile(), messageTypeSuccess)
}

func (m *ConfigUIModel) resetSection(section string) {
	var err error
	switch section {
	case SectionGenerators:
		limit := m.manager.GetNetlistConfig().MaxCustomTargets
		err = StoreTargets(m.manager, nil, limit)
	default:
		err = m.manager.ResetSection(strings.ToLower(section))
	}

	if err != nil {
		m.setMessage("Failed to reset section: "+err.Error(), messageTypeError)
		return
	}
	m.setMessage(section+" reset to defaults", messageTypeSuccess)
	m.reloadSelectedSection()
}

func (m *ConfigUIModel) startEditing(setting ConfigSetting) {
	m.current = setting
	m.editor.SetValue(fmt.Sprintf("%v", setting.Value))
	m.editor.Focus()
	m.state = stateEditingValue
}

func (m *ConfigUIModel) cancelEditing() {
	m.editor.Blur()
	m.editor.SetValue("")
	m.current = ConfigSetting{}
	m.state = stateSelectingSetting
}

func (m *ConfigUIModel) saveCurrentValue() {
	value, err := parseValue(m.current, m.editor.Value())
	if err != nil {
		m.setMessage("Invalid value: "+err.Error(), messageTypeError)
		return
	}

	if err := m.manager.Set(m.current.Key, value); err != nil {
		m.setMessage("Failed to set value: "+err.Error(), messageTypeError)
		return
	}

	m.setMessage("Value updated successfully", messageTypeSuccess)
	m.cancelEditing()
	m.reloadSelectedSection()
}

// parseValue converts editor text to the setting's type
func parseValue(setting ConfigSetting, value string) (interface{}, error) {
	switch setting.Type {
	case "int":
		return strconv.Atoi(strings.TrimSpace(value))
	case "bool":
		return strconv.ParseBool(strings.TrimSpace(value))
	case "enum":
		value = strings.TrimSpace(value)
		if !contains(setting.Options, value) {
			return nil, fmt.Errorf("must be one of: %s", strings.Join(setting.Options, ", "))
		}
		return value, nil
	default:
		return value, nil
	}
}

func (m *ConfigUIModel) setMessage(message string, msgType messageType) {
	m.message = message
	m.messageType = msgType
}

// FilterValue implements list.Item for ConfigSection
func (c ConfigSection) FilterValue() string {
	return c.Name
}

// Title implements list.DefaultItem for ConfigSection
func (c ConfigSection) Title() string {
	return c.Name
}

// Description implements list.DefaultItem for ConfigSection
func (c ConfigSection) Description() string {
	return c.Summary
}

// FilterValue implements list.Item for ConfigSetting
func (c ConfigSetting) FilterValue() string {
	return c.Name
}

// SetSize implements domain.TUIComponent
func (m *ConfigUIModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.sections.SetSize(width-6, height-8)
	m.settings.SetSize(width-6, height-8)
}

// SetTheme implements domain.TUIComponent
func (m *ConfigUIModel) SetTheme(theme domain.Theme) {
	if theme == nil {
		return
	}
	m.styles.titleStyle = m.styles.titleStyle.Foreground(lipgloss.Color(theme.GetColor("primary")))
	m.styles.selectedStyle = m.styles.selectedStyle.Background(lipgloss.Color(theme.GetColor("primary")))
	m.styles.errorStyle = m.styles.errorStyle.Foreground(lipgloss.Color(theme.GetColor("error")))
	m.styles.successStyle = m.styles.successStyle.Foreground(lipgloss.Color(theme.GetColor("success")))
}

// Focus implements domain.TUIComponent
func (m *ConfigUIModel) Focus() {}

// Blur implements domain.TUIComponent
func (m *ConfigUIModel) Blur() {}
