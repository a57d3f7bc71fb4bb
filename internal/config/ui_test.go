package config

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileManager returns a manager bound to a config file in a temp dir so
// saves never touch the user's home
func newFileManager(t *testing.T) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netlistx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: default\n"), 0644))

	manager := NewManager()
	require.NoError(t, manager.LoadFromFile(path))
	return manager
}

func sized(t *testing.T, manager *Manager) *ConfigUIModel {
	t.Helper()
	model := NewConfigUIModel(manager)
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	return model
}

func press(model *ConfigUIModel, msgs ...tea.KeyMsg) *ConfigUIModel {
	for _, msg := range msgs {
		updated, _ := model.Update(msg)
		model = updated.(*ConfigUIModel)
	}
	return model
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewConfigUIModel(t *testing.T) {
	model := NewConfigUIModel(newFileManager(t))

	assert.Equal(t, stateSelectingSection, model.state)
	assert.Len(t, model.sections.Items(), 5)
	assert.Nil(t, model.Init())
	assert.Equal(t, "Loading configuration...", model.View())
}

func TestConfigUIModelWindowResize(t *testing.T) {
	model := NewConfigUIModel(newFileManager(t))

	updated, cmd := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	configModel := updated.(*ConfigUIModel)
	assert.Equal(t, 120, configModel.width)
	assert.Equal(t, 40, configModel.height)
}

func TestConfigUIModelSectionNavigation(t *testing.T) {
	model := sized(t, newFileManager(t))

	model = press(model, enterKey)
	assert.Equal(t, stateSelectingSetting, model.state)
	assert.Contains(t, model.View(), "Back to sections")

	model = press(model, escKey)
	assert.Equal(t, stateSelectingSection, model.state)
}

func TestConfigUIModelEditAndCancel(t *testing.T) {
	model := sized(t, newFileManager(t))

	model = press(model, enterKey, enterKey)
	assert.Equal(t, stateEditingValue, model.state)
	assert.Equal(t, "netlist.max_custom_targets", model.current.Key)
	assert.Contains(t, model.View(), "Editing:")

	model = press(model, escKey)
	assert.Equal(t, stateSelectingSetting, model.state)
	assert.Empty(t, model.current.Key)
}

func TestConfigUIModelEditValue(t *testing.T) {
	manager := newFileManager(t)
	model := sized(t, manager)

	// Project section, Simulator Command
	model = press(model, downKey, enterKey, downKey, enterKey)
	require.Equal(t, "project.simulator_command", model.current.Key)

	model.editor.SetValue("ngspice -b")
	model = press(model, enterKey)

	assert.Equal(t, stateSelectingSetting, model.state)
	assert.Equal(t, messageTypeSuccess, model.messageType)
	assert.Equal(t, "ngspice -b", manager.GetConfig().Project.SimulatorCommand)
}

func TestConfigUIModelRejectsInvalidValue(t *testing.T) {
	manager := newFileManager(t)
	model := sized(t, manager)

	model = press(model, enterKey, enterKey)
	model.editor.SetValue("many")
	model = press(model, enterKey)

	assert.Equal(t, stateEditingValue, model.state)
	assert.Equal(t, messageTypeError, model.messageType)
	assert.Contains(t, model.message, "Invalid value")
	assert.Equal(t, DefaultCustomTargetLimit, manager.GetNetlistConfig().MaxCustomTargets)
}

func TestConfigUIModelGeneratorSettings(t *testing.T) {
	manager := newFileManager(t)
	require.NoError(t, manager.Set(TitleKey(1), "BOM"))
	require.NoError(t, manager.Set(CommandKey(1), "bom %I"))

	model := NewConfigUIModel(manager)
	settings := model.sectionSettings(SectionGenerators)

	require.Len(t, settings, 4)
	assert.Equal(t, TitleKey(1), settings[0].Key)
	assert.Equal(t, "BOM", settings[0].Value)
	assert.Equal(t, CommandKey(1), settings[1].Key)
	assert.Equal(t, TitleKey(2), settings[2].Key)
	assert.Equal(t, "", settings[2].Value)
}

func TestConfigUIModelResetGenerators(t *testing.T) {
	manager := newFileManager(t)
	require.NoError(t, manager.Set(TitleKey(1), "BOM"))
	model := sized(t, manager)

	// Generators is the third section
	model = press(model, downKey, downKey, runeKey('r'))

	assert.Contains(t, model.message, "Generators reset")
	assert.Empty(t, manager.GetString(TitleKey(1)))
}

func TestConfigUIModelResetSection(t *testing.T) {
	manager := newFileManager(t)
	require.NoError(t, manager.Set("netlist.intermediate_ext", "kicadxml"))
	model := sized(t, manager)

	model = press(model, runeKey('r'))

	assert.Contains(t, model.message, "reset")
	assert.Equal(t, "xml", manager.GetNetlistConfig().IntermediateExt)
}

func TestConfigUIModelSave(t *testing.T) {
	manager := newFileManager(t)
	model := sized(t, manager)

	model = press(model, runeKey('s'))

	assert.Equal(t, messageTypeSuccess, model.messageType)
	assert.Contains(t, model.message, "saved")
}

func TestConfigUIModelQuit(t *testing.T) {
	model := sized(t, newFileManager(t))

	_, cmd := model.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestParseValue(t *testing.T) {
	v, err := parseValue(ConfigSetting{Type: "int"}, " 4 ")
	assert.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = parseValue(ConfigSetting{Type: "bool"}, "true")
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = parseValue(ConfigSetting{Type: "enum", Options: validThemes}, "dark")
	assert.NoError(t, err)
	assert.Equal(t, "dark", v)

	v, err = parseValue(ConfigSetting{Type: "string"}, ` "%I" `)
	assert.NoError(t, err)
	assert.Equal(t, ` "%I" `, v)

	_, err = parseValue(ConfigSetting{Type: "int"}, "x")
	assert.Error(t, err)
	_, err = parseValue(ConfigSetting{Type: "bool"}, "maybe")
	assert.Error(t, err)
	_, err = parseValue(ConfigSetting{Type: "enum", Options: validThemes}, "neon")
	assert.Error(t, err)
}

func TestConfigSectionListItem(t *testing.T) {
	section := ConfigSection{Name: SectionNetlist, Summary: "Netlist dialog behaviour"}

	assert.Equal(t, "Netlist", section.FilterValue())
	assert.Equal(t, "Netlist", section.Title())
	assert.Equal(t, "Netlist dialog behaviour", section.Description())
	assert.Equal(t, "Timeout", ConfigSetting{Name: "Timeout"}.FilterValue())
}
