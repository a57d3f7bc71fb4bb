package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nettracex/netlistx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	manager := NewManager()

	assert.NotNil(t, manager)
	assert.NotNil(t, manager.config)
	assert.NotNil(t, manager.viper)
}

func TestManagerLoad(t *testing.T) {
	manager := NewManager()

	// Test loading with no config file (should use defaults)
	err := manager.Load()
	assert.NoError(t, err)

	config := manager.GetConfig()
	assert.Equal(t, DefaultCustomTargetLimit, config.Netlist.MaxCustomTargets)
	assert.Equal(t, "xml", config.Netlist.IntermediateExt)
	assert.Empty(t, config.Netlist.Shell)

	assert.Empty(t, config.Project.NetlistFormat)
	assert.Empty(t, config.Project.SimulatorCommand)
	assert.False(t, config.Project.SpiceAdjustPassiveValues)

	assert.Equal(t, "default", config.UI.Theme)
	assert.True(t, config.UI.ShowHelp)
	assert.True(t, config.UI.Mouse)
	assert.Equal(t, "auto", config.UI.ColorMode)

	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
	assert.Equal(t, "stderr", config.Logging.Output)
}

func TestManagerGetSet(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load())

	assert.Equal(t, "default", manager.Get("ui.theme"))

	err := manager.Set("project.simulator_command", "ngspice -b")
	assert.NoError(t, err)
	assert.Equal(t, "ngspice -b", manager.GetString("project.simulator_command"))
	assert.Equal(t, "ngspice -b", manager.GetConfig().Project.SimulatorCommand)

	err = manager.Set("project.spice_adjust_passive_values", true)
	assert.NoError(t, err)
	assert.True(t, manager.GetBool("project.spice_adjust_passive_values"))
}

func TestManagerKeysAreCaseInsensitive(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load())

	require.NoError(t, manager.Set("CustomNetlistTitle1", "BOM"))
	assert.Equal(t, "BOM", manager.GetString("customnetlisttitle1"))
	assert.Equal(t, "BOM", manager.GetString("CustomNetlistTitle1"))
}

func TestManagerSaveDefaultLocation(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	configFile := filepath.Join(tempDir, ".config", "netlistx", "netlistx.yaml")

	manager := NewManager()
	require.NoError(t, manager.Load())

	require.NoError(t, manager.Set("ui.theme", "dark"))
	require.NoError(t, manager.Set(TitleKey(1), "BOM"))
	require.NoError(t, manager.Set(CommandKey(1), `xsltproc -o "%O" bom.xsl "%I"`))

	require.NoError(t, manager.Save())
	assert.Equal(t, configFile, manager.GetConfigFile())

	_, err := os.Stat(configFile)
	require.NoError(t, err)

	loaded := NewManager()
	require.NoError(t, loaded.LoadFromFile(configFile))
	assert.Equal(t, "dark", loaded.GetUIConfig().Theme)
	assert.Equal(t, "BOM", loaded.GetString(TitleKey(1)))
	assert.Equal(t, `xsltproc -o "%O" bom.xsl "%I"`, loaded.GetString(CommandKey(1)))
}

func TestManagerSaveUsesLoadedFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "netlistx.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("ui:\n  theme: light\n"), 0644))

	manager := NewManager()
	require.NoError(t, manager.LoadFromFile(configFile))
	require.NoError(t, manager.Set(KeyUseDefaultNetname, true))
	require.NoError(t, manager.Save())

	reloaded := NewManager()
	require.NoError(t, reloaded.LoadFromFile(configFile))
	assert.Equal(t, "light", reloaded.GetUIConfig().Theme)
	assert.True(t, reloaded.GetBool(KeyUseDefaultNetname))
}

func TestManagerLoadFromFileMissing(t *testing.T) {
	manager := NewManager()
	err := manager.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestManagerEnvironmentVariables(t *testing.T) {
	t.Setenv("NETLISTX_PROJECT_SIMULATOR_COMMAND", "ngspice")
	t.Setenv("NETLISTX_LOGGING_LEVEL", "debug")

	manager := NewManager()
	require.NoError(t, manager.Load())

	assert.Equal(t, "ngspice", manager.GetConfig().Project.SimulatorCommand)
	assert.Equal(t, "debug", manager.GetLoggingConfig().Level)
}

func TestManagerValidationOnSet(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load())

	err := manager.Set("ui.theme", "neon")
	assert.Error(t, err)
	// Rolled back
	assert.Equal(t, "default", manager.GetUIConfig().Theme)

	err = manager.Set("netlist.max_custom_targets", 0)
	assert.Error(t, err)
	assert.Equal(t, DefaultCustomTargetLimit, manager.GetNetlistConfig().MaxCustomTargets)
}

func TestManagerChangeListeners(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load())

	var changedKey string
	var newValue interface{}
	listener := func(key string, oldValue, value interface{}) {
		changedKey = key
		newValue = value
	}

	manager.AddChangeListener(listener)
	require.NoError(t, manager.Set("project.netlist_format", "Spice"))
	assert.Equal(t, "project.netlist_format", changedKey)
	assert.Equal(t, "Spice", newValue)

	changedKey = ""
	assert.Error(t, manager.Set("ui.theme", "neon"))
	assert.Empty(t, changedKey, "rejected values are not reported")
}

func TestManagerSetRejectsInvalidField(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load())

	err := manager.Set("logging.level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value for logging.level")
	assert.Contains(t, err.Error(), "Value must be one of: debug, info, warn, error, fatal")
	assert.Equal(t, "info", manager.GetLoggingConfig().Level)
}

func TestManagerReset(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load())

	require.NoError(t, manager.Set("ui.theme", "minimal"))
	require.NoError(t, manager.Set(TitleKey(1), "BOM"))

	require.NoError(t, manager.Reset())
	assert.Equal(t, "default", manager.GetUIConfig().Theme)
	assert.Empty(t, manager.GetString(TitleKey(1)))
}

func TestManagerResetSection(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Load())

	require.NoError(t, manager.Set("ui.theme", "light"))
	require.NoError(t, manager.Set("logging.level", "debug"))

	require.NoError(t, manager.ResetSection("ui"))
	assert.Equal(t, "default", manager.GetUIConfig().Theme)
	assert.Equal(t, "debug", manager.GetLoggingConfig().Level)

	assert.Error(t, manager.ResetSection("network"))
}

func TestValidatorValidate(t *testing.T) {
	validator := NewValidator()

	valid := func() *domain.Config {
		return &domain.Config{
			Netlist: domain.NetlistConfig{MaxCustomTargets: 8, IntermediateExt: "xml"},
			UI:      domain.UIConfig{Theme: "default", ColorMode: "auto"},
			Logging: domain.LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *domain.Config)
		wantErr bool
	}{
		{"valid", func(c *domain.Config) {}, false},
		{"zero limit", func(c *domain.Config) { c.Netlist.MaxCustomTargets = 0 }, true},
		{"limit too high", func(c *domain.Config) { c.Netlist.MaxCustomTargets = MaxCustomTargetLimit + 1 }, true},
		{"dotted extension", func(c *domain.Config) { c.Netlist.IntermediateExt = ".xml" }, true},
		{"bad theme", func(c *domain.Config) { c.UI.Theme = "neon" }, true},
		{"bad color mode", func(c *domain.Config) { c.UI.ColorMode = "sometimes" }, true},
		{"bad level", func(c *domain.Config) { c.Logging.Level = "trace" }, true},
		{"bad format", func(c *domain.Config) { c.Logging.Format = "xml" }, true},
		{"file output without path", func(c *domain.Config) { c.Logging.Output = "file" }, true},
		{"file output with path", func(c *domain.Config) {
			c.Logging.Output = "file"
			c.Logging.File = "/tmp/netlistx.log"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validator.Validate(c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatorFieldValidation(t *testing.T) {
	validator := NewValidator()

	assert.NoError(t, validator.ValidateField("ui.theme", "dark"))
	assert.Error(t, validator.ValidateField("ui.theme", "neon"))
	assert.NoError(t, validator.ValidateField("netlist.max_custom_targets", 4))
	assert.Error(t, validator.ValidateField("netlist.max_custom_targets", 0))
	assert.NoError(t, validator.ValidateField("unknown.key", "anything"))
}

func TestManagerImplementsSettingsStore(t *testing.T) {
	var _ domain.SettingsStore = NewManager()
}
