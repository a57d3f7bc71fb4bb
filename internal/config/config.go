// Package config provides configuration management functionality
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nettracex/netlistx/internal/domain"
	"github.com/spf13/viper"
)

// Manager is the viper-backed settings store shared by the netlist dialog
// and the host editor
type Manager struct {
	config     *domain.Config
	viper      *viper.Viper
	configFile string
	validator  *Validator
	listeners  []ConfigChangeListener
}

// ConfigChangeListener defines a callback for configuration changes
type ConfigChangeListener func(key string, oldValue, newValue interface{})

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()

	v.SetConfigName("netlistx")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/netlistx")
	v.AddConfigPath("/etc/netlistx")

	v.SetEnvPrefix("NETLISTX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindEnvironmentVariables(v)
	setDefaults(v)

	return &Manager{
		config:    &domain.Config{},
		viper:     v,
		validator: NewValidator(),
		listeners: make([]ConfigChangeListener, 0),
	}
}

// bindEnvironmentVariables binds the structured configuration keys to environment variables
func bindEnvironmentVariables(v *viper.Viper) {
	v.BindEnv("netlist.max_custom_targets", "NETLISTX_NETLIST_MAX_CUSTOM_TARGETS")
	v.BindEnv("netlist.intermediate_ext", "NETLISTX_NETLIST_INTERMEDIATE_EXT")
	v.BindEnv("netlist.shell", "NETLISTX_NETLIST_SHELL")

	v.BindEnv("project.netlist_format", "NETLISTX_PROJECT_NETLIST_FORMAT")
	v.BindEnv("project.simulator_command", "NETLISTX_PROJECT_SIMULATOR_COMMAND")
	v.BindEnv("project.spice_adjust_passive_values", "NETLISTX_PROJECT_SPICE_ADJUST_PASSIVE_VALUES")

	v.BindEnv("ui.theme", "NETLISTX_UI_THEME")
	v.BindEnv("ui.show_help", "NETLISTX_UI_SHOW_HELP")
	v.BindEnv("ui.mouse", "NETLISTX_UI_MOUSE")
	v.BindEnv("ui.color_mode", "NETLISTX_UI_COLOR_MODE")

	v.BindEnv("logging.level", "NETLISTX_LOGGING_LEVEL")
	v.BindEnv("logging.format", "NETLISTX_LOGGING_FORMAT")
	v.BindEnv("logging.output", "NETLISTX_LOGGING_OUTPUT")
	v.BindEnv("logging.file", "NETLISTX_LOGGING_FILE")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	setNetlistDefaults(v)
	setProjectDefaults(v)
	setUIDefaults(v)
	setLoggingDefaults(v)
}

func setNetlistDefaults(v *viper.Viper) {
	v.SetDefault("netlist.max_custom_targets", DefaultCustomTargetLimit)
	v.SetDefault("netlist.intermediate_ext", "xml")
	v.SetDefault("netlist.shell", "")
}

func setProjectDefaults(v *viper.Viper) {
	v.SetDefault("project.netlist_format", "")
	v.SetDefault("project.simulator_command", "")
	v.SetDefault("project.spice_adjust_passive_values", false)
	v.SetDefault("project.netlister_command", "")
}

func setUIDefaults(v *viper.Viper) {
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.show_help", true)
	v.SetDefault("ui.mouse", true)
	v.SetDefault("ui.color_mode", "auto")
}

func setLoggingDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.file", filepath.Join(os.TempDir(), "netlistx.log"))
}

// Load loads configuration from file and environment variables
func (m *Manager) Load() error {
	if err := m.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable, defaults and environment apply
	} else {
		m.configFile = m.viper.ConfigFileUsed()
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := m.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// LoadFromFile loads configuration from a specific file path
func (m *Manager) LoadFromFile(filePath string) error {
	m.viper.SetConfigFile(filePath)

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	m.configFile = filePath

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return m.Validate()
}

// GetConfigFile returns the path of the currently loaded config file
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Save saves the current configuration to file
func (m *Manager) Save() error {
	configFile := m.configFile
	if configFile == "" {
		configDir := filepath.Join(os.Getenv("HOME"), ".config", "netlistx")
		configFile = filepath.Join(configDir, "netlistx.yaml")
		m.configFile = configFile
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by key
func (m *Manager) Get(key string) interface{} {
	return m.viper.Get(key)
}

// GetString implements domain.SettingsStore
func (m *Manager) GetString(key string) string {
	return m.viper.GetString(key)
}

// GetBool implements domain.SettingsStore
func (m *Manager) GetBool(key string) bool {
	return m.viper.GetBool(key)
}

// Set sets a configuration value by key
func (m *Manager) Set(key string, value interface{}) error {
	if err := m.validator.ValidateField(key, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	oldValue := m.viper.Get(key)

	m.viper.Set(key, value)

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}

	if err := m.Validate(); err != nil {
		// Rollback on validation failure
		m.viper.Set(key, oldValue)
		m.viper.Unmarshal(m.config)
		return fmt.Errorf("validation failed for key %s: %w", key, err)
	}

	m.notifyListeners(key, oldValue, value)

	return nil
}

// AddChangeListener adds a configuration change listener
func (m *Manager) AddChangeListener(listener ConfigChangeListener) {
	m.listeners = append(m.listeners, listener)
}

func (m *Manager) notifyListeners(key string, oldValue, newValue interface{}) {
	for _, listener := range m.listeners {
		listener(key, oldValue, newValue)
	}
}

// Validate validates the current configuration
func (m *Manager) Validate() error {
	return m.validator.Validate(m.config)
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetNetlistConfig returns the netlist dialog configuration
func (m *Manager) GetNetlistConfig() domain.NetlistConfig {
	return m.config.Netlist
}

// GetUIConfig returns the UI configuration
func (m *Manager) GetUIConfig() domain.UIConfig {
	return m.config.UI
}

// GetLoggingConfig returns the logging configuration
func (m *Manager) GetLoggingConfig() domain.LoggingConfig {
	return m.config.Logging
}

// Reset resets configuration to default values. Persisted generator slots
// are dropped along with everything else.
func (m *Manager) Reset() error {
	v := viper.New()
	v.SetConfigName("netlistx")
	v.SetConfigType("yaml")
	setDefaults(v)
	bindEnvironmentVariables(v)

	m.viper = v

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}

	return nil
}

// ResetSection resets a specific configuration section to defaults
func (m *Manager) ResetSection(section string) error {
	defaults := viper.New()

	switch section {
	case "netlist":
		setNetlistDefaults(defaults)
	case "project":
		setProjectDefaults(defaults)
	case "ui":
		setUIDefaults(defaults)
	case "logging":
		setLoggingDefaults(defaults)
	default:
		return fmt.Errorf("unknown configuration section: %s", section)
	}

	for _, key := range defaults.AllKeys() {
		m.viper.Set(key, defaults.Get(key))
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to reset section %s: %w", section, err)
	}

	return m.Validate()
}

// Validator implements configuration validation
type Validator struct {
	rules map[string][]ValidationRule
}

// ValidationRule represents a single validation rule
type ValidationRule struct {
	Name     string
	Validate func(interface{}) error
	Message  string
}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	v := &Validator{
		rules: make(map[string][]ValidationRule),
	}
	v.setupValidationRules()
	return v
}

var (
	validThemes     = []string{"default", "dark", "light", "minimal"}
	validColorModes = []string{"auto", "always", "never"}
	validLogLevels  = []string{"debug", "info", "warn", "error", "fatal"}
	validLogFormats = []string{"text", "json"}
	validLogOutputs = []string{"stdout", "stderr", "file", "none"}
)

func (v *Validator) setupValidationRules() {
	v.rules["netlist.max_custom_targets"] = []ValidationRule{
		{
			Name: "valid_range",
			Validate: func(value interface{}) error {
				if n, ok := value.(int); ok {
					if n < 1 || n > MaxCustomTargetLimit {
						return fmt.Errorf("max_custom_targets must be between 1 and %d", MaxCustomTargetLimit)
					}
				}
				return nil
			},
			Message: "Generator limit must be a small positive number",
		},
	}

	v.rules["ui.theme"] = []ValidationRule{enumRule("valid_theme", validThemes)}
	v.rules["logging.level"] = []ValidationRule{enumRule("valid_level", validLogLevels)}
}

func enumRule(name string, options []string) ValidationRule {
	return ValidationRule{
		Name: name,
		Validate: func(value interface{}) error {
			if s, ok := value.(string); ok && !contains(options, s) {
				return fmt.Errorf("must be one of: %v", options)
			}
			return nil
		},
		Message: fmt.Sprintf("Value must be one of: %s", strings.Join(options, ", ")),
	}
}

// ValidateField validates a specific configuration field
func (v *Validator) ValidateField(key string, value interface{}) error {
	if rules, exists := v.rules[key]; exists {
		for _, rule := range rules {
			if err := rule.Validate(value); err != nil {
				return fmt.Errorf("%s: %s", rule.Message, err.Error())
			}
		}
	}
	return nil
}

// Validate validates the configuration
func (v *Validator) Validate(config *domain.Config) error {
	if err := v.validateNetlistConfig(&config.Netlist); err != nil {
		return fmt.Errorf("netlist config validation failed: %w", err)
	}

	if err := v.validateUIConfig(&config.UI); err != nil {
		return fmt.Errorf("UI config validation failed: %w", err)
	}

	if err := v.validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func (v *Validator) validateNetlistConfig(config *domain.NetlistConfig) error {
	if config.MaxCustomTargets < 1 || config.MaxCustomTargets > MaxCustomTargetLimit {
		return fmt.Errorf("max_custom_targets must be between 1 and %d", MaxCustomTargetLimit)
	}

	if strings.ContainsAny(config.IntermediateExt, `/\. `) {
		return fmt.Errorf("intermediate_ext must be a bare extension")
	}

	return nil
}

func (v *Validator) validateUIConfig(config *domain.UIConfig) error {
	if !contains(validThemes, config.Theme) {
		return fmt.Errorf("theme must be one of: %v", validThemes)
	}

	if !contains(validColorModes, config.ColorMode) {
		return fmt.Errorf("color_mode must be one of: %v", validColorModes)
	}

	return nil
}

func (v *Validator) validateLoggingConfig(config *domain.LoggingConfig) error {
	if !contains(validLogLevels, config.Level) {
		return fmt.Errorf("level must be one of: %v", validLogLevels)
	}

	if !contains(validLogFormats, config.Format) {
		return fmt.Errorf("format must be one of: %v", validLogFormats)
	}

	if !contains(validLogOutputs, config.Output) {
		return fmt.Errorf("output must be one of: %v", validLogOutputs)
	}

	if config.Output == "file" && config.File == "" {
		return fmt.Errorf("file must be set when output is file")
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
