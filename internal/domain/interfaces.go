// Package domain contains the core business logic interfaces and contracts
package domain

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Host is the schematic editor that owns the netlist dialog. It builds the
// in-memory netlist, serialises it and keeps the per-project settings the
// dialog reads and updates.
type Host interface {
	// SchematicFileName returns the root sheet file name
	SchematicFileName() string
	// ProjectDir returns the project directory
	ProjectDir() string

	NetlistFormatName() string
	SetNetlistFormatName(name string)
	SimulatorCommand() string
	SetSimulatorCommand(command string)
	SpiceAdjustPassiveValues() bool
	SetSpiceAdjustPassiveValues(adjust bool)
	SetNetlisterCommand(command string)

	// CreateNetlist returns a nil netlist when the schematic has none
	CreateNetlist() (*Netlist, error)
	WriteNetlistFile(netlist *Netlist, format NetlistFormat, path string, opts NetlistOptions) error
	SaveProjectSettings() error
}

// SettingsStore is the persistent key/value configuration store
type SettingsStore interface {
	GetString(key string) string
	GetBool(key string) bool
	Set(key string, value interface{}) error
	Save() error
}

// ProcessLauncher starts external programs without waiting for them
type ProcessLauncher interface {
	Launch(executable, args string, files ...string) error
	LaunchShell(commandLine string) error
}

// NetlistWriter serialises a netlist to one export format
type NetlistWriter interface {
	Write(netlist *Netlist, format NetlistFormat, path string, opts NetlistOptions, command string) error
}

// TUIComponent defines reusable UI components
type TUIComponent interface {
	tea.Model
	SetSize(width, height int)
	SetTheme(theme Theme)
	Focus()
	Blur()
}

// Logger defines logging operations
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
}

// Theme defines UI theming interface
type Theme interface {
	GetColor(element string) string
	GetStyle(element string) map[string]interface{}
	SetColor(element, color string)
}
