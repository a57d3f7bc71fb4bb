// Package host provides the schematic editor side of the netlist dialog: the
// design being exported and the per-project settings the dialog reads back
package host

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/nettracex/netlistx/internal/domain"
	"github.com/nettracex/netlistx/internal/netlist"
)

// Project setting keys
const (
	KeyNetlistFormat            = "project.netlist_format"
	KeySimulatorCommand         = "project.simulator_command"
	KeySpiceAdjustPassiveValues = "project.spice_adjust_passive_values"
	KeyNetlisterCommand         = "project.netlister_command"
)

// Editor implements domain.Host for one design file. Project settings live
// in the settings store; setters only stage values, SaveProjectSettings
// writes them out.
type Editor struct {
	design     string
	projectDir string
	store      domain.SettingsStore
	parser     *netlist.Parser
	writer     domain.NetlistWriter
	logger     domain.Logger

	netlisterCommand string
}

// NewEditor creates an editor for the design file at path
func NewEditor(path string, store domain.SettingsStore, writer domain.NetlistWriter, logger domain.Logger) (*Editor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve design path %q: %w", path, err)
	}

	parser, err := netlist.NewParser()
	if err != nil {
		return nil, err
	}

	return &Editor{
		design:           abs,
		projectDir:       filepath.Dir(abs),
		store:            store,
		parser:           parser,
		writer:           writer,
		logger:           logger,
		netlisterCommand: store.GetString(KeyNetlisterCommand),
	}, nil
}

// ProjectDirFor returns the project directory of a design file
func ProjectDirFor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Dir(path)
	}
	return filepath.Dir(abs)
}

func (e *Editor) SchematicFileName() string { return e.design }
func (e *Editor) ProjectDir() string        { return e.projectDir }

func (e *Editor) NetlistFormatName() string {
	return e.store.GetString(KeyNetlistFormat)
}

func (e *Editor) SetNetlistFormatName(name string) {
	e.stage(KeyNetlistFormat, name)
}

func (e *Editor) SimulatorCommand() string {
	return e.store.GetString(KeySimulatorCommand)
}

func (e *Editor) SetSimulatorCommand(command string) {
	e.stage(KeySimulatorCommand, command)
}

func (e *Editor) SpiceAdjustPassiveValues() bool {
	return e.store.GetBool(KeySpiceAdjustPassiveValues)
}

func (e *Editor) SetSpiceAdjustPassiveValues(adjust bool) {
	e.stage(KeySpiceAdjustPassiveValues, adjust)
}

// NetlisterCommand returns the command handed over by the last generation
func (e *Editor) NetlisterCommand() string {
	return e.netlisterCommand
}

func (e *Editor) SetNetlisterCommand(command string) {
	e.netlisterCommand = command
	e.stage(KeyNetlisterCommand, command)
}

func (e *Editor) stage(key string, value interface{}) {
	if err := e.store.Set(key, value); err != nil {
		e.logger.Warn("Failed to update project setting", "key", key, "error", err)
	}
}

// CreateNetlist reads the design. A design without components has no
// netlist and yields nil.
func (e *Editor) CreateNetlist() (*domain.Netlist, error) {
	nl, err := e.parser.ParseFile(e.design)
	if err != nil {
		return nil, &domain.NetlistError{
			Type:      domain.ErrorTypeNetlist,
			Message:   "failed to read design",
			Cause:     err,
			Context:   map[string]interface{}{"design": e.design},
			Timestamp: time.Now(),
			Code:      "DESIGN_READ_FAILED",
		}
	}

	if len(nl.Components) == 0 {
		e.logger.Debug("Design has no components", "design", e.design)
		return nil, nil
	}

	return nl, nil
}

// WriteNetlistFile serialises nl with the current netlister command
func (e *Editor) WriteNetlistFile(nl *domain.Netlist, format domain.NetlistFormat, path string, opts domain.NetlistOptions) error {
	e.logger.Info("Writing netlist", "format", format.Name(), "path", path)
	return e.writer.Write(nl, format, path, opts, e.netlisterCommand)
}

// SaveProjectSettings writes the project settings to the settings file
func (e *Editor) SaveProjectSettings() error {
	if err := e.store.Save(); err != nil {
		return fmt.Errorf("failed to save project settings: %w", err)
	}
	return nil
}
