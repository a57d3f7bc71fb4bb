// Package domain contains core domain types and value objects
package domain

import (
	"fmt"
	"strings"
	"time"
)

// FormatKind identifies one kind of netlist export target
type FormatKind int

const (
	FormatPcbnew FormatKind = iota
	FormatOrcadPCB2
	FormatCadStar
	FormatSpice
	FormatCustom
)

// NetlistFormat is a netlist export target kind. Slot is only meaningful
// for FormatCustom and is the 0-based position of the user generator.
type NetlistFormat struct {
	Kind FormatKind `json:"kind"`
	Slot int        `json:"slot,omitempty"`
}

// Fixed formats, in tab order
var (
	PcbnewFormat    = NetlistFormat{Kind: FormatPcbnew}
	OrcadPCB2Format = NetlistFormat{Kind: FormatOrcadPCB2}
	CadStarFormat   = NetlistFormat{Kind: FormatCadStar}
	SpiceFormat     = NetlistFormat{Kind: FormatSpice}
)

// FixedFormats returns the built-in formats in tab order
func FixedFormats() []NetlistFormat {
	return []NetlistFormat{PcbnewFormat, OrcadPCB2Format, CadStarFormat, SpiceFormat}
}

// CustomFormat returns the format of the user generator in the given slot
func CustomFormat(slot int) NetlistFormat {
	return NetlistFormat{Kind: FormatCustom, Slot: slot}
}

// IsCustom reports whether the format is a user generator
func (f NetlistFormat) IsCustom() bool {
	return f.Kind == FormatCustom
}

// Name returns the page name of a fixed format
func (f NetlistFormat) Name() string {
	switch f.Kind {
	case FormatPcbnew:
		return "Pcbnew"
	case FormatOrcadPCB2:
		return "OrcadPCB2"
	case FormatCadStar:
		return "CadStar"
	case FormatSpice:
		return "Spice"
	default:
		return fmt.Sprintf("Custom%d", f.Slot+1)
	}
}

// String implements fmt.Stringer
func (f NetlistFormat) String() string {
	return f.Name()
}

// FileParams returns the default file extension and the chooser wildcard.
// known is false for custom formats, whose extension is not fixed.
func (f NetlistFormat) FileParams() (ext, wildcard string, known bool) {
	switch f.Kind {
	case FormatSpice:
		return "cir", "Spice netlist file (*.cir)|*.cir", true
	case FormatCadStar:
		return "frp", "CadStar netlist file (*.frp)|*.frp", true
	case FormatPcbnew, FormatOrcadPCB2:
		return "net", "KiCad netlist file (*.net)|*.net", true
	default:
		return "", "All files (*)|*", false
	}
}

// ParseFormatName maps a fixed page name to its format, case-insensitively
func ParseFormatName(name string) (NetlistFormat, bool) {
	for _, f := range FixedFormats() {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return NetlistFormat{}, false
}

// NetlistOptions is the option bitmask handed to the netlist writer
type NetlistOptions uint

const (
	// OptAdjustPassiveValues reformats passive values, e.g. 1M -> 1Meg (Spice only)
	OptAdjustPassiveValues NetlistOptions = 1 << iota
)

// Has reports whether all bits of o2 are set
func (o NetlistOptions) Has(o2 NetlistOptions) bool {
	return o&o2 == o2
}

// DialogResult is the code a netlist dialog session ends with
type DialogResult int

const (
	ResultCancel DialogResult = iota
	ResultOK
	// ResultPluginChanged tells the caller to reopen the dialog so the
	// generator tabs are rebuilt
	ResultPluginChanged
)

// String implements fmt.Stringer
func (r DialogResult) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultPluginChanged:
		return "plugin-changed"
	default:
		return "cancel"
	}
}

// DesignInfo describes where a netlist came from
type DesignInfo struct {
	Source string `json:"source" xml:"source"`
	Date   string `json:"date" xml:"date"`
	Tool   string `json:"tool" xml:"tool"`
}

// Component is one placed symbol
type Component struct {
	Ref       string `json:"ref"`
	Value     string `json:"value"`
	Footprint string `json:"footprint,omitempty"`
	Library   string `json:"library,omitempty"`
	Part      string `json:"part,omitempty"`
	Timestamp string `json:"tstamp,omitempty"`
}

// Node is one component pin attached to a net
type Node struct {
	Ref string `json:"ref"`
	Pin string `json:"pin"`
}

// Net is one electrical connection
type Net struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
}

// Netlist is the in-memory netlist built from a design
type Netlist struct {
	Design     DesignInfo  `json:"design"`
	Components []Component `json:"components"`
	Nets       []Net       `json:"nets"`
}

// Component returns the component with the given reference
func (n *Netlist) Component(ref string) (Component, bool) {
	for _, c := range n.Components {
		if c.Ref == ref {
			return c, true
		}
	}
	return Component{}, false
}

// PinNets returns, for one component, its pins mapped to net names
func (n *Netlist) PinNets(ref string) map[string]string {
	pins := make(map[string]string)
	for _, net := range n.Nets {
		for _, node := range net.Nodes {
			if node.Ref == ref {
				pins[node.Pin] = net.Name
			}
		}
	}
	return pins
}

// NetlistConfig contains netlist dialog settings
type NetlistConfig struct {
	MaxCustomTargets int    `json:"max_custom_targets" mapstructure:"max_custom_targets"`
	IntermediateExt  string `json:"intermediate_ext" mapstructure:"intermediate_ext"`
	Shell            string `json:"shell" mapstructure:"shell"`
}

// ProjectConfig contains the per-project settings owned by the host editor
type ProjectConfig struct {
	NetlistFormat            string `json:"netlist_format" mapstructure:"netlist_format"`
	SimulatorCommand         string `json:"simulator_command" mapstructure:"simulator_command"`
	SpiceAdjustPassiveValues bool   `json:"spice_adjust_passive_values" mapstructure:"spice_adjust_passive_values"`
	NetlisterCommand         string `json:"netlister_command" mapstructure:"netlister_command"`
}

// UIConfig contains UI preferences
type UIConfig struct {
	Theme     string `json:"theme" mapstructure:"theme"`
	ShowHelp  bool   `json:"show_help" mapstructure:"show_help"`
	Mouse     bool   `json:"mouse" mapstructure:"mouse"`
	ColorMode string `json:"color_mode" mapstructure:"color_mode"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	Output string `json:"output" mapstructure:"output"`
	File   string `json:"file" mapstructure:"file"`
}

// Config represents the complete application configuration
type Config struct {
	Netlist NetlistConfig `json:"netlist" mapstructure:"netlist"`
	Project ProjectConfig `json:"project" mapstructure:"project"`
	UI      UIConfig      `json:"ui" mapstructure:"ui"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeConfiguration
	ErrorTypeNetlist
	ErrorTypeExport
	ErrorTypeProcess
	ErrorTypeUI
)

// NetlistError represents application-specific errors
type NetlistError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Cause     error                  `json:"cause,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Code      string                 `json:"code"`
}

// Error implements the error interface
func (e *NetlistError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *NetlistError) Unwrap() error {
	return e.Cause
}
