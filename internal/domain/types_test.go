package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedFormatsOrder(t *testing.T) {
	formats := FixedFormats()

	assert.Len(t, formats, 4)
	assert.Equal(t, "Pcbnew", formats[0].Name())
	assert.Equal(t, "OrcadPCB2", formats[1].Name())
	assert.Equal(t, "CadStar", formats[2].Name())
	assert.Equal(t, "Spice", formats[3].Name())
	for _, f := range formats {
		assert.False(t, f.IsCustom())
	}
}

func TestCustomFormat(t *testing.T) {
	f := CustomFormat(2)

	assert.True(t, f.IsCustom())
	assert.Equal(t, 2, f.Slot)
	assert.Equal(t, "Custom3", f.String())
	assert.NotEqual(t, CustomFormat(1), f)
}

func TestFileParams(t *testing.T) {
	tests := []struct {
		format   NetlistFormat
		ext      string
		known    bool
		wildcard string
	}{
		{PcbnewFormat, "net", true, "*.net"},
		{OrcadPCB2Format, "net", true, "*.net"},
		{CadStarFormat, "frp", true, "*.frp"},
		{SpiceFormat, "cir", true, "*.cir"},
		{CustomFormat(0), "", false, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			ext, wildcard, known := tt.format.FileParams()
			assert.Equal(t, tt.ext, ext)
			assert.Equal(t, tt.known, known)
			assert.Contains(t, wildcard, tt.wildcard)
		})
	}
}

func TestParseFormatName(t *testing.T) {
	f, ok := ParseFormatName("spice")
	assert.True(t, ok)
	assert.Equal(t, SpiceFormat, f)

	f, ok = ParseFormatName("ORCADPCB2")
	assert.True(t, ok)
	assert.Equal(t, OrcadPCB2Format, f)

	_, ok = ParseFormatName("MyGen")
	assert.False(t, ok)
}

func TestNetlistOptions(t *testing.T) {
	var opts NetlistOptions
	assert.False(t, opts.Has(OptAdjustPassiveValues))

	opts |= OptAdjustPassiveValues
	assert.True(t, opts.Has(OptAdjustPassiveValues))
}

func TestDialogResultString(t *testing.T) {
	assert.Equal(t, "ok", ResultOK.String())
	assert.Equal(t, "plugin-changed", ResultPluginChanged.String())
	assert.Equal(t, "cancel", ResultCancel.String())
}

func TestNetlistLookups(t *testing.T) {
	nl := &Netlist{
		Components: []Component{
			{Ref: "R1", Value: "10k"},
			{Ref: "C1", Value: "100n"},
		},
		Nets: []Net{
			{Code: 1, Name: "GND", Nodes: []Node{{Ref: "R1", Pin: "2"}, {Ref: "C1", Pin: "2"}}},
			{Code: 2, Name: "VIN", Nodes: []Node{{Ref: "R1", Pin: "1"}}},
		},
	}

	c, ok := nl.Component("C1")
	assert.True(t, ok)
	assert.Equal(t, "100n", c.Value)

	_, ok = nl.Component("U1")
	assert.False(t, ok)

	pins := nl.PinNets("R1")
	assert.Equal(t, map[string]string{"1": "VIN", "2": "GND"}, pins)
}

func TestNetlistError(t *testing.T) {
	cause := errors.New("file not found")
	err := &NetlistError{
		Type:      ErrorTypeNetlist,
		Message:   "netlist source unavailable",
		Cause:     cause,
		Timestamp: time.Now(),
		Code:      "NETLIST_SOURCE_MISSING",
	}

	assert.Equal(t, "netlist source unavailable: file not found", err.Error())
	assert.True(t, errors.Is(err, cause))

	bare := &NetlistError{Message: "no cause"}
	assert.Equal(t, "no cause", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
