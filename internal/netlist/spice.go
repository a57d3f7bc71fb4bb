package netlist

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nettracex/netlistx/internal/domain"
)

var (
	// 4k7, 2M2, 4R7: the multiplier stands in for the decimal point
	infixMultiplier = regexp.MustCompile(`^([0-9]+)([pnumkKMGR])([0-9]+)(.*)$`)
	// M means milli to a simulator; mega is spelled Meg
	megaSuffix = regexp.MustCompile(`^([0-9.]+)M($|[^e].*$)`)
)

// AdjustPassiveValue rewrites a resistor, capacitor or inductor value into
// notation a simulator reads the way the designer meant it
func AdjustPassiveValue(value string) string {
	if m := infixMultiplier.FindStringSubmatch(value); m != nil {
		mult := m[2]
		if mult == "R" {
			mult = ""
		}
		value = m[1] + "." + m[3] + mult + m[4]
	}

	if m := megaSuffix.FindStringSubmatch(value); m != nil {
		value = m[1] + "Meg" + m[2]
	}

	return value
}

// isPassive reports whether the reference designates an R, C or L
func isPassive(ref string) bool {
	if ref == "" {
		return false
	}
	switch ref[0] {
	case 'R', 'C', 'L', 'r', 'c', 'l':
		return true
	}
	return false
}

// spiceNode maps a net name to a simulator node name. Ground is node 0.
func spiceNode(net, ref, pin string) string {
	switch strings.ToUpper(strings.TrimPrefix(net, "/")) {
	case "":
		return fmt.Sprintf("NC_%s_%s", ref, pin)
	case "GND", "0":
		return "0"
	}
	return blankless(strings.TrimPrefix(net, "/"))
}

// WriteSpice writes a Spice deck: one element line per component with its
// nodes in pin order, followed by .end
func WriteSpice(w io.Writer, nl *domain.Netlist, date string, adjustPassiveValues bool) error {
	lw := &lineWriter{w: w}

	title := strings.TrimSuffix(filepath.Base(nl.Design.Source), filepath.Ext(nl.Design.Source))
	if nl.Design.Source == "" {
		title = "netlist"
	}

	lw.printf("* %s\n", nl.Design.Source)
	lw.printf("* Spice netlist generated by %s on %s\n", ToolName, date)
	lw.printf(".title %s\n\n", title)

	for _, c := range nl.Components {
		if !exported(c) {
			continue
		}

		value := c.Value
		if adjustPassiveValues && isPassive(c.Ref) {
			value = AdjustPassiveValue(value)
		}

		lw.printf("%s", c.Ref)
		for _, p := range componentPins(nl, c.Ref) {
			lw.printf(" %s", spiceNode(p.Net, c.Ref, p.Pin))
		}
		lw.printf(" %s\n", blankless(value))
	}

	lw.printf("\n.end\n")
	return lw.err
}
