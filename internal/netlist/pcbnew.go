package netlist

import (
	"io"
	"strconv"

	"github.com/nettracex/netlistx/internal/domain"
)

// WritePcbnew writes the S-expression netlist read by the board editor. The
// output parses back with Parser.
func WritePcbnew(w io.Writer, nl *domain.Netlist, date string) error {
	lw := &lineWriter{w: w}
	q := strconv.Quote

	lw.printf("(export (version D)\n")
	lw.printf("  (design\n")
	lw.printf("    (source %s)\n", q(nl.Design.Source))
	lw.printf("    (date %s)\n", q(date))
	lw.printf("    (tool %s))\n", q(ToolName))

	lw.printf("  (components")
	for _, c := range nl.Components {
		if !exported(c) {
			continue
		}
		lw.printf("\n    (comp (ref %s)\n", q(c.Ref))
		lw.printf("      (value %s)", q(c.Value))
		if c.Footprint != "" {
			lw.printf("\n      (footprint %s)", q(c.Footprint))
		}
		if c.Library != "" || c.Part != "" {
			lw.printf("\n      (libsource (lib %s) (part %s))", q(c.Library), q(c.Part))
		}
		if c.Timestamp != "" {
			lw.printf("\n      (tstamp %s)", q(c.Timestamp))
		}
		lw.printf(")")
	}
	lw.printf(")\n")

	lw.printf("  (nets")
	for _, n := range nl.Nets {
		lw.printf("\n    (net (code %d) (name %s)", n.Code, q(n.Name))
		for _, node := range n.Nodes {
			lw.printf("\n      (node (ref %s) (pin %s))", q(node.Ref), q(node.Pin))
		}
		lw.printf(")")
	}
	lw.printf("))\n")

	return lw.err
}
