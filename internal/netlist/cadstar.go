package netlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/nettracex/netlistx/internal/domain"
)

// WriteCadStar writes a CadStar .frp netlist
func WriteCadStar(w io.Writer, nl *domain.Netlist, date string) error {
	lw := &lineWriter{w: w}

	lw.printf(".HEA\n")
	lw.printf(".TIM %s\n", date)
	lw.printf(".APP %q\n", ToolName)
	lw.printf("\n.TYP FULL\n\n")

	for _, c := range nl.Components {
		if !exported(c) {
			continue
		}
		lw.printf(".ADD_COM %s %q\n", c.Ref, c.Value)
	}
	lw.printf("\n")

	for _, n := range nl.Nets {
		first := true
		for _, node := range n.Nodes {
			if strings.HasPrefix(node.Ref, "#") {
				continue
			}
			if first {
				lw.printf(".ADD_TER %s %s %q\n", node.Ref, node.Pin, cadstarNetName(n))
				first = false
				continue
			}
			lw.printf(".TER     %s %s\n", node.Ref, node.Pin)
		}
	}

	lw.printf("\n.END\n")
	return lw.err
}

// cadstarNetName strips the hierarchical sheet prefix, which CadStar does
// not accept
func cadstarNetName(n domain.Net) string {
	name := strings.TrimPrefix(n.Name, "/")
	if name == "" {
		return fmt.Sprintf("N-%06d", n.Code)
	}
	return name
}
