package netlist

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nettracex/netlistx/internal/domain"
)

// lineWriter remembers the first write error so formatters can print
// without checking every call
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...interface{}) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}

// exported reports whether a component belongs in an exported netlist.
// Power symbols carry a '#' reference and have no physical part.
func exported(c domain.Component) bool {
	return !strings.HasPrefix(c.Ref, "#")
}

// pinNet is one component pin and the net it is attached to
type pinNet struct {
	Pin string
	Net string
}

// componentPins returns the pins of ref in natural order
func componentPins(nl *domain.Netlist, ref string) []pinNet {
	var pins []pinNet
	for pin, net := range nl.PinNets(ref) {
		pins = append(pins, pinNet{Pin: pin, Net: net})
	}
	sort.Slice(pins, func(i, j int) bool {
		return lessPin(pins[i].Pin, pins[j].Pin)
	})
	return pins
}

// lessPin orders numeric pins numerically and everything else lexically
// after them
func lessPin(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// blankless replaces whitespace so a value stays one token
func blankless(s string) string {
	return strings.Join(strings.Fields(s), "_")
}
