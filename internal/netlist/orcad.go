package netlist

import (
	"io"

	"github.com/nettracex/netlistx/internal/domain"
)

// WriteOrcadPCB2 writes the parenthesised OrcadPCB2 netlist
func WriteOrcadPCB2(w io.Writer, nl *domain.Netlist, date string) error {
	lw := &lineWriter{w: w}

	lw.printf("( { EESchema Netlist Version 1.1 created  %s }\n", date)
	for _, c := range nl.Components {
		if !exported(c) {
			continue
		}

		tstamp := c.Timestamp
		if tstamp == "" {
			tstamp = "00000000"
		}
		footprint := c.Footprint
		if footprint == "" {
			footprint = "$noname"
		}
		value := blankless(c.Value)
		if value == "" {
			value = "~"
		}

		lw.printf(" ( %s %s  %s %s", tstamp, blankless(footprint), c.Ref, value)
		if c.Part != "" {
			lw.printf(" {Lib=%s}", c.Part)
		}
		lw.printf("\n")
		for _, p := range componentPins(nl, c.Ref) {
			net := blankless(p.Net)
			if net == "" {
				net = "?"
			}
			lw.printf("  ( %4s %s )\n", p.Pin, net)
		}
		lw.printf(" )\n")
	}
	lw.printf(")\n*\n")

	return lw.err
}
