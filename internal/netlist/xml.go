package netlist

import (
	"encoding/xml"
	"io"

	"github.com/nettracex/netlistx/internal/domain"
)

type xmlExport struct {
	XMLName    xml.Name  `xml:"export"`
	Version    string    `xml:"version,attr"`
	Design     xmlDesign `xml:"design"`
	Components []xmlComp `xml:"components>comp"`
	Nets       []xmlNet  `xml:"nets>net"`
}

type xmlDesign struct {
	Source string `xml:"source"`
	Date   string `xml:"date"`
	Tool   string `xml:"tool"`
}

type xmlComp struct {
	Ref       string        `xml:"ref,attr"`
	Value     string        `xml:"value"`
	Footprint string        `xml:"footprint,omitempty"`
	Libsource *xmlLibsource `xml:"libsource,omitempty"`
	Tstamp    string        `xml:"tstamp,omitempty"`
}

type xmlLibsource struct {
	Lib  string `xml:"lib,attr"`
	Part string `xml:"part,attr"`
}

type xmlNet struct {
	Code  int       `xml:"code,attr"`
	Name  string    `xml:"name,attr"`
	Nodes []xmlNode `xml:"node"`
}

type xmlNode struct {
	Ref string `xml:"ref,attr"`
	Pin string `xml:"pin,attr"`
}

// WriteXML writes the generic XML netlist that custom generators consume
func WriteXML(w io.Writer, nl *domain.Netlist, date string) error {
	doc := xmlExport{
		Version: "D",
		Design:  xmlDesign{Source: nl.Design.Source, Date: date, Tool: ToolName},
	}

	for _, c := range nl.Components {
		if !exported(c) {
			continue
		}
		comp := xmlComp{Ref: c.Ref, Value: c.Value, Footprint: c.Footprint, Tstamp: c.Timestamp}
		if c.Library != "" || c.Part != "" {
			comp.Libsource = &xmlLibsource{Lib: c.Library, Part: c.Part}
		}
		doc.Components = append(doc.Components, comp)
	}

	for _, n := range nl.Nets {
		net := xmlNet{Code: n.Code, Name: n.Name}
		for _, node := range n.Nodes {
			net.Nodes = append(net.Nodes, xmlNode{Ref: node.Ref, Pin: node.Pin})
		}
		doc.Nets = append(doc.Nets, net)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
