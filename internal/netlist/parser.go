package netlist

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/nettracex/netlistx/internal/domain"
)

// Parser reads KiCad-style `(export ...)` netlists
type Parser struct {
	parser *participle.Parser[Document]
}

// NewParser creates a new netlist parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Document](
		participle.Lexer(SexpLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a netlist from a reader
func (p *Parser) Parse(r io.Reader) (*domain.Netlist, error) {
	doc, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return Convert(doc)
}

// ParseString parses a netlist from a string
func (p *Parser) ParseString(input string) (*domain.Netlist, error) {
	doc, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return Convert(doc)
}

// ParseFile parses a netlist from a file path
func (p *Parser) ParseFile(filename string) (*domain.Netlist, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Convert maps the `(export (design ...) (components ...) (nets ...))` tree
// onto the domain netlist
func Convert(doc *Document) (*domain.Netlist, error) {
	root := doc.Root
	if root == nil || root.Head != "export" {
		return nil, fmt.Errorf("not a netlist: root list must be (export ...)")
	}

	nl := &domain.Netlist{}

	if design := root.Child("design"); design != nil {
		nl.Design = domain.DesignInfo{
			Source: design.ChildValue("source"),
			Date:   design.ChildValue("date"),
			Tool:   design.ChildValue("tool"),
		}
	}

	for _, comp := range root.Child("components").Children("comp") {
		ref := comp.ChildValue("ref")
		if ref == "" {
			return nil, fmt.Errorf("component without reference")
		}
		libsource := comp.Child("libsource")
		nl.Components = append(nl.Components, domain.Component{
			Ref:       ref,
			Value:     comp.ChildValue("value"),
			Footprint: comp.ChildValue("footprint"),
			Library:   libsource.ChildValue("lib"),
			Part:      libsource.ChildValue("part"),
			Timestamp: comp.ChildValue("tstamp"),
		})
	}

	for i, n := range root.Child("nets").Children("net") {
		code := i + 1
		if raw := n.ChildValue("code"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("net %q: invalid code %q", n.ChildValue("name"), raw)
			}
			code = parsed
		}

		net := domain.Net{Code: code, Name: n.ChildValue("name")}
		for _, node := range n.Children("node") {
			net.Nodes = append(net.Nodes, domain.Node{
				Ref: node.ChildValue("ref"),
				Pin: node.ChildValue("pin"),
			})
		}
		nl.Nets = append(nl.Nets, net)
	}

	return nl, nil
}
