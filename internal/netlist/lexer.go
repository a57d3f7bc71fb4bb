package netlist

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SexpLexer tokenises KiCad-style S-expression netlists
var SexpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},

	// Quoted strings with backslash escapes
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	// Anything else up to a delimiter: keywords, numbers, bare net names
	{Name: "Symbol", Pattern: `[^\s()"]+`},
})
