/*
File    : rant/parser/parser_replace.go
Package : parser

ReplaceParser (spec.md §3's data model): reads `%name%` as a variable
read, bound to rst.GetVar — the counterpart to `[set:name;value]`'s
rst.SetVar. This is distinct from `[get:name]`, which declares a target
region for a later `[send:name;text]` (rst.Target), not a variable read.
*/
package parser

import (
	"github.com/mouzizhang/rant/lexer"
	"github.com/mouzizhang/rant/rst"
)

func (p *Parser) parseReplace() rst.Node {
	open, err := p.reader.ReadKind(lexer.KindPercent, "variable sigil '%'")
	if err != nil {
		p.errorAt(p.reader.Peek(), "parser.expected-replace", "expected variable '%%'")
		return rst.NewLiteral("", spanOf(p.reader.Peek()))
	}
	span := spanOf(open)

	nameTok := p.reader.ReadLoose()
	if nameTok.Kind != lexer.KindText {
		p.errorAt(nameTok, "parser.expected-var-name", "expected a variable name after '%%'")
		return rst.NewLiteral("", span)
	}
	name := nameTok.Value

	if _, err := p.reader.ReadKind(lexer.KindPercent, "variable close '%'"); err != nil {
		p.errorAt(p.reader.Peek(), "parser.unclosed-var", "variable %q is missing its closing '%%'", name)
	}

	return rst.NewGetVar(name, span)
}
