/*
File    : rant/parser/parser_list.go
Package : parser

ListParser (spec.md §3's data model): reads `@(item, item, ...)` into an
rst.ListLiteral, each item parsed as its own nested pattern.
*/
package parser

import (
	"github.com/mouzizhang/rant/lexer"
	"github.com/mouzizhang/rant/rst"
)

func (p *Parser) parseList() rst.Node {
	open, err := p.reader.ReadKind(lexer.KindAt, "list sigil '@'")
	if err != nil {
		p.errorAt(p.reader.Peek(), "parser.expected-list", "expected list '@'")
		return rst.NewLiteral("", spanOf(p.reader.Peek()))
	}
	span := spanOf(open)

	if _, err := p.reader.ReadKind(lexer.KindLParen, "list open '('"); err != nil {
		p.errorAt(p.reader.Peek(), "parser.expected-list-open", "list is missing its opening '('")
		return rst.NewLiteral("", span)
	}

	var items []rst.Node
	if p.reader.PeekType() != lexer.KindRParen {
		for {
			items = append(items, p.parseMain([]lexer.Kind{lexer.KindComma, lexer.KindRParen}))
			if p.reader.PeekType() == lexer.KindComma {
				p.reader.Read()
				continue
			}
			break
		}
	}

	if _, err := p.reader.ReadKind(lexer.KindRParen, "list close ')'"); err != nil {
		p.errorAt(p.reader.Peek(), "parser.unclosed-list", "list starting at %s is missing its closing ')'", span)
	}

	return rst.NewListLiteral(items, span)
}
