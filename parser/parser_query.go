/*
File    : rant/parser/parser_query.go
Package : parser

QueryParser (spec.md §4.D): delegates the `<...>` query sublanguage to
query.Parse, which owns its own grammar and diagnostics, and wraps the
result in an rst.QueryNode. A fatal query parse error (no closing '>'
anywhere in the stream) is recorded as a diagnostic and the query becomes
an empty literal; query.Parse has by then consumed the input up to the
end of the stream.
*/
package parser

import (
	"github.com/mouzizhang/rant/query"
	"github.com/mouzizhang/rant/rst"
)

func (p *Parser) parseQuery() rst.Node {
	open := p.reader.Peek()
	span := spanOf(open)

	q, diags, err := query.Parse(p.reader)
	p.diags = append(p.diags, diags...)
	if err != nil {
		p.errorAt(open, "parser.unclosed-query", "%s", err.Error())
		return rst.NewLiteral("", span)
	}
	return rst.NewQueryNode(q, span)
}
