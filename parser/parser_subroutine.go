/*
File    : rant/parser/parser_subroutine.go
Package : parser

SubroutineParser (spec.md §4.F): reads `$name(p1,p2){body}` as a
definition and `$name(a1,a2)` as a call. The two forms share a prefix —
`$name(...)` — and are disambiguated by speculatively parsing the
parenthesized list as bare parameter names and checking whether a `{`
immediately follows the closing `)`; if not, the reader is rewound and
the list is reparsed as call arguments (arbitrary nested patterns).
*/
package parser

import (
	"github.com/mouzizhang/rant/lexer"
	"github.com/mouzizhang/rant/rst"
)

func (p *Parser) parseSubroutine() rst.Node {
	open, err := p.reader.ReadKind(lexer.KindDollar, "subroutine sigil '$'")
	if err != nil {
		p.errorAt(p.reader.Peek(), "parser.expected-subroutine", "expected subroutine '$'")
		return rst.NewLiteral("", spanOf(p.reader.Peek()))
	}
	span := spanOf(open)

	name := p.reader.ReadLoose().Value

	if p.reader.PeekLoose().Kind != lexer.KindLParen {
		p.errorAt(p.reader.Peek(), "parser.expected-sub-args", "subroutine %q is missing its '(...)' argument list", name)
		return rst.NewLiteral("", span)
	}
	p.reader.ReadLoose()

	mark := p.reader.Mark()
	if params, ok := p.tryParamList(); ok {
		body := p.descend(frameSubroutine, func() rst.Node {
			return p.parseMain([]lexer.Kind{lexer.KindRBrace})
		})
		if _, err := p.reader.ReadKind(lexer.KindRBrace, "subroutine body close '}'"); err != nil {
			p.errorAt(p.reader.Peek(), "parser.unclosed-sub-body", "subroutine %q's body is missing its closing '}'", name)
		}
		return rst.NewSubroutineDef(name, params, body, span)
	}
	p.reader.Reset(mark)

	args := p.parseCallArgs()
	if _, err := p.reader.ReadKind(lexer.KindRParen, "subroutine call argument list close ')'"); err != nil {
		p.errorAt(p.reader.Peek(), "parser.unclosed-sub-call", "call to %q is missing its closing ')'", name)
	}
	return rst.NewSubroutineCall(name, args, span)
}

// tryParamList speculatively parses a comma-separated list of bare
// parameter names up to ')' followed immediately by '{'. It returns
// ok=false (leaving the reader position undefined — callers must Reset
// to a saved mark) if the list doesn't fit that shape, so the caller can
// fall back to parsing it as call arguments instead.
func (p *Parser) tryParamList() ([]string, bool) {
	var params []string
	if p.reader.PeekLoose().Kind == lexer.KindRParen {
		p.reader.ReadLoose()
	} else {
		for {
			tok := p.reader.PeekLoose()
			if tok.Kind != lexer.KindText {
				return nil, false
			}
			params = append(params, p.reader.ReadLoose().Value)
			next := p.reader.PeekLoose()
			if next.Kind == lexer.KindComma {
				p.reader.ReadLoose()
				continue
			}
			if next.Kind == lexer.KindRParen {
				p.reader.ReadLoose()
				break
			}
			return nil, false
		}
	}
	if p.reader.PeekLoose().Kind != lexer.KindLBrace {
		return nil, false
	}
	p.reader.ReadLoose()
	return params, true
}

// parseCallArgs reads zero or more comma-separated argument patterns up to
// (but not consuming) the closing ')'.
func (p *Parser) parseCallArgs() []rst.Node {
	if p.reader.PeekType() == lexer.KindRParen {
		return nil
	}
	var args []rst.Node
	for {
		args = append(args, p.parseMain([]lexer.Kind{lexer.KindComma, lexer.KindRParen}))
		if p.reader.PeekType() == lexer.KindComma {
			p.reader.Read()
			continue
		}
		break
	}
	return args
}
