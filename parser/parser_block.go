/*
File    : rant/parser/parser_block.go
Package : parser

BlockParser (spec.md §4.C): reads `{branch|branch|...}`, each branch
optionally prefixed by a weight `(n)`. The preceding [rep]/[sep]/[before]/
[after]/[sync] tags (collected in Parser.pending) are attached to the Block
once its branches are parsed.
*/
package parser

import (
	"strconv"

	"github.com/mouzizhang/rant/lexer"
	"github.com/mouzizhang/rant/rst"
)

func (p *Parser) parseBlock() rst.Node {
	open, err := p.reader.ReadKind(lexer.KindLBrace, "block open '{'")
	if err != nil {
		p.errorAt(p.reader.Peek(), "parser.expected-block", "expected block '{'")
		return rst.NewLiteral("", spanOf(p.reader.Peek()))
	}

	var branches []rst.Node
	var weights []float64

	for {
		weight := 0.0
		if p.reader.PeekLoose().Kind == lexer.KindLParen {
			p.reader.ReadLoose()
			if w, ok := p.readWeight(); ok {
				weight = w
			}
			if _, err := p.reader.ReadLooseKind(lexer.KindRParen, "branch weight close ')'"); err != nil {
				p.errorAt(p.reader.Peek(), "parser.unclosed-weight", "branch weight is missing its closing ')'")
			}
		}

		branch := p.parseMain([]lexer.Kind{lexer.KindPipe, lexer.KindRBrace})
		branches = append(branches, branch)
		weights = append(weights, weight)

		tok := p.reader.Peek()
		if tok.Kind == lexer.KindPipe {
			p.reader.Read()
			continue
		}
		if tok.Kind == lexer.KindRBrace {
			p.reader.Read()
			break
		}
		p.errorAt(tok, "parser.unclosed-block", "block starting at %s is missing its closing '}'", spanOf(open))
		p.synchronize(lexer.KindRBrace)
		if p.reader.PeekType() == lexer.KindRBrace {
			p.reader.Read()
		}
		break
	}

	block := rst.NewBlock(branches, weights, spanOf(open))
	block.Rep = p.pending.rep
	block.Sep = p.pending.sep
	block.Before = p.pending.before
	block.After = p.pending.after
	block.SyncName = p.pending.sync
	block.SelectorName = p.pending.selector
	p.pending.clear()
	return block
}

// readWeight reads a digit run (optionally fractional, "N" or "N.N") as a
// branch weight.
func (p *Parser) readWeight() (float64, bool) {
	tok := p.reader.PeekLoose()
	if tok.Kind != lexer.KindDigitRun {
		return 0, false
	}
	whole := p.reader.ReadLoose().Value
	text := whole
	if p.reader.PeekLoose().Kind == lexer.KindDot {
		p.reader.ReadLoose()
		if frac := p.reader.PeekLoose(); frac.Kind == lexer.KindDigitRun {
			text += "." + p.reader.ReadLoose().Value
		}
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
