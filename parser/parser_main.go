/*
File    : rant/parser/parser_main.go
Package : parser

MainParser (spec.md §4.C): reads free text and dispatches on sentinel
characters, accumulating the results into a Sequence until it reaches one
of the caller-supplied terminator kinds (or end-of-stream).
*/
package parser

import (
	"strings"

	"github.com/mouzizhang/rant/lexer"
	"github.com/mouzizhang/rant/rst"
)

// parseMain is the top-level free-text/dispatch loop shared by the
// top-level pattern, block branches, tag arguments, and subroutine bodies.
// terminators names the token kinds that end this run without being
// consumed (the caller reads its own closing delimiter).
func (p *Parser) parseMain(terminators []lexer.Kind) rst.Node {
	var children []rst.Node
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			children = append(children, rst.NewLiteral(text.String(), spanOf(p.reader.Peek())))
			text.Reset()
		}
	}

	for {
		tok := p.reader.Peek()
		if isMainTerminator(tok.Kind, terminators) {
			break
		}

		switch tok.Kind {
		case lexer.KindText, lexer.KindWhitespace, lexer.KindDigitRun:
			p.reader.Read()
			text.WriteString(tok.Value)
		case lexer.KindEscape:
			p.reader.Read()
			flush()
			children = append(children, p.parseEscape(tok))
		case lexer.KindLBrace:
			flush()
			children = append(children, p.descend(frameBlock, p.parseBlock))
		case lexer.KindLBracket:
			flush()
			children = append(children, p.descend(frameTag, p.parseTagOrSpecial))
		case lexer.KindLAngle:
			flush()
			children = append(children, p.parseQuery())
		case lexer.KindDollar:
			flush()
			children = append(children, p.descend(frameSubroutine, p.parseSubroutine))
		case lexer.KindAt:
			flush()
			children = append(children, p.descend(frameList, p.parseList))
		case lexer.KindPercent:
			flush()
			children = append(children, p.descend(frameReplace, p.parseReplace))
		default:
			// Any other punctuation token appearing in free-text position
			// (',', ':', ';', '(', ')', '/', '-', '~', '?', '!', '.') is
			// plain literal text outside a construct that reserves it.
			p.reader.Read()
			text.WriteString(tok.Value)
		}
	}

	flush()
	return rst.NewSequence(children, spanOf(p.reader.Peek()))
}
