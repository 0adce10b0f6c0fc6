/*
File    : rant/parser/parser_escape.go
Package : parser

EscapeParser turns one lexer.KindEscape token into its RST: a literal
character for the constant escapes (\n \t \r \s and the escaped
delimiters), or an rst.RandomChar node for the random-draw escapes (\x \c
\d \N and their digit-count-prefixed form \8,x).
*/
package parser

import (
	"strconv"
	"strings"

	"github.com/mouzizhang/rant/lexer"
	"github.com/mouzizhang/rant/rst"
)

var literalEscapes = map[string]string{
	"n": "\n", "t": "\t", "r": "\r", "s": " ",
	"\\": "\\", "{": "{", "}": "}", "[": "[", "]": "]",
	"<": "<", ">": ">", "|": "|", "$": "$", "@": "@", "%": "%",
}

// parseEscape converts the given escape token's Value (the text after the
// backslash) into a Node.
func (p *Parser) parseEscape(tok lexer.Token) rst.Node {
	span := spanOf(tok)
	if lit, ok := literalEscapes[tok.Value]; ok {
		return rst.NewLiteral(lit, span)
	}

	// Random-draw escapes: a bare specifier ("x", "c", "d", "N") or a
	// digit-count-prefixed form ("8,x").
	if idx := strings.IndexByte(tok.Value, ','); idx >= 0 {
		count, err := strconv.Atoi(tok.Value[:idx])
		if err != nil || idx+1 >= len(tok.Value) {
			p.errorAt(tok, "parser.bad-escape", "malformed digit-count escape %q", tok.Value)
			return rst.NewLiteral("", span)
		}
		kind := tok.Value[idx+1]
		return rst.NewRandomChar(kind, count, span)
	}
	if len(tok.Value) == 1 {
		switch tok.Value[0] {
		case 'x', 'c', 'd', 'N':
			return rst.NewRandomChar(tok.Value[0], 1, span)
		}
	}
	p.errorAt(tok, "parser.bad-escape", "unrecognized escape %q", tok.Value)
	return rst.NewLiteral("", span)
}
