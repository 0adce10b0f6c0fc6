/*
File    : rant/lexer/reader.go
Package : lexer

Reader wraps a token slice with the lookahead/consume operations the parser
framework needs, including "loose" variants that transparently skip
whitespace tokens. The only way back to an already-consumed token is an
explicit Mark/Reset pair; apart from that, each production commits to its
decisions as it makes them.
*/
package lexer

import (
	"fmt"

	"github.com/mouzizhang/rant/diagnostic"
)

// Reader provides peek/read access over a fixed token slice.
type Reader struct {
	tokens []Token
	pos    int
}

// NewReader wraps a token slice (as produced by Lex) in a Reader positioned
// at its first token.
func NewReader(tokens []Token) *Reader {
	return &Reader{tokens: tokens}
}

// current returns the token at the reader's position, clamping to the final
// (always KindEOS) token if the position has run past the end.
func (r *Reader) current() Token {
	if r.pos >= len(r.tokens) {
		return r.tokens[len(r.tokens)-1]
	}
	return r.tokens[r.pos]
}

// Peek returns the next token without consuming it.
func (r *Reader) Peek() Token {
	return r.current()
}

// PeekType returns the Kind of the next token without consuming it.
func (r *Reader) PeekType() Kind {
	return r.current().Kind
}

// Read consumes and returns the next token unconditionally.
func (r *Reader) Read() Token {
	tok := r.current()
	if r.pos < len(r.tokens) {
		r.pos++
	}
	return tok
}

// ReadErr is returned by Read(kind, label) when the actual token kind does
// not match what was expected. The reader position is left at the
// offending token (it is not consumed).
type ReadErr struct {
	Span     diagnostic.Span
	Expected Kind
	Actual   Token
	Label    string
}

func (e *ReadErr) Error() string {
	return fmt.Sprintf("expected %s (%s) but found %s %q", e.Expected, e.Label, e.Actual.Kind, e.Actual.Value)
}

func toSpan(t Token) diagnostic.Span {
	return diagnostic.Span{Offset: t.Offset, Line: t.Line, Col: t.Col, Length: len(t.Value)}
}

// ReadKind consumes the next token only if it has the expected Kind. On a
// mismatch it returns a *ReadErr naming both the expected kind and the
// caller-supplied label, and leaves the reader position unchanged.
func (r *Reader) ReadKind(kind Kind, label string) (Token, error) {
	tok := r.current()
	if tok.Kind != kind {
		return Token{}, &ReadErr{Span: toSpan(tok), Expected: kind, Actual: tok, Label: label}
	}
	return r.Read(), nil
}

// End reports whether the reader has reached the end-of-stream token.
func (r *Reader) End() bool {
	return r.current().Kind == KindEOS
}

// skipWhitespace advances past any run of whitespace tokens at the current
// position without consuming anything else.
func (r *Reader) skipWhitespace() {
	for !r.End() && r.current().Kind == KindWhitespace {
		r.pos++
	}
}

// PeekLoose returns the next non-whitespace token without consuming
// anything (including the whitespace it skipped over).
func (r *Reader) PeekLoose() Token {
	save := r.pos
	r.skipWhitespace()
	tok := r.current()
	r.pos = save
	return tok
}

// ReadLoose skips any leading whitespace and then consumes and returns the
// next non-whitespace token.
func (r *Reader) ReadLoose() Token {
	r.skipWhitespace()
	return r.Read()
}

// ReadLooseKind skips leading whitespace, then behaves like ReadKind.
func (r *Reader) ReadLooseKind(kind Kind, label string) (Token, error) {
	r.skipWhitespace()
	return r.ReadKind(kind, label)
}

// Mark returns an opaque position token that Reset can later rewind to.
// Productions should use this only for bounded single-step lookahead
// decisions (e.g. "is the next construct a subtype or an exclusivity
// sigil?"), never to backtrack across a production boundary.
func (r *Reader) Mark() int {
	return r.pos
}

// Reset rewinds the reader to a position previously returned by Mark.
func (r *Reader) Reset(pos int) {
	r.pos = pos
}
