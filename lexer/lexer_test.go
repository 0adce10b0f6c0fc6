/*
File    : rant/lexer/lexer_test.go
Package : lexer
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLex_TextAndDelimiters(t *testing.T) {
	toks, err := Lex(`{a|b|c}`)
	assert.NoError(t, err)
	assert.Equal(t, []Kind{
		KindLBrace, KindText, KindPipe, KindText, KindPipe, KindText, KindRBrace, KindEOS,
	}, kinds(toks))
}

func TestLex_WhitespaceIsItsOwnToken(t *testing.T) {
	toks, err := Lex("a  b")
	assert.NoError(t, err)
	assert.Equal(t, []Kind{KindText, KindWhitespace, KindText, KindEOS}, kinds(toks))
	assert.Equal(t, "  ", toks[1].Value)
}

func TestLex_DigitRun(t *testing.T) {
	toks, err := Lex("[rep:123]")
	assert.NoError(t, err)
	assert.Equal(t, KindDigitRun, toks[3].Kind)
	assert.Equal(t, "123", toks[3].Value)
}

func TestLex_EscapeSimple(t *testing.T) {
	toks, err := Lex(`\n\s`)
	assert.NoError(t, err)
	assert.Equal(t, []Kind{KindEscape, KindEscape, KindEOS}, kinds(toks))
	assert.Equal(t, "n", toks[0].Value)
}

func TestLex_EscapeDigitCountPrefix(t *testing.T) {
	toks, err := Lex(`\8,x`)
	assert.NoError(t, err)
	assert.Equal(t, KindEscape, toks[0].Kind)
	assert.Equal(t, "8,x", toks[0].Value)
}

func TestLex_InvalidEscapeIsError(t *testing.T) {
	_, err := Lex(`\q`)
	assert.Error(t, err)
}

func TestLex_RegexLiteral(t *testing.T) {
	toks, err := Lex(`<noun?/^b/i>`)
	assert.NoError(t, err)
	var regexTok *Token
	for i := range toks {
		if toks[i].Kind == KindRegex {
			regexTok = &toks[i]
		}
	}
	if assert.NotNil(t, regexTok) {
		assert.Equal(t, "/^b/i", regexTok.Value)
	}
}

func TestLex_UnterminatedRegexFallsBackToSlash(t *testing.T) {
	toks, err := Lex(`a/b`)
	assert.NoError(t, err)
	assert.Equal(t, []Kind{KindText, KindSlash, KindText, KindEOS}, kinds(toks))
}

func TestLex_PositionsAreTracked(t *testing.T) {
	toks, err := Lex("ab\ncd")
	assert.NoError(t, err)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Col)
	// "cd" starts on line 2 after the embedded newline.
	var secondText Token
	found := false
	for _, tok := range toks {
		if tok.Kind == KindText && tok.Value == "cd" {
			secondText = tok
			found = true
		}
	}
	assert.True(t, found)
	assert.Equal(t, 2, secondText.Line)
}

func TestReader_LooseSkipsWhitespace(t *testing.T) {
	toks, err := Lex("a   b")
	assert.NoError(t, err)
	r := NewReader(toks)
	first := r.ReadLoose()
	assert.Equal(t, KindText, first.Kind)
	assert.Equal(t, "a", first.Value)
	second := r.ReadLoose()
	assert.Equal(t, KindText, second.Kind)
	assert.Equal(t, "b", second.Value)
}

func TestReader_ReadKindMismatchLeavesPosition(t *testing.T) {
	toks, err := Lex("{a}")
	assert.NoError(t, err)
	r := NewReader(toks)
	_, err = r.ReadKind(KindRBrace, "closing brace")
	assert.Error(t, err)
	// Position unchanged: next read still sees the '{'.
	assert.Equal(t, KindLBrace, r.Peek().Kind)
}
