/*
File    : rant/parser/parser.go
Package : parser

Package parser implements spec.md §4.C: it turns a lexer.Reader's token
stream into a compiled rst.Node tree. Grounded on the teacher's
parser/parser.go (a Parser struct carrying reader state plus an Errors
slice that accumulates instead of panicking) and parser/parser_*.go (one
file per production). Nested constructs are parsed by ordinary recursive
descent: Parser.descend increments a depth counter, calls the nested
construct's parser as a Go function call, and decrements the counter on
return. There is no explicit frame stack; the depth counter capped at
maxDepth is what turns pathological nesting into a diagnostic.
*/
package parser

import (
	"github.com/mouzizhang/rant/diagnostic"
	"github.com/mouzizhang/rant/lexer"
	"github.com/mouzizhang/rant/rst"
)

// frameKind names the construct a descend call is parsing. descend accepts
// it from every call site but does not use it in its diagnostic or its
// depth check.
type frameKind string

const (
	frameMain       frameKind = "pattern"
	frameBlock      frameKind = "block"
	frameTag        frameKind = "tag"
	frameSubroutine frameKind = "subroutine"
	frameList       frameKind = "list"
	frameReplace    frameKind = "replace"
)

// maxDepth bounds nested-construct depth, matching spec.md §9's concern
// that deep nesting must not blow the host call stack; this is deliberately
// generous since descend still uses a Go call per frame, but it gives a
// clean diagnostic instead of a stack overflow on pathological input.
const maxDepth = 500

// Parser holds the reader and accumulated diagnostics for one compilation.
type Parser struct {
	reader *lexer.Reader
	diags  []diagnostic.Diagnostic
	depth  int

	// pending holds modifier tags ([rep], [sep], [before], [after],
	// [sync]) collected since the last Block was parsed; the next Block
	// parsed consumes and clears them (spec.md §4.C "BlockParser...").
	pending pendingModifiers
}

// pendingModifiers accumulates the modifier tags that precede a `{...}`
// block and attach to it once parsed.
type pendingModifiers struct {
	rep      rst.Node
	sep      rst.Node
	before   rst.Node
	after    rst.Node
	sync     string
	selector string
}

func (p *pendingModifiers) clear() { *p = pendingModifiers{} }

func (p *pendingModifiers) any() bool {
	return p.rep != nil || p.sep != nil || p.before != nil || p.after != nil || p.sync != ""
}

// Parse compiles source into a root rst.Node, collecting diagnostics along
// the way. It returns an error only for a lex failure (a malformed escape),
// which is unrecoverable.
func Parse(source string) (rst.Node, []diagnostic.Diagnostic, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, nil, err
	}
	p := &Parser{reader: lexer.NewReader(tokens)}
	root := p.descend(frameMain, func() rst.Node {
		return p.parseMain(nil)
	})
	return root, p.diags, nil
}

// descend runs fn as a nested frame, tracking depth for the diagnostic in
// case of pathological nesting. It is the seam every construct-specific
// parser calls through instead of invoking its child parser directly, so
// the frame stack stays visible in one place.
func (p *Parser) descend(kind frameKind, fn func() rst.Node) rst.Node {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		tok := p.reader.Peek()
		p.errorAt(tok, "parser.max-depth", "pattern nesting exceeds the maximum depth (%d)", maxDepth)
		// Abandoning fn() here means its opening delimiter is never
		// consumed; without forcing progress the caller's dispatch loop
		// would see the same token and re-enter this frame forever.
		p.synchronize(lexer.KindEOS)
		return rst.NewLiteral("", spanOf(tok))
	}
	return fn()
}

func spanOf(t lexer.Token) diagnostic.Span {
	return diagnostic.Span{Offset: t.Offset, Line: t.Line, Col: t.Col, Length: len(t.Value)}
}

func (p *Parser) errorAt(t lexer.Token, code diagnostic.Code, format string, args ...interface{}) {
	p.diags = append(p.diags, diagnostic.New(diagnostic.Error, spanOf(t), code, format, args...))
}

// errorAtSpan is errorAt for call sites that already hold a Span (a
// construct's opening token has since been consumed) rather than a Token.
func (p *Parser) errorAtSpan(span diagnostic.Span, code diagnostic.Code, format string, args ...interface{}) {
	p.diags = append(p.diags, diagnostic.New(diagnostic.Error, span, code, format, args...))
}

// synchronize skips tokens until it reaches one of the given kinds (or
// EOS), implementing spec.md §4.C's non-fatal recovery: "resynchronizes at
// | } ] >".
func (p *Parser) synchronize(stop ...lexer.Kind) {
	for {
		k := p.reader.PeekType()
		if k == lexer.KindEOS {
			return
		}
		for _, s := range stop {
			if k == s {
				return
			}
		}
		p.reader.Read()
	}
}

// isMainTerminator reports whether kind ends a MainParser run started with
// the given terminators (used by block/tag/subroutine/list bodies that
// embed a nested free-text run).
func isMainTerminator(kind lexer.Kind, terminators []lexer.Kind) bool {
	if kind == lexer.KindEOS {
		return true
	}
	for _, t := range terminators {
		if kind == t {
			return true
		}
	}
	return false
}
