/*
File    : rant/parser/parser_tag.go
Package : parser

TagParser (spec.md §4.C/§4.J): reads `[name:arg;arg;...]` (or bare
`[name]`). Parser-recognized special names compile directly to their own
dedicated RST node (or, for the block modifiers, into Parser.pending for
the next Block to pick up) rather than going through the function
registry — see registry/registry.go's header for why that split exists.
Everything else becomes a generic rst.Tag resolved at runtime by the
function registry.
*/
package parser

import (
	"strings"

	"github.com/mouzizhang/rant/diagnostic"
	"github.com/mouzizhang/rant/lexer"
	"github.com/mouzizhang/rant/rst"
)

// parsedArg is one tag argument: its cooked RST (always available) and its
// raw source text. Raw text only reflects literal/escape content; an
// argument containing a nested construct (block, tag, query, ...) has an
// empty raw string, since reconstructing exact source text from tokens
// would require carrying original byte ranges through every sub-parser.
// Built-ins that declare a Raw-mode parameter (numfmt's format name,
// case's mode keyword) only ever receive bareword arguments in practice,
// so this is not a functional limitation for the catalog in
// registry/builtins.go (documented in DESIGN.md).
type parsedArg struct {
	raw  string
	node rst.Node
}

var argTerminators = []lexer.Kind{lexer.KindSemicolon, lexer.KindRBracket}

func (p *Parser) parseArg() parsedArg {
	var rawText strings.Builder
	var children []rst.Node
	var text strings.Builder

	flushText := func() {
		if text.Len() > 0 {
			children = append(children, rst.NewLiteral(text.String(), spanOf(p.reader.Peek())))
			text.Reset()
		}
	}

	for {
		tok := p.reader.Peek()
		if isMainTerminator(tok.Kind, argTerminators) {
			break
		}
		switch tok.Kind {
		case lexer.KindText, lexer.KindWhitespace, lexer.KindDigitRun:
			p.reader.Read()
			text.WriteString(tok.Value)
			rawText.WriteString(tok.Value)
		case lexer.KindEscape:
			p.reader.Read()
			flushText()
			node := p.parseEscape(tok)
			if lit, ok := node.(*rst.Literal); ok {
				rawText.WriteString(lit.Text)
			}
			children = append(children, node)
		case lexer.KindLBrace:
			flushText()
			children = append(children, p.descend(frameBlock, p.parseBlock))
		case lexer.KindLBracket:
			flushText()
			children = append(children, p.descend(frameTag, p.parseTagOrSpecial))
		case lexer.KindLAngle:
			flushText()
			children = append(children, p.parseQuery())
		case lexer.KindDollar:
			flushText()
			children = append(children, p.descend(frameSubroutine, p.parseSubroutine))
		case lexer.KindAt:
			flushText()
			children = append(children, p.descend(frameList, p.parseList))
		case lexer.KindPercent:
			flushText()
			children = append(children, p.descend(frameReplace, p.parseReplace))
		default:
			p.reader.Read()
			text.WriteString(tok.Value)
			rawText.WriteString(tok.Value)
		}
	}
	flushText()
	return parsedArg{raw: strings.TrimSpace(rawText.String()), node: rst.NewSequence(children, spanOf(p.reader.Peek()))}
}

// parseTagArgs reads zero or more `;`-separated arguments up to (but not
// consuming) the closing ']'.
func (p *Parser) parseTagArgs() []parsedArg {
	if p.reader.PeekType() == lexer.KindRBracket {
		return nil
	}
	var args []parsedArg
	for {
		args = append(args, p.parseArg())
		if p.reader.PeekType() == lexer.KindSemicolon {
			p.reader.Read()
			continue
		}
		break
	}
	return args
}

func argRaw(args []parsedArg, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i].raw
}

func argNode(args []parsedArg, i int) rst.Node {
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i].node
}

// parseTagOrSpecial reads one `[...]` construct and dispatches on its name.
func (p *Parser) parseTagOrSpecial() rst.Node {
	open, err := p.reader.ReadKind(lexer.KindLBracket, "tag open '['")
	if err != nil {
		p.errorAt(p.reader.Peek(), "parser.expected-tag", "expected tag '['")
		return rst.NewLiteral("", spanOf(p.reader.Peek()))
	}
	span := spanOf(open)

	nameTok := p.reader.ReadLoose()
	name := strings.ToLower(nameTok.Value)

	var args []parsedArg
	if p.reader.PeekType() == lexer.KindColon {
		p.reader.Read()
		args = p.parseTagArgs()
	}

	if _, err := p.reader.ReadKind(lexer.KindRBracket, "tag close ']'"); err != nil {
		p.errorAt(p.reader.Peek(), "parser.unclosed-tag", "tag %q starting at %s is missing its closing ']'", name, span)
		p.synchronize(lexer.KindRBracket)
		if p.reader.PeekType() == lexer.KindRBracket {
			p.reader.Read()
		}
	}

	if node, ok := p.specialTag(name, args, span); ok {
		return node
	}
	return p.genericTag(name, args, span)
}

// specialTag handles the names the parser itself recognizes instead of
// routing them through the function registry (registry/registry.go's
// header documents this split). ok is false for any name not in this set,
// telling the caller to fall through to a generic registry-dispatched Tag.
func (p *Parser) specialTag(name string, args []parsedArg, span diagnostic.Span) (rst.Node, bool) {
	switch name {
	case "rep":
		p.pending.rep = argNode(args, 0)
		return rst.NewLiteral("", span), true
	case "sep":
		p.pending.sep = argNode(args, 0)
		return rst.NewLiteral("", span), true
	case "before":
		p.pending.before = argNode(args, 0)
		return rst.NewLiteral("", span), true
	case "after":
		p.pending.after = argNode(args, 0)
		return rst.NewLiteral("", span), true
	case "sync":
		p.pending.sync = argRaw(args, 0)
		p.pending.selector = argRaw(args, 1)
		return rst.NewLiteral("", span), true
	case "get":
		return rst.NewTarget(argRaw(args, 0), span), true
	case "mark":
		return rst.NewMark(argRaw(args, 0), span), true
	case "dist":
		return rst.NewDist(argRaw(args, 0), argRaw(args, 1), span), true
	case "send":
		if len(args) < 2 {
			p.errorAtSpan(span, "parser.send-arity", "[send:name;body] requires both a target name and a body argument (got %d)", len(args))
			return rst.NewLiteral("", span), true
		}
		return rst.NewSend(argRaw(args, 0), argNode(args, 1), span), true
	case "set":
		return rst.NewSetVar(argRaw(args, 0), argNode(args, 1), span), true
	case "chan":
		body := p.parseChannelBody()
		return rst.NewChannel(argRaw(args, 0), visibilityFromName(argRaw(args, 1)), body, span), true
	case "if":
		return rst.NewConditional(argNode(args, 0), argNode(args, 1), argNode(args, 2), span), true
	}
	if op, ok := arithOpByName[name]; ok {
		return rst.NewArithmetic(op, argNode(args, 0), argNode(args, 1), span), true
	}
	return nil, false
}

var arithOpByName = map[string]rst.ArithOp{
	"add": rst.OpAdd, "sub": rst.OpSub, "mul": rst.OpMul, "div": rst.OpDiv,
	"mod": rst.OpMod, "pow": rst.OpPow, "eq": rst.OpEq, "neq": rst.OpNeq,
	"lt": rst.OpLt, "lte": rst.OpLte, "gt": rst.OpGt, "gte": rst.OpGte,
}

func visibilityFromName(name string) rst.ChannelVisibility {
	switch strings.ToLower(name) {
	case "private":
		return rst.Private
	case "internal":
		return rst.Internal
	default:
		return rst.Public
	}
}

// parseChannelBody reads the `{...}` block immediately following a [chan]
// tag's closing ']'.
func (p *Parser) parseChannelBody() rst.Node {
	if p.reader.PeekType() != lexer.KindLBrace {
		p.errorAt(p.reader.Peek(), "parser.expected-chan-body", "[chan] must be followed by a '{...}' body")
		return rst.NewLiteral("", spanOf(p.reader.Peek()))
	}
	p.reader.Read()
	body := p.parseMain([]lexer.Kind{lexer.KindRBrace})
	if _, err := p.reader.ReadKind(lexer.KindRBrace, "channel body close '}'"); err != nil {
		p.errorAt(p.reader.Peek(), "parser.unclosed-chan", "[chan] body is missing its closing '}'")
	}
	return body
}

// genericTag builds a registry-dispatched function call from a tag whose
// name isn't one of the parser-level specials.
func (p *Parser) genericTag(name string, args []parsedArg, span diagnostic.Span) rst.Node {
	rstArgs := make([]rst.Arg, len(args))
	for i, a := range args {
		rstArgs[i] = rst.Arg{Raw: a.raw, Node: a.node}
	}
	return rst.NewTag(name, rstArgs, span)
}
