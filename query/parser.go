/*
File    : rant/query/parser.go
Package : query

Parse implements the query sublanguage grammar from spec.md §4.D:

	query  := '<' NAME (subtype)? (excl)? (clause)* '>'
	subtype:= '.' NAME
	excl   := '$'
	clause := '-' ('!')? NAME                // class filter
	        | '?'  REGEX                     // include-match
	        | '~'  REGEX                      // exclude-match
	        | '(' range ')'                   // syllable range
	range  := INT | INT '-' | '-' INT | INT '-' INT

The table NAME may itself contain internal hyphens (dictionary table names
such as "noun-animal" are compound words), but only when the compound is
followed by a '.' subtype; otherwise the table NAME is its first segment
and the hyphen opens a class-filter clause. A class-filter clause's NAME
never takes hyphens, since a hyphen there always opens the next clause.
That is what disambiguates "<noun-animal.plural>" (a single compound table
name) from "<noun-feminine>" parsed with no subtype, class filter
"feminine". Hyphen-joining stops at the first sigil that can only start a
clause/subtype/exclusivity marker: '.', '$', '?', '~', '(', '>'.
*/
package query

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mouzizhang/rant/diagnostic"
	"github.com/mouzizhang/rant/lexer"
)

// Diag is a non-fatal parse problem collected while parsing a query. Fatal
// problems (an utterly malformed query with no recoverable '>' ) are
// returned as an error instead.
type Diag = diagnostic.Diagnostic

// Parse consumes a `<...>` query form from r, which must be positioned at
// the opening '<'. It returns the parsed Query, any non-fatal diagnostics
// collected along the way, and an error only if no closing '>' could be
// found at all (the caller should treat that as fatal).
func Parse(r *lexer.Reader) (*Query, []Diag, error) {
	var diags []Diag

	open, err := r.ReadLooseKind(lexer.KindLAngle, "query open '<'")
	if err != nil {
		return nil, diags, fmt.Errorf("query must start with '<': %w", err)
	}

	q := &Query{}
	first := r.PeekLoose()
	save := r.Mark()
	q.Table = readCompoundName(r)
	if (first.Kind == lexer.KindText || first.Kind == lexer.KindDigitRun) &&
		q.Table != first.Value && r.PeekLoose().Kind != lexer.KindDot {
		// No subtype follows, so the hyphen opens a class filter.
		r.Reset(save)
		q.Table = r.ReadLoose().Value
	}
	if q.Table == "" {
		diags = append(diags, diagnostic.New(diagnostic.Error, spanOf(open), "query.missing-table", "query is missing a table name"))
	}

	sawSubtype := false
	sawExcl := false

	for {
		tok := r.PeekLoose()
		switch tok.Kind {
		case lexer.KindRAngle:
			r.ReadLoose()
			return q, diags, nil
		case lexer.KindEOS:
			return q, diags, fmt.Errorf("unterminated query starting at %s", spanOf(open))
		case lexer.KindDot:
			if sawSubtype {
				diags = append(diags, diagnostic.New(diagnostic.Error, spanOf(tok), "query.duplicate-subtype", "query has more than one subtype"))
			}
			if sawExcl {
				diags = append(diags, diagnostic.New(diagnostic.Error, spanOf(tok), "query.subtype-after-excl", "subtype must appear before the exclusive sigil '$'"))
			}
			q.Subtype = readCompoundName(r)
			sawSubtype = true
		case lexer.KindColon: // trailing carrier annotation, see parseCarrier
			r.ReadLoose()
			parseCarrier(r, q)
		case lexer.KindHyphen:
			r.ReadLoose()
			parseClassFilter(r, q)
		case lexer.KindQuestion:
			r.ReadLoose()
			if df := parseRegexFilter(r, q, true); df != nil {
				diags = append(diags, *df)
			}
		case lexer.KindTilde:
			r.ReadLoose()
			if df := parseRegexFilter(r, q, false); df != nil {
				diags = append(diags, *df)
			}
		case lexer.KindLParen:
			r.ReadLoose()
			if df := parseRange(r, q); df != nil {
				diags = append(diags, *df)
			}
		case lexer.KindDollar:
			r.ReadLoose()
			if sawExcl {
				diags = append(diags, diagnostic.New(diagnostic.Warning, spanOf(tok), "query.duplicate-excl", "exclusive sigil '$' repeated"))
			}
			q.Exclusive = true
			sawExcl = true
		default:
			diags = append(diags, diagnostic.New(diagnostic.Error, spanOf(tok), "query.unexpected-token", "unrecognized token %q inside query", tok.Value))
			r.ReadLoose()
		}
	}
}

// readCompoundName consumes a NAME: a leading Text/DigitRun token, then any
// number of (Hyphen, Text/DigitRun) pairs, joining them with '-'. If the
// reader is positioned at a '.' (subtype separator) it is consumed first.
func readCompoundName(r *lexer.Reader) string {
	tok := r.PeekLoose()
	if tok.Kind == lexer.KindDot {
		r.ReadLoose()
		tok = r.PeekLoose()
	}
	if tok.Kind != lexer.KindText && tok.Kind != lexer.KindDigitRun {
		return ""
	}
	name := r.ReadLoose().Value
	for {
		save := r.Mark()
		next := r.PeekLoose()
		if next.Kind != lexer.KindHyphen {
			break
		}
		r.ReadLoose()
		after := r.PeekLoose()
		if after.Kind != lexer.KindText && after.Kind != lexer.KindDigitRun {
			r.Reset(save)
			break
		}
		name += "-" + r.ReadLoose().Value
	}
	return name
}

func parseClassFilter(r *lexer.Reader, q *Query) {
	include := true
	if r.PeekLoose().Kind == lexer.KindBang {
		r.ReadLoose()
		include = false
	}
	tok := r.PeekLoose()
	name := ""
	if tok.Kind == lexer.KindText || tok.Kind == lexer.KindDigitRun {
		name = r.ReadLoose().Value
	}
	q.ClassFilter = append(q.ClassFilter, ClassFilterRule{ClassName: name, Include: include})
}

func parseRegexFilter(r *lexer.Reader, q *Query, positive bool) *Diag {
	tok := r.PeekLoose()
	if tok.Kind != lexer.KindRegex {
		d := diagnostic.New(diagnostic.Error, spanOf(tok), "query.expected-regex", "expected a /regex/ literal")
		return &d
	}
	r.ReadLoose()
	pattern, flags := splitRegexLiteral(tok.Value)
	compiled, err := compileWithFlags(pattern, flags)
	if err != nil {
		d := diagnostic.New(diagnostic.Error, spanOf(tok), "query.bad-regex", "invalid regex %q: %v", tok.Value, err)
		q.RegexFilters = append(q.RegexFilters, RegexFilter{Positive: positive, Source: tok.Value})
		return &d
	}
	q.RegexFilters = append(q.RegexFilters, RegexFilter{Positive: positive, Pattern: compiled, Source: tok.Value})
	return nil
}

// splitRegexLiteral splits a `/pattern/flags` literal as produced by the
// lexer into its pattern and flags parts.
func splitRegexLiteral(lit string) (pattern, flags string) {
	if len(lit) < 2 || lit[0] != '/' {
		return lit, ""
	}
	rest := lit[1:]
	idx := -1
	for i := len(rest) - 1; i >= 0; i-- {
		if rest[i] == '/' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return rest, ""
	}
	return rest[:idx], rest[idx+1:]
}

func compileWithFlags(pattern, flags string) (*regexp.Regexp, error) {
	if flags == "" {
		return regexp.Compile(pattern)
	}
	return regexp.Compile("(?" + flags + ")" + pattern)
}

func parseRange(r *lexer.Reader, q *Query) *Diag {
	var rng Range
	tok := r.PeekLoose()

	if tok.Kind == lexer.KindRParen {
		r.ReadLoose()
		d := diagnostic.New(diagnostic.Error, spanOf(tok), "query.empty-range", "syllable range '()' cannot be empty")
		return &d
	}

	if tok.Kind == lexer.KindHyphen {
		r.ReadLoose()
		maxTok, err := r.ReadLooseKind(lexer.KindDigitRun, "range upper bound")
		if err != nil {
			d := diagnostic.New(diagnostic.Error, spanOf(tok), "query.bad-range", "malformed syllable range")
			return &d
		}
		n, _ := strconv.Atoi(maxTok.Value)
		rng.Max = &n
	} else if tok.Kind == lexer.KindDigitRun {
		minTok := r.ReadLoose()
		n, _ := strconv.Atoi(minTok.Value)
		rng.Min = &n
		if r.PeekLoose().Kind == lexer.KindHyphen {
			r.ReadLoose()
			if r.PeekLoose().Kind == lexer.KindDigitRun {
				maxTok := r.ReadLoose()
				m, _ := strconv.Atoi(maxTok.Value)
				rng.Max = &m
			}
			// "INT '-'" with nothing following: open upper bound, min only.
		} else {
			// Bare INT with no trailing '-': exactly n.
			m := n
			rng.Max = &m
		}
	} else {
		d := diagnostic.New(diagnostic.Error, spanOf(tok), "query.bad-range", "syllable range must start with a digit or '-'")
		return &d
	}

	if _, err := r.ReadLooseKind(lexer.KindRParen, "range close ')'"); err != nil {
		d := diagnostic.New(diagnostic.Error, spanOf(tok), "query.unclosed-range", "syllable range is missing its closing ')'")
		q.SyllablePred = &rng
		return &d
	}
	q.SyllablePred = &rng
	return nil
}

// parseCarrier reads a trailing `:name` carrier annotation. Carriers are not
// part of the core grammar in spec.md §4.D but are referenced by §4.I step 7
// ("carrier semantics") and §3's Query data model; this reads the form
// `<table:carrierName>` appearing anywhere after the table/subtype.
func parseCarrier(r *lexer.Reader, q *Query) {
	tok := r.PeekLoose()
	if tok.Kind != lexer.KindText {
		return
	}
	name := r.ReadLoose().Value
	q.Carrier = &Carrier{ID: name, Kind: q.Table}
}

func spanOf(tok lexer.Token) diagnostic.Span {
	return diagnostic.Span{Offset: tok.Offset, Line: tok.Line, Col: tok.Col, Length: len(tok.Value)}
}
