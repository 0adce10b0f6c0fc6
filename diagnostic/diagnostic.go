/*
File    : rant/diagnostic/diagnostic.go
Package : diagnostic

Package diagnostic defines the value types used to report compile-time
problems in a Rant program. The parser (including the query sublanguage
parser) reports them as Diagnostic values. The lexer returns its own
*lexer.Error and the VM returns plain errors; neither is a Diagnostic or
carries a Span.
*/
package diagnostic

import "fmt"

// Span identifies a range of source text by byte offset, line, and column.
// Line and column are 1-indexed; offset is 0-indexed. A zero Span (used by
// synthetic nodes produced during deserialization when the original source
// is unavailable) has Line == 0.
type Span struct {
	Offset int
	Line   int
	Col    int
	Length int
}

// String renders a span as "line:col".
func (s Span) String() string {
	if s.Line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Col)
}

// Severity classifies a Diagnostic.
type Severity int

const (
	// Warning does not stop compilation or execution.
	Warning Severity = iota
	// Error aborts the current production but allows compilation to
	// continue elsewhere (recorded and recovery attempted at the next
	// synchronizing delimiter).
	Error
	// Fatal aborts compilation immediately.
	Fatal
)

// String renders a Severity for display.
func (sev Severity) String() string {
	switch sev {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Code is a short machine-readable identifier for a Diagnostic, e.g.
// "lex.bad-escape" or "query.empty-range".
type Code string

// Diagnostic is a single compile-time or run-time problem report.
type Diagnostic struct {
	Severity Severity
	Span     Span
	Code     Code
	Message  string
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped anywhere an error is expected.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s [%s] at %s", d.Severity, d.Message, d.Code, d.Span)
}

// New constructs a Diagnostic.
func New(sev Severity, span Span, code Code, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Span:     span,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
}
