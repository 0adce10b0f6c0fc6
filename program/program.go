/*
File    : rant/program/program.go
Package : program

Package program implements the compiled-pattern container (spec.md §3
"Program") and its binary format: a `"RPGM"` magic header, the program
name as a length-prefixed string, then the serialized root RST, grounded on the teacher's file.go (load source text
from disk into an in-memory structure) and main.go (compile-then-run
driver).
*/
package program

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mouzizhang/rant/diagnostic"
	"github.com/mouzizhang/rant/dictionary"
	"github.com/mouzizhang/rant/parser"
	"github.com/mouzizhang/rant/registry"
	"github.com/mouzizhang/rant/rst"
	"github.com/mouzizhang/rant/vm"
)

// parseSource compiles pattern source text to a root RST via the parser
// package, isolated behind a function so this file reads the same whether
// or not the parser package changes its own entry point's name.
func parseSource(source string) (rst.Node, []diagnostic.Diagnostic, error) {
	return parser.Parse(source)
}

// magic identifies the binary program format (spec.md §4.F).
const magic = "RPGM"

// Origin records where a Program's source text came from (spec.md §3).
type Origin int

const (
	OriginString Origin = iota
	OriginFile
	OriginStream
)

// Program is a compiled Rant pattern: a canonical name, its origin, the
// optional original source text, the compiled root RST, and an optional
// module table of name-exported subroutines (spec.md §9).
type Program struct {
	Name           string
	Origin         Origin
	OriginalSource string
	Root           rst.Node
	Modules        map[string]rst.Node
}

// invalidNameChars are the characters spec.md §3 forbids in a pattern name.
const invalidNameChars = "$@:~%?><[]|{}"

// CanonicalName trims and re-joins name's slash-separated segments,
// rejecting any segment containing a forbidden character (spec.md §3:
// "Name must be non-empty, non-whitespace, and contain no character from
// {...}. Slashes partition the name into segments; segments are trimmed and
// re-joined with /.").
func CanonicalName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("program: name must be non-empty")
	}
	segs := strings.Split(name, "/")
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if strings.ContainsAny(seg, invalidNameChars) {
			return "", fmt.Errorf("program: name segment %q contains a reserved character", seg)
		}
		out = append(out, seg)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("program: name must be non-empty")
	}
	return strings.Join(out, "/"), nil
}

// Compile parses source into a Program named name, returning any
// diagnostics the parser recovered from (spec.md §4.C's resynchronizing
// recovery) alongside a hard error only for conditions the parser cannot
// recover past (e.g. an invalid name).
func Compile(source, name string) (*Program, []diagnostic.Diagnostic, error) {
	canonical, err := CanonicalName(name)
	if err != nil {
		return nil, nil, err
	}
	root, diags, err := parseSource(source)
	if err != nil {
		return nil, diags, err
	}
	return &Program{
		Name:           canonical,
		Origin:         OriginString,
		OriginalSource: source,
		Root:           root,
	}, diags, nil
}

// RunResult is the output of a completed execution (spec.md §6), re-exported
// from package vm for callers that only import program.
type RunResult = vm.RunResult

// Run executes p's root RST with a fresh engine state seeded by seed,
// binding args into the initial variable scope and resolving queries
// against dict (which may be nil).
func (p *Program) Run(args ProgramArgs, seed int64, dict dictionary.Dictionary) (RunResult, error) {
	return p.RunWithRegistry(args, seed, dict, registry.NewDefault())
}

// RunWithRegistry is Run with an explicit function registry, for callers
// that want a custom or restricted built-in catalog.
func (p *Program) RunWithRegistry(args ProgramArgs, seed int64, dict dictionary.Dictionary, reg *registry.Registry) (RunResult, error) {
	if p.Root == nil {
		return RunResult{}, nil
	}
	e := vm.New(seed, dict, reg)
	for name, value := range args.fields {
		e.SetVar(name, rst.StringValue(value))
	}
	return e.Run(p.Root)
}

// Save writes the magic header, then p's name, then p's root RST to w.
func (p *Program) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	enc := rst.NewEncoder(w)
	enc.WriteString(p.Name)
	enc.WriteNode(p.Root)
	return enc.Err()
}

// Load reads a Program previously written by Save.
func Load(r io.Reader) (*Program, error) {
	br := bufio.NewReader(r)
	got := make([]byte, len(magic))
	if _, err := io.ReadFull(br, got); err != nil {
		return nil, fmt.Errorf("program: failed to read magic header: %w", err)
	}
	if string(got) != magic {
		return nil, fmt.Errorf("program: not a Rant program (bad magic %q)", got)
	}
	dec := rst.NewDecoder(br)
	name := dec.ReadString()
	root, err := dec.ReadNode()
	if err != nil {
		return nil, err
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	return &Program{Name: name, Origin: OriginStream, Root: root}, nil
}
