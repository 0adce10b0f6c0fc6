/*
File    : rant/program/args.go
Package : program
*/
package program

// ProgramArgs is the explicit, non-reflective argument builder spec.md §9
// calls for in place of the source's reflect-over-record-fields approach
// (see DESIGN.md Open Questions): a plain string-to-string map bound into
// the engine's initial variable scope before Run executes the root RST.
type ProgramArgs struct {
	fields map[string]string
}

// NewProgramArgs returns an empty ProgramArgs ready for With calls.
func NewProgramArgs() ProgramArgs {
	return ProgramArgs{fields: make(map[string]string)}
}

// With binds name to value and returns the receiver, so calls chain:
// program.NewProgramArgs().With("a", "1").With("b", "2").
func (a ProgramArgs) With(name, value string) ProgramArgs {
	a.fields[name] = value
	return a
}

// ProgramArgsFromFields builds a ProgramArgs from a caller-supplied field
// map, renaming any field whose name appears as a key in aliases to its
// aliased name — the declarative-alias semantics spec.md §9 preserves from
// the reflection-based source ("a field may override its exposed name via a
// declarative alias").
func ProgramArgsFromFields(fields map[string]string, aliases map[string]string) ProgramArgs {
	a := NewProgramArgs()
	for name, value := range fields {
		exposed := name
		if alias, ok := aliases[name]; ok {
			exposed = alias
		}
		a.fields[exposed] = value
	}
	return a
}
