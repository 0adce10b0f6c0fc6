/*
File    : rant/vm/varscope.go
Package : vm

Scope implements the variable scope chain engine state needs (spec.md §3
"vars: scoped map<name -> value>"), adapted from the teacher's
scope/scope.go: a chain of maps searched innermost-first, with bindings
created in the current scope and lookups walking up to the root.
*/
package vm

import "github.com/mouzizhang/rant/rst"

// scope is one frame of the variable scope chain: each subroutine call
// pushes a child scope; block iterations do not.
type scope struct {
	vars   map[string]rst.Value
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]rst.Value), parent: parent}
}

// lookup searches this scope and every parent for name.
func (s *scope) lookup(name string) (rst.Value, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	if s.parent != nil {
		return s.parent.lookup(name)
	}
	return rst.Value{}, false
}

// bind creates or overwrites name in this scope only.
func (s *scope) bind(name string, v rst.Value) {
	s.vars[name] = v
}

// subDef is a registered subroutine: a parameter list and a body RST bound
// to a name in whatever scope defined it.
type subDef struct {
	params []string
	body   rst.Node
}

// subScope mirrors scope's chain structure for subroutine definitions,
// since spec.md §4.G requires subroutines to be name-indirected references
// resolvable from nested scopes (re-architecture guidance in spec.md §9).
type subScope struct {
	subs   map[string]subDef
	parent *subScope
}

func newSubScope(parent *subScope) *subScope {
	return &subScope{subs: make(map[string]subDef), parent: parent}
}

func (s *subScope) lookup(name string) (subDef, bool) {
	if d, ok := s.subs[name]; ok {
		return d, true
	}
	if s.parent != nil {
		return s.parent.lookup(name)
	}
	return subDef{}, false
}

func (s *subScope) define(name string, d subDef) {
	s.subs[name] = d
}
