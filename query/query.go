/*
File    : rant/query/query.go
Package : query

Package query defines the Query value produced by parsing the
`<table.subtype-class?regex(range)$>` sublanguage, and the filter model used
by the dictionary engine (package dictionary) to resolve a Query into a
single entry.
*/
package query

import "regexp"

// Range is an inclusive (min, max) bound. A nil bound on either side is
// unconstrained on that side; Min == Max means "exactly this many".
type Range struct {
	Min *int
	Max *int
}

// Satisfies reports whether n falls within the range (inclusive on both
// sides; a nil bound imposes no constraint on that side).
func (r Range) Satisfies(n int) bool {
	if r.Min != nil && n < *r.Min {
		return false
	}
	if r.Max != nil && n > *r.Max {
		return false
	}
	return true
}

// ClassFilterRule is a single `-name` (include) or `-!name` (blacklist)
// class clause. Per spec.md §4.D the parsed syntax is
// `'-' ('!')? NAME`; a bare `-name` is an include rule and `-!name` is an
// exclude rule (the '!' negates).
type ClassFilterRule struct {
	ClassName string
	Include   bool
}

// RegexFilter is a `?regex` (positive/must-match) or `~regex` (negative/
// must-not-match) clause.
type RegexFilter struct {
	Positive bool
	Pattern  *regexp.Regexp
	Source   string
}

// Carrier identifies a query result across repeated reads: queries sharing
// the same carrier name and kind must resolve to the same entry within
// their scope (spec.md §4.I step 7).
type Carrier struct {
	ID   string
	Kind string
}

// Query is the fully parsed form of a `<...>` construct.
type Query struct {
	Table           string
	Subtype         string // empty means "default subtype for the table"
	ClassFilter     []ClassFilterRule
	RegexFilters    []RegexFilter
	SyllablePred    *Range
	Exclusive       bool
	Carrier         *Carrier
}

// IncludeClasses returns the set of class names named by include rules,
// used both for conjunctive inclusion and (in exclusive mode) for
// forbidding any class not in this set.
func (q *Query) IncludeClasses() map[string]struct{} {
	out := make(map[string]struct{})
	for _, rule := range q.ClassFilter {
		if rule.Include {
			out[rule.ClassName] = struct{}{}
		}
	}
	return out
}

// ExcludeClasses returns the set of class names named by exclude rules.
func (q *Query) ExcludeClasses() map[string]struct{} {
	out := make(map[string]struct{})
	for _, rule := range q.ClassFilter {
		if !rule.Include {
			out[rule.ClassName] = struct{}{}
		}
	}
	return out
}
