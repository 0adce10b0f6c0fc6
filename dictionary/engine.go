/*
File    : rant/dictionary/engine.go
Package : dictionary
*/
package dictionary

import (
	"math/rand"

	"github.com/mouzizhang/rant/query"
)

// Engine resolves query.Query values against a Dictionary for one program
// execution. It owns the carrier memo table (spec.md §4.I step 7), so a
// fresh Engine must be created per run — carriers must not leak across
// unrelated executions of the same Program.
type Engine struct {
	dict     Dictionary
	carriers map[string]Entry
}

// NewEngine constructs a query engine over dict.
func NewEngine(dict Dictionary) *Engine {
	return &Engine{dict: dict, carriers: make(map[string]Entry)}
}

// Resolve implements spec.md §4.I's eight-step algorithm: table lookup,
// subtype selection, candidate filtering (class/regex/syllable), carrier
// memoization, and final uniform pick.
func (e *Engine) Resolve(q *query.Query, rng *rand.Rand) (Entry, bool) {
	if e.dict == nil {
		return Entry{}, false
	}

	// Step 7 (checked early): a carrier already resolved inherits its first
	// query's choice rather than re-filtering.
	if q.Carrier != nil {
		if entry, ok := e.carriers[carrierKey(q.Carrier.ID, q.Carrier.Kind)]; ok {
			return entry, true
		}
	}

	// Step 1: resolve the table.
	table, ok := e.dict.Table(q.Table)
	if !ok {
		return Entry{}, false
	}

	// Step 2: select the subtype column.
	subtype := q.Subtype
	if subtype == "" {
		subtype = table.DefaultSubtype()
	}

	// Step 3: candidate set starts as all entries of the table/subtype.
	candidates := e.dict.Entries(q.Table, subtype)

	// Step 4: class filter.
	candidates = filterByClass(candidates, q)

	// Step 5: regex filters.
	candidates = filterByRegex(candidates, q)

	// Step 6: syllable predicate.
	if q.SyllablePred != nil {
		candidates = filterBySyllables(candidates, *q.SyllablePred)
	}

	if len(candidates) == 0 {
		return Entry{}, false
	}

	// Step 8: uniform pick among survivors.
	chosen := candidates[rng.Intn(len(candidates))]

	// Step 7 (record): memoize the pick for this carrier, if any.
	if q.Carrier != nil {
		e.carriers[carrierKey(q.Carrier.ID, q.Carrier.Kind)] = chosen
	}

	return chosen, true
}

func carrierKey(id, kind string) string { return kind + "\x00" + id }

func filterByClass(entries []Entry, q *query.Query) []Entry {
	if len(q.ClassFilter) == 0 {
		return entries
	}
	include := q.IncludeClasses()
	exclude := q.ExcludeClasses()

	out := entries[:0:0]
	for _, e := range entries {
		ok := true
		for className := range include {
			if !e.HasClass(className) {
				ok = false
				break
			}
		}
		if ok {
			for className := range exclude {
				if e.HasClass(className) {
					ok = false
					break
				}
			}
		}
		if ok && q.Exclusive {
			for _, c := range e.Classes {
				if _, allowed := include[c]; !allowed {
					ok = false
					break
				}
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}

func filterByRegex(entries []Entry, q *query.Query) []Entry {
	if len(q.RegexFilters) == 0 {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		ok := true
		for _, rf := range q.RegexFilters {
			if rf.Pattern == nil {
				continue
			}
			matched := rf.Pattern.MatchString(e.Surface)
			if rf.Positive && !matched {
				ok = false
				break
			}
			if !rf.Positive && matched {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}

func filterBySyllables(entries []Entry, r query.Range) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if r.Satisfies(e.Syllables()) {
			out = append(out, e)
		}
	}
	return out
}
