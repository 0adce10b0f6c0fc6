/*
File    : rant/dictionary/dictionary.go
Package : dictionary

Package dictionary defines the Dictionary capability (spec.md §6) and the
query engine (spec.md §4.I) that resolves a parsed query.Query into a single
entry. Dictionary itself is a read-only capability interface; package
yamldict ships a reference implementation backed by YAML files, the way the
teacher's std/file packages load external definitions at startup.
*/
package dictionary

// Entry is a single dictionary row: a surface form plus the classes
// (grammatical/semantic tags) and free-form attributes the query engine
// filters on.
type Entry struct {
	Surface    string
	Classes    []string
	Attributes map[string]any
}

// HasClass reports whether the entry is tagged with className.
func (e Entry) HasClass(className string) bool {
	for _, c := range e.Classes {
		if c == className {
			return true
		}
	}
	return false
}

// Syllables returns the entry's "syllables" attribute, or 0 if absent or
// not an integer-like value.
func (e Entry) Syllables() int {
	v, ok := e.Attributes["syllables"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Table is one named table of entries, partitioned into subtypes (e.g.
// table "noun", subtypes "animal", "food", ...).
type Table interface {
	// Name returns the table's name.
	Name() string
	// DefaultSubtype returns the subtype used when a query names none.
	DefaultSubtype() string
	// Subtypes lists every subtype this table defines.
	Subtypes() []string
}

// Dictionary is the read-only capability a query engine resolves queries
// against (spec.md §6).
type Dictionary interface {
	// Tables lists every table name in the dictionary.
	Tables() []string
	// Table looks up a table by name.
	Table(name string) (Table, bool)
	// Entries returns every entry in table/subtype. An empty subtype means
	// the table's default subtype.
	Entries(table, subtype string) []Entry
	// AttributesOf returns an entry's attribute bag (a convenience mirror of
	// Entry.Attributes for callers that only hold a Dictionary reference).
	AttributesOf(entry Entry) map[string]any
}
