/*
File    : rant/yamldict/yamldict.go
Package : yamldict

Package yamldict is a reference dictionary.Dictionary backed by a YAML
document, loaded once at startup the way the teacher's std/file packages
parse external definitions into an in-memory structure. It is not a
specified on-disk format (spec.md's Non-goals exclude that); it exists so
the engine and its tests have a runnable Dictionary without inventing a
new format.

Expected document shape:

	noun:
	  default: animal
	  animal:
	    - surface: cat
	      classes: [singular]
	      attributes: {syllables: 1}
	    - surface: cats
	      classes: [plural]
	      attributes: {syllables: 1}
*/
package yamldict

import (
	"fmt"
	"io"

	"github.com/mouzizhang/rant/dictionary"
	"gopkg.in/yaml.v3"
)

type yamlEntry struct {
	Surface    string         `yaml:"surface"`
	Classes    []string       `yaml:"classes"`
	Attributes map[string]any `yaml:"attributes"`
}

type yamlTable map[string]yaml.Node

// Dictionary is a dictionary.Dictionary loaded from a YAML document.
type Dictionary struct {
	tables map[string]*table
}

type table struct {
	name    string
	deflt   string
	entries map[string][]dictionary.Entry
}

func (t *table) Name() string           { return t.name }
func (t *table) DefaultSubtype() string { return t.deflt }
func (t *table) Subtypes() []string {
	out := make([]string, 0, len(t.entries))
	for s := range t.entries {
		out = append(out, s)
	}
	return out
}

// Load parses a YAML document from r into a Dictionary.
func Load(r io.Reader) (*Dictionary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("yamldict: read: %w", err)
	}

	var doc map[string]map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("yamldict: parse: %w", err)
	}

	dict := &Dictionary{tables: make(map[string]*table)}
	for tableName, subtypes := range doc {
		t := &table{name: tableName, entries: make(map[string][]dictionary.Entry)}
		for key, node := range subtypes {
			if key == "default" {
				_ = node.Decode(&t.deflt)
				continue
			}
			var rows []yamlEntry
			if err := node.Decode(&rows); err != nil {
				return nil, fmt.Errorf("yamldict: table %q subtype %q: %w", tableName, key, err)
			}
			entries := make([]dictionary.Entry, 0, len(rows))
			for _, row := range rows {
				entries = append(entries, dictionary.Entry{
					Surface:    row.Surface,
					Classes:    row.Classes,
					Attributes: row.Attributes,
				})
			}
			t.entries[key] = entries
		}
		if t.deflt == "" {
			for s := range t.entries {
				t.deflt = s
				break
			}
		}
		dict.tables[tableName] = t
	}
	return dict, nil
}

// Tables implements dictionary.Dictionary.
func (d *Dictionary) Tables() []string {
	out := make([]string, 0, len(d.tables))
	for name := range d.tables {
		out = append(out, name)
	}
	return out
}

// Table implements dictionary.Dictionary.
func (d *Dictionary) Table(name string) (dictionary.Table, bool) {
	t, ok := d.tables[name]
	if !ok {
		return nil, false
	}
	return t, true
}

// Entries implements dictionary.Dictionary.
func (d *Dictionary) Entries(tableName, subtype string) []dictionary.Entry {
	t, ok := d.tables[tableName]
	if !ok {
		return nil
	}
	if subtype == "" {
		subtype = t.deflt
	}
	return t.entries[subtype]
}

// AttributesOf implements dictionary.Dictionary.
func (d *Dictionary) AttributesOf(e dictionary.Entry) map[string]any {
	return e.Attributes
}
