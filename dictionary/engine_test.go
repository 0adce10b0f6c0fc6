package dictionary

import (
	"math/rand"
	"testing"

	"github.com/mouzizhang/rant/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTable struct {
	name    string
	deflt   string
	subtype []string
}

func (t fakeTable) Name() string           { return t.name }
func (t fakeTable) DefaultSubtype() string { return t.deflt }
func (t fakeTable) Subtypes() []string     { return t.subtype }

type fakeDict struct {
	tables  map[string]fakeTable
	entries map[string][]Entry // key: table+"/"+subtype
}

func (d fakeDict) Tables() []string {
	names := make([]string, 0, len(d.tables))
	for n := range d.tables {
		names = append(names, n)
	}
	return names
}

func (d fakeDict) Table(name string) (Table, bool) {
	t, ok := d.tables[name]
	return t, ok
}

func (d fakeDict) Entries(table, subtype string) []Entry {
	return d.entries[table+"/"+subtype]
}

func (d fakeDict) AttributesOf(e Entry) map[string]any { return e.Attributes }

func newAnimalDict() fakeDict {
	return fakeDict{
		tables: map[string]fakeTable{
			"noun": {name: "noun", deflt: "animal", subtype: []string{"animal"}},
		},
		entries: map[string][]Entry{
			"noun/animal": {
				{Surface: "cat", Classes: []string{"singular"}, Attributes: map[string]any{"syllables": 1}},
				{Surface: "cats", Classes: []string{"plural"}, Attributes: map[string]any{"syllables": 1}},
				{Surface: "elephant", Classes: []string{"singular"}, Attributes: map[string]any{"syllables": 3}},
			},
		},
	}
}

func TestResolveDefaultSubtype(t *testing.T) {
	e := NewEngine(newAnimalDict())
	rng := rand.New(rand.NewSource(1))
	entry, ok := e.Resolve(&query.Query{Table: "noun"}, rng)
	require.True(t, ok)
	assert.Contains(t, []string{"cat", "cats", "elephant"}, entry.Surface)
}

func TestResolveMissingTableIsMiss(t *testing.T) {
	e := NewEngine(newAnimalDict())
	rng := rand.New(rand.NewSource(1))
	_, ok := e.Resolve(&query.Query{Table: "verb"}, rng)
	assert.False(t, ok)
}

func TestResolveClassFilterIncludeExclude(t *testing.T) {
	e := NewEngine(newAnimalDict())
	rng := rand.New(rand.NewSource(1))
	q := &query.Query{
		Table:       "noun",
		ClassFilter: []query.ClassFilterRule{
			{ClassName: "plural", Include: true},
			{ClassName: "singular", Include: false},
		},
	}
	entry, ok := e.Resolve(q, rng)
	require.True(t, ok)
	assert.Equal(t, "cats", entry.Surface)
}

func TestResolveSyllableRange(t *testing.T) {
	e := NewEngine(newAnimalDict())
	rng := rand.New(rand.NewSource(1))
	min, max := 3, 3
	q := &query.Query{Table: "noun", SyllablePred: &query.Range{Min: &min, Max: &max}}
	entry, ok := e.Resolve(q, rng)
	require.True(t, ok)
	assert.Equal(t, "elephant", entry.Surface)
}

func TestResolveExclusiveModeRejectsUnlistedClass(t *testing.T) {
	e := NewEngine(newAnimalDict())
	rng := rand.New(rand.NewSource(1))
	q := &query.Query{
		Table:       "noun",
		Exclusive:   true,
		ClassFilter: []query.ClassFilterRule{{ClassName: "plural", Include: true}},
	}
	_, ok := e.Resolve(q, rng)
	require.True(t, ok)
	// every candidate with class "singular" should have been excluded since
	// it isn't in the include set
	for i := 0; i < 20; i++ {
		entry, ok := e.Resolve(q, rng)
		require.True(t, ok)
		assert.True(t, entry.HasClass("plural"))
	}
}

func TestResolveCarrierMemoizesChoice(t *testing.T) {
	e := NewEngine(newAnimalDict())
	rng := rand.New(rand.NewSource(1))
	q := &query.Query{Table: "noun", Carrier: &query.Carrier{ID: "c1", Kind: "noun"}}
	first, ok := e.Resolve(q, rng)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := e.Resolve(q, rng)
		require.True(t, ok)
		assert.Equal(t, first.Surface, again.Surface)
	}
}

func TestFilterMonotonicity(t *testing.T) {
	base := newAnimalDict().Entries("noun", "animal")
	withInclude := filterByClass(base, &query.Query{
		ClassFilter: []query.ClassFilterRule{{ClassName: "plural", Include: true}},
	})
	withExclude := filterByClass(base, &query.Query{
		ClassFilter: []query.ClassFilterRule{{ClassName: "plural", Include: false}},
	})
	assert.LessOrEqual(t, len(withInclude), len(base))
	assert.LessOrEqual(t, len(withExclude), len(base))
}
