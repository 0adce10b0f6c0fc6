/*
File    : rant/query/parser_test.go
Package : query
*/
package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/mouzizhang/rant/lexer"
)

func parseStr(t *testing.T, src string) (*Query, []Diag) {
	t.Helper()
	toks, err := lexer.Lex(src)
	assert.NoError(t, err)
	r := lexer.NewReader(toks)
	q, diags, err := Parse(r)
	assert.NoError(t, err)
	return q, diags
}

func TestParse_TableAndSubtype(t *testing.T) {
	q, diags := parseStr(t, "<noun-animal.plural>")
	assert.Empty(t, diags)
	assert.Equal(t, "noun-animal", q.Table)
	assert.Equal(t, "plural", q.Subtype)
}

func TestParse_ClassFilters(t *testing.T) {
	q, diags := parseStr(t, "<noun-feminine>")
	assert.Empty(t, diags)
	assert.Equal(t, "noun", q.Table)
	if assert.Len(t, q.ClassFilter, 1) {
		assert.Equal(t, "feminine", q.ClassFilter[0].ClassName)
		assert.True(t, q.ClassFilter[0].Include)
	}
}

func TestParse_ExcludeClassFilter(t *testing.T) {
	q, diags := parseStr(t, "<noun-!ugly>")
	assert.Empty(t, diags)
	if assert.Len(t, q.ClassFilter, 1) {
		assert.False(t, q.ClassFilter[0].Include)
	}
}

func TestParse_RegexFilters(t *testing.T) {
	q, diags := parseStr(t, "<noun?/^b/~/x$/>")
	assert.Empty(t, diags)
	if assert.Len(t, q.RegexFilters, 2) {
		assert.True(t, q.RegexFilters[0].Positive)
		assert.False(t, q.RegexFilters[1].Positive)
	}
}

func TestParse_SyllableRangeExact(t *testing.T) {
	q, diags := parseStr(t, "<noun(2)>")
	assert.Empty(t, diags)
	if assert.NotNil(t, q.SyllablePred) {
		assert.Equal(t, 2, *q.SyllablePred.Min)
		assert.Equal(t, 2, *q.SyllablePred.Max)
	}
}

func TestParse_SyllableRangeOpenUpper(t *testing.T) {
	q, diags := parseStr(t, "<noun(2-)>")
	assert.Empty(t, diags)
	assert.Equal(t, 2, *q.SyllablePred.Min)
	assert.Nil(t, q.SyllablePred.Max)
}

func TestParse_SyllableRangeOpenLower(t *testing.T) {
	q, diags := parseStr(t, "<noun(-3)>")
	assert.Empty(t, diags)
	assert.Nil(t, q.SyllablePred.Min)
	assert.Equal(t, 3, *q.SyllablePred.Max)
}

func TestParse_EmptyRangeIsError(t *testing.T) {
	_, diags := parseStr(t, "<noun()>")
	assert.NotEmpty(t, diags)
}

func TestParse_ExclusiveSigil(t *testing.T) {
	q, diags := parseStr(t, "<noun.plural$>")
	assert.Empty(t, diags)
	assert.True(t, q.Exclusive)
}

func TestParse_SubtypeAfterExclIsError(t *testing.T) {
	_, diags := parseStr(t, "<noun$.plural>")
	assert.NotEmpty(t, diags)
}

func TestRange_Satisfies(t *testing.T) {
	min, max := 2, 4
	r := Range{Min: &min, Max: &max}
	assert.True(t, r.Satisfies(2))
	assert.True(t, r.Satisfies(4))
	assert.False(t, r.Satisfies(1))
	assert.False(t, r.Satisfies(5))
}
