package rst

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/mouzizhang/rant/diagnostic"
	"github.com/mouzizhang/rant/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, n Node) Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, n))
	got, err := Decode(bufio.NewReader(&buf))
	require.NoError(t, err)
	return got
}

func TestRoundTripLiteral(t *testing.T) {
	lit := NewLiteral("hello world", diagnostic.Span{Offset: 3, Line: 1, Col: 4, Length: 11})
	got, ok := roundTrip(t, lit).(*Literal)
	require.True(t, ok)
	assert.Equal(t, lit.Text, got.Text)
	assert.Equal(t, lit.Pos, got.Pos)
}

func TestRoundTripSequence(t *testing.T) {
	seq := NewSequence([]Node{
		NewLiteral("a", diagnostic.Span{}),
		NewLiteral("b", diagnostic.Span{}),
	}, diagnostic.Span{})
	got, ok := roundTrip(t, seq).(*Sequence)
	require.True(t, ok)
	require.Len(t, got.Children, 2)
	assert.Equal(t, "a", got.Children[0].(*Literal).Text)
	assert.Equal(t, "b", got.Children[1].(*Literal).Text)
}

func TestRoundTripBlock(t *testing.T) {
	b := NewBlock([]Node{
		NewLiteral("x", diagnostic.Span{}),
		NewLiteral("y", diagnostic.Span{}),
	}, []float64{1, 2}, diagnostic.Span{})
	b.Sep = NewLiteral(", ", diagnostic.Span{})
	b.SelectorName = "norepeat"
	b.SyncName = "s1"

	got, ok := roundTrip(t, b).(*Block)
	require.True(t, ok)
	assert.Equal(t, b.Weights, got.Weights)
	assert.Equal(t, b.SelectorName, got.SelectorName)
	assert.Equal(t, b.SyncName, got.SyncName)
	assert.Equal(t, ", ", got.Sep.(*Literal).Text)
	assert.Nil(t, got.Rep)
}

func TestRoundTripTag(t *testing.T) {
	tag := NewTag("numfmt", []Arg{
		{Raw: "3", Node: NewLiteral("3", diagnostic.Span{})},
		{Raw: "", Node: nil},
	}, diagnostic.Span{})

	got, ok := roundTrip(t, tag).(*Tag)
	require.True(t, ok)
	assert.Equal(t, "numfmt", got.Name)
	require.Len(t, got.Args, 2)
	assert.Equal(t, "3", got.Args[0].Raw)
	assert.Equal(t, "3", got.Args[0].Node.(*Literal).Text)
	assert.Nil(t, got.Args[1].Node)
}

func TestRoundTripQueryNode(t *testing.T) {
	min, max := 2, 4
	q := &query.Query{
		Table:     "noun",
		Subtype:   "animal",
		Exclusive: true,
		ClassFilter: []query.ClassFilterRule{
			{ClassName: "plural", Include: true},
			{ClassName: "proper", Include: false},
		},
		SyllablePred: &query.Range{Min: &min, Max: &max},
		Carrier:      &query.Carrier{ID: "c1", Kind: "noun"},
	}
	qn := NewQueryNode(q, diagnostic.Span{})

	got, ok := roundTrip(t, qn).(*QueryNode)
	require.True(t, ok)
	assert.Equal(t, "noun", got.Query.Table)
	assert.Equal(t, "animal", got.Query.Subtype)
	assert.True(t, got.Query.Exclusive)
	require.Len(t, got.Query.ClassFilter, 2)
	assert.Equal(t, "plural", got.Query.ClassFilter[0].ClassName)
	require.NotNil(t, got.Query.SyllablePred)
	require.NotNil(t, got.Query.SyllablePred.Min)
	assert.Equal(t, 2, *got.Query.SyllablePred.Min)
	require.NotNil(t, got.Query.Carrier)
	assert.Equal(t, "c1", got.Query.Carrier.ID)
}

func TestRoundTripGetSetVar(t *testing.T) {
	gv := NewGetVar("x", diagnostic.Span{})
	got, ok := roundTrip(t, gv).(*GetVar)
	require.True(t, ok)
	assert.Equal(t, "x", got.Name)

	sv := NewSetVar("y", NewLiteral("1", diagnostic.Span{}), diagnostic.Span{})
	got2, ok := roundTrip(t, sv).(*SetVar)
	require.True(t, ok)
	assert.Equal(t, "y", got2.Name)
	assert.Equal(t, "1", got2.Value.(*Literal).Text)
}

func TestRoundTripSubroutine(t *testing.T) {
	def := NewSubroutineDef("greet", []string{"name"}, NewLiteral("hi", diagnostic.Span{}), diagnostic.Span{})
	got, ok := roundTrip(t, def).(*SubroutineDef)
	require.True(t, ok)
	assert.Equal(t, "greet", got.Name)
	assert.Equal(t, []string{"name"}, got.Params)

	call := NewSubroutineCall("greet", []Node{NewLiteral("bob", diagnostic.Span{})}, diagnostic.Span{})
	got2, ok := roundTrip(t, call).(*SubroutineCall)
	require.True(t, ok)
	assert.Equal(t, "greet", got2.Name)
	require.Len(t, got2.Args, 1)
}

func TestRoundTripConditional(t *testing.T) {
	cond := NewConditional(
		NewLiteral("true", diagnostic.Span{}),
		NewLiteral("yes", diagnostic.Span{}),
		NewLiteral("no", diagnostic.Span{}),
		diagnostic.Span{},
	)
	got, ok := roundTrip(t, cond).(*Conditional)
	require.True(t, ok)
	assert.Equal(t, "yes", got.Then.(*Literal).Text)
	assert.Equal(t, "no", got.Else.(*Literal).Text)
}

func TestRoundTripArithmetic(t *testing.T) {
	a := NewArithmetic(OpAdd, NewLiteral("2", diagnostic.Span{}), NewLiteral("3", diagnostic.Span{}), diagnostic.Span{})
	got, ok := roundTrip(t, a).(*Arithmetic)
	require.True(t, ok)
	assert.Equal(t, OpAdd, got.Op)
}

func TestRoundTripListLiteral(t *testing.T) {
	list := NewListLiteral([]Node{NewLiteral("1", diagnostic.Span{}), NewLiteral("2", diagnostic.Span{})}, diagnostic.Span{})
	got, ok := roundTrip(t, list).(*ListLiteral)
	require.True(t, ok)
	require.Len(t, got.Items, 2)
}

func TestRoundTripChannel(t *testing.T) {
	ch := NewChannel("out", Private, NewLiteral("x", diagnostic.Span{}), diagnostic.Span{})
	got, ok := roundTrip(t, ch).(*Channel)
	require.True(t, ok)
	assert.Equal(t, "out", got.Name)
	assert.Equal(t, Private, got.Visibility)
}

func TestRoundTripMarkDistSend(t *testing.T) {
	m := NewMark("a", diagnostic.Span{})
	got, ok := roundTrip(t, m).(*Mark)
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)

	dist := NewDist("a", "b", diagnostic.Span{})
	got2, ok := roundTrip(t, dist).(*Dist)
	require.True(t, ok)
	assert.Equal(t, "a", got2.A)
	assert.Equal(t, "b", got2.B)

	send := NewSend("t1", NewLiteral("hi", diagnostic.Span{}), diagnostic.Span{})
	got3, ok := roundTrip(t, send).(*Send)
	require.True(t, ok)
	assert.Equal(t, "t1", got3.Name)
	assert.Equal(t, "hi", got3.Body.(*Literal).Text)
}

func TestRoundTripTarget(t *testing.T) {
	target := NewTarget("t2", diagnostic.Span{})
	got, ok := roundTrip(t, target).(*Target)
	require.True(t, ok)
	assert.Equal(t, "t2", got.Name)
}
