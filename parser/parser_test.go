/*
File    : rant/parser/parser_test.go
Package : parser
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouzizhang/rant/rst"
)

func parseOK(t *testing.T, src string) rst.Node {
	t.Helper()
	root, diags, err := Parse(src)
	require.NoError(t, err)
	assert.Empty(t, diags)
	return root
}

func seqOf(t *testing.T, root rst.Node) *rst.Sequence {
	t.Helper()
	seq, ok := root.(*rst.Sequence)
	require.True(t, ok, "expected *rst.Sequence, got %T", root)
	return seq
}

// unwrap peels off a lone-child Sequence, since parseArg always wraps a
// tag argument's cooked RST in a Sequence even when it holds a single node.
func unwrap(n rst.Node) rst.Node {
	if seq, ok := n.(*rst.Sequence); ok && len(seq.Children) == 1 {
		return seq.Children[0]
	}
	return n
}

func TestParsePlainText(t *testing.T) {
	root := parseOK(t, "hello world")
	seq := seqOf(t, root)
	require.Len(t, seq.Children, 1)
	lit, ok := seq.Children[0].(*rst.Literal)
	require.True(t, ok)
	assert.Equal(t, "hello world", lit.Text)
}

func TestParseBlockBranches(t *testing.T) {
	root := parseOK(t, "{a|b|c}")
	seq := seqOf(t, root)
	require.Len(t, seq.Children, 1)
	block, ok := seq.Children[0].(*rst.Block)
	require.True(t, ok)
	require.Len(t, block.Branches, 3)
}

func TestParseBlockWeights(t *testing.T) {
	root := parseOK(t, "{(2)a|b}")
	seq := seqOf(t, root)
	block, ok := seq.Children[0].(*rst.Block)
	require.True(t, ok)
	require.Len(t, block.Weights, 2)
	assert.Equal(t, 2.0, block.Weights[0])
	assert.Equal(t, 0.0, block.Weights[1])
}

func TestParseRepSepModifiers(t *testing.T) {
	root := parseOK(t, "[rep:3][sep:, ]{a}")
	seq := seqOf(t, root)
	var block *rst.Block
	for _, c := range seq.Children {
		if b, ok := c.(*rst.Block); ok {
			block = b
		}
	}
	require.NotNil(t, block)
	require.NotNil(t, block.Rep)
	require.NotNil(t, block.Sep)
}

func TestParseSyncSetsSyncAndSelectorNames(t *testing.T) {
	root := parseOK(t, "[sync:x;ordered]{a|b}")
	seq := seqOf(t, root)
	block, ok := seq.Children[len(seq.Children)-1].(*rst.Block)
	require.True(t, ok)
	assert.Equal(t, "x", block.SyncName)
	assert.Equal(t, "ordered", block.SelectorName)
}

func TestParseGetProducesTarget(t *testing.T) {
	root := parseOK(t, "[get:n]")
	seq := seqOf(t, root)
	require.Len(t, seq.Children, 1)
	target, ok := seq.Children[0].(*rst.Target)
	require.True(t, ok)
	assert.Equal(t, "n", target.Name)
}

func TestParseMarkDistSend(t *testing.T) {
	root := parseOK(t, "[mark:a]x[mark:b][send:n;[dist:a;b]]")
	seq := seqOf(t, root)
	var sawMarkA, sawMarkB, sawSend bool
	for _, c := range seq.Children {
		switch n := c.(type) {
		case *rst.Mark:
			if n.Name == "a" {
				sawMarkA = true
			}
			if n.Name == "b" {
				sawMarkB = true
			}
		case *rst.Send:
			sawSend = true
			assert.Equal(t, "n", n.Name)
			require.NotNil(t, n.Body)
			dist, ok := unwrap(n.Body).(*rst.Dist)
			require.True(t, ok)
			assert.Equal(t, "a", dist.A)
			assert.Equal(t, "b", dist.B)
		}
	}
	assert.True(t, sawMarkA)
	assert.True(t, sawMarkB)
	assert.True(t, sawSend)
}

func TestParseOneArgSendRecordsArityDiagnostic(t *testing.T) {
	root, diags, err := Parse("[send:n]")
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	var sawArityError bool
	for _, d := range diags {
		if d.Code == "parser.send-arity" {
			sawArityError = true
		}
	}
	assert.True(t, sawArityError)

	seq := seqOf(t, root)
	for _, c := range seq.Children {
		_, isSend := c.(*rst.Send)
		assert.False(t, isSend, "a malformed [send] should not produce an rst.Send node")
	}
}

func TestParseSetAndReplace(t *testing.T) {
	root := parseOK(t, "[set:name;Bob]Hello %name%")
	seq := seqOf(t, root)
	var sawSet, sawGet bool
	for _, c := range seq.Children {
		switch n := c.(type) {
		case *rst.SetVar:
			sawSet = true
			assert.Equal(t, "name", n.Name)
		case *rst.GetVar:
			sawGet = true
			assert.Equal(t, "name", n.Name)
		}
	}
	assert.True(t, sawSet)
	assert.True(t, sawGet)
}

func TestParseChannel(t *testing.T) {
	root := parseOK(t, "[chan:log;private]{hidden}")
	seq := seqOf(t, root)
	require.Len(t, seq.Children, 1)
	ch, ok := seq.Children[0].(*rst.Channel)
	require.True(t, ok)
	assert.Equal(t, "log", ch.Name)
	assert.Equal(t, rst.Private, ch.Visibility)
	require.NotNil(t, ch.Body)
}

func TestParseConditional(t *testing.T) {
	root := parseOK(t, "[if:[eq:1;1];yes;no]")
	seq := seqOf(t, root)
	require.Len(t, seq.Children, 1)
	cond, ok := seq.Children[0].(*rst.Conditional)
	require.True(t, ok)
	require.NotNil(t, cond.Cond)
	require.NotNil(t, cond.Then)
	require.NotNil(t, cond.Else)
}

func TestParseArithmeticOp(t *testing.T) {
	root := parseOK(t, "[add:1;2]")
	seq := seqOf(t, root)
	arith, ok := seq.Children[0].(*rst.Arithmetic)
	require.True(t, ok)
	assert.Equal(t, rst.OpAdd, arith.Op)
}

func TestParseGenericTagFallsThroughToRegistry(t *testing.T) {
	root := parseOK(t, "[numfmt:verbal;5]")
	seq := seqOf(t, root)
	tag, ok := seq.Children[0].(*rst.Tag)
	require.True(t, ok)
	assert.Equal(t, "numfmt", tag.Name)
	require.Len(t, tag.Args, 2)
	assert.Equal(t, "verbal", tag.Args[0].Raw)
	assert.Equal(t, "5", tag.Args[1].Raw)
}

func TestParseQueryNode(t *testing.T) {
	root := parseOK(t, "<noun-animal.plural>")
	seq := seqOf(t, root)
	qn, ok := seq.Children[0].(*rst.QueryNode)
	require.True(t, ok)
	assert.Equal(t, "noun-animal", qn.Query.Table)
	assert.Equal(t, "plural", qn.Query.Subtype)
}

func TestParseListLiteral(t *testing.T) {
	root := parseOK(t, "@(1, 2, 3)")
	seq := seqOf(t, root)
	list, ok := seq.Children[0].(*rst.ListLiteral)
	require.True(t, ok)
	require.Len(t, list.Items, 3)
}

func TestParseSubroutineDefAndCall(t *testing.T) {
	root := parseOK(t, "$greet(name){Hi %name%}$greet(Bob)")
	seq := seqOf(t, root)
	var sawDef, sawCall bool
	for _, c := range seq.Children {
		switch n := c.(type) {
		case *rst.SubroutineDef:
			sawDef = true
			assert.Equal(t, "greet", n.Name)
			require.Equal(t, []string{"name"}, n.Params)
		case *rst.SubroutineCall:
			sawCall = true
			assert.Equal(t, "greet", n.Name)
			require.Len(t, n.Args, 1)
		}
	}
	assert.True(t, sawDef)
	assert.True(t, sawCall)
}

func TestParseEscapes(t *testing.T) {
	root := parseOK(t, `a\sb`)
	seq := seqOf(t, root)
	var text string
	for _, c := range seq.Children {
		if lit, ok := c.(*rst.Literal); ok {
			text += lit.Text
		}
	}
	assert.Equal(t, "a b", text)
}

func TestParseRandomCharEscape(t *testing.T) {
	root := parseOK(t, `\8,x`)
	seq := seqOf(t, root)
	require.Len(t, seq.Children, 1)
	rc, ok := seq.Children[0].(*rst.RandomChar)
	require.True(t, ok)
	assert.Equal(t, byte('x'), rc.Kind)
	assert.Equal(t, 8, rc.Count)
}

func TestParseUnclosedTagRecordsDiagnostic(t *testing.T) {
	_, diags, err := Parse("[mark:a")
	require.NoError(t, err)
	assert.NotEmpty(t, diags)
}

func TestParseMaxDepthGuard(t *testing.T) {
	src := ""
	for i := 0; i < maxDepth+10; i++ {
		src += "{"
	}
	_, diags, err := Parse(src)
	require.NoError(t, err)
	var sawDepthError bool
	for _, d := range diags {
		if d.Code == "parser.max-depth" {
			sawDepthError = true
		}
	}
	assert.True(t, sawDepthError)
}
