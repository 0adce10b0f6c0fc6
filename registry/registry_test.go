package registry

import (
	"math/rand"
	"testing"

	"github.com/mouzizhang/rant/rst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuntime struct {
	rng     *rand.Rand
	vars    map[string]rst.Value
	formats map[string]string
	block   *BlockState
}

func newFakeRuntime(seed int64) *fakeRuntime {
	return &fakeRuntime{
		rng:     rand.New(rand.NewSource(seed)),
		vars:    map[string]rst.Value{},
		formats: map[string]string{},
	}
}

func (f *fakeRuntime) RandFloat64() float64         { return f.rng.Float64() }
func (f *fakeRuntime) RandIntn(n int) int            { return f.rng.Intn(n) }
func (f *fakeRuntime) GetVar(name string) (rst.Value, bool) {
	v, ok := f.vars[name]
	return v, ok
}
func (f *fakeRuntime) SetVar(name string, v rst.Value) { f.vars[name] = v }
func (f *fakeRuntime) CurrentBlock() (BlockState, bool) {
	if f.block == nil {
		return BlockState{}, false
	}
	return *f.block, true
}
func (f *fakeRuntime) PushFormat(kind, value string) { f.formats[kind] = value }
func (f *fakeRuntime) GetFormat(kind string) (string, bool) {
	v, ok := f.formats[kind]
	return v, ok
}

func evalEcho(args []string) func(i int) (string, error) {
	return func(i int) (string, error) { return args[i], nil }
}

func TestNumfmtThenNumProducesVerbal(t *testing.T) {
	r := NewDefault()
	rt := newFakeRuntime(1)

	_, err := r.Call(rt, "numfmt", []string{"verbal-en"}, evalEcho([]string{"verbal-en"}))
	require.NoError(t, err)

	out, err := r.Call(rt, "num", []string{"1", "1"}, evalEcho([]string{"1", "1"}))
	require.NoError(t, err)
	assert.Equal(t, "one", out)
}

func TestUnknownFunctionErrors(t *testing.T) {
	r := NewDefault()
	rt := newFakeRuntime(1)
	_, err := r.Call(rt, "nope", nil, evalEcho(nil))
	assert.Error(t, err)
}

func TestWrongArityErrors(t *testing.T) {
	r := NewDefault()
	rt := newFakeRuntime(1)
	_, err := r.Call(rt, "rand", []string{"1", "2", "3"}, evalEcho([]string{"1", "2", "3"}))
	assert.Error(t, err)
}

func TestFirstLastEvenOdd(t *testing.T) {
	r := NewDefault()
	rt := newFakeRuntime(1)
	rt.block = &BlockState{Index: 0, Total: 3, BranchCount: 3}

	out, err := r.Call(rt, "first", nil, evalEcho(nil))
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = r.Call(rt, "last", nil, evalEcho(nil))
	require.NoError(t, err)
	assert.Equal(t, "", out)

	rt.block.Index = 2
	out, err = r.Call(rt, "last", nil, evalEcho(nil))
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = r.Call(rt, "even", nil, evalEcho(nil))
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = r.Call(rt, "odd", nil, evalEcho(nil))
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestIndefiniteArticle(t *testing.T) {
	r := NewDefault()
	rt := newFakeRuntime(1)

	out, err := r.Call(rt, "a", []string{"apple"}, evalEcho([]string{"apple"}))
	require.NoError(t, err)
	assert.Equal(t, "an apple", out)

	out, err = r.Call(rt, "an", []string{"dog"}, evalEcho([]string{"dog"}))
	require.NoError(t, err)
	assert.Equal(t, "a dog", out)
}

func TestCaseModes(t *testing.T) {
	r := NewDefault()
	rt := newFakeRuntime(1)

	out, err := r.Call(rt, "case", []string{"upper", "hello"}, evalEcho([]string{"upper", "hello"}))
	require.NoError(t, err)
	assert.Equal(t, "HELLO", out)
}
