/*
File    : rant/vm/engine.go
Package : vm

Package vm is the tree-walking interpreter (spec.md §4.G): Engine implements
rst.State so any compiled rst.Node can execute against it, and implements
registry.Runtime so the function registry's built-ins can call back into the
same state.
*/
package vm

import (
	"fmt"
	"math/rand"
	"unicode/utf8"

	"github.com/mouzizhang/rant/dictionary"
	"github.com/mouzizhang/rant/query"
	"github.com/mouzizhang/rant/registry"
	"github.com/mouzizhang/rant/rst"
	"github.com/mouzizhang/rant/selector"
)

// Budgets bounds a single execution (spec.md §5 "Cancellation / timeouts").
type Budgets struct {
	MaxSteps  int
	MaxOutput int
}

// DefaultBudgets returns generous limits suitable for interactive use.
func DefaultBudgets() Budgets {
	return Budgets{MaxSteps: 1_000_000, MaxOutput: 10_000_000}
}

// Engine is one execution's full dynamic state. A fresh Engine must be
// constructed per run (spec.md §5 "An engine state is not shared across
// executions").
type Engine struct {
	rng *rand.Rand

	channels *channelSet
	targets  *targetTracker
	format   *formatState

	rootScope *scope
	curScope  *scope
	rootSubs  *subScope
	curSubs   *subScope

	blocks []*blockState
	syncs  *selector.Registry

	dict     dictionary.Dictionary
	queryEng *dictionary.Engine
	registry *registry.Registry

	budgets Budgets
	steps   int
	output  int
}

// New constructs an Engine seeded with seed, resolving queries against dict
// (which may be nil) and dispatching Tag calls through reg.
func New(seed int64, dict dictionary.Dictionary, reg *registry.Registry) *Engine {
	root := newScope(nil)
	rootSubs := newSubScope(nil)
	e := &Engine{
		rng:       rand.New(rand.NewSource(seed)),
		channels:  newChannelSet(),
		targets:   newTargetTracker(),
		format:    newFormatState(),
		rootScope: root,
		curScope:  root,
		rootSubs:  rootSubs,
		curSubs:   rootSubs,
		syncs:     selector.NewRegistry(),
		dict:      dict,
		registry:  reg,
		budgets:   DefaultBudgets(),
	}
	if dict != nil {
		e.queryEng = dictionary.NewEngine(dict)
	}
	return e
}

// SetBudgets overrides the default step/output budgets.
func (e *Engine) SetBudgets(b Budgets) { e.budgets = b }

// RunResult is the output of a completed execution (spec.md §6).
type RunResult struct {
	Main     string
	Channels map[string]string
}

// Run executes root to completion, then resolves deferred sends and returns
// the resulting channels.
func (e *Engine) Run(root rst.Node) (RunResult, error) {
	if root == nil {
		return RunResult{}, nil
	}
	if err := root.Execute(e); err != nil {
		return RunResult{}, err
	}
	main, others := e.channels.results()
	main = e.targets.resolve(main)
	for name, text := range others {
		others[name] = e.targets.resolve(text)
	}
	return RunResult{Main: main, Channels: others}, nil
}

// --- rst.State ---

// Write implements rst.State.
func (e *Engine) Write(text string) { e.channels.write(text) }

// PushChannel implements rst.State.
func (e *Engine) PushChannel(name string, visibility rst.ChannelVisibility) {
	e.channels.push(name, visibility)
}

// PopChannel implements rst.State.
func (e *Engine) PopChannel() { e.channels.pop() }

// PushBlock implements rst.State.
func (e *Engine) PushBlock(branchCount, iterations int, weights []float64, selectorName, syncName string) (rst.BlockHandle, error) {
	if branchCount <= 0 {
		return nil, fmt.Errorf("vm: block has no branches")
	}
	var sel selector.Selector
	if syncName != "" {
		sel = e.syncs.Get(syncName, branchCount, weights, selectorName, e.rng)
	} else {
		sel = selector.New(selectorName, branchCount, weights)
	}
	bs := &blockState{branchCount: branchCount, total: iterations, sel: sel, rng: e.rng}
	e.blocks = append(e.blocks, bs)
	return bs, nil
}

// PopBlock implements rst.State.
func (e *Engine) PopBlock() {
	if len(e.blocks) == 0 {
		return
	}
	e.blocks = e.blocks[:len(e.blocks)-1]
}

// GetVar implements rst.State and registry.Runtime.
func (e *Engine) GetVar(name string) (rst.Value, bool) { return e.curScope.lookup(name) }

// SetVar implements rst.State and registry.Runtime.
func (e *Engine) SetVar(name string, v rst.Value) { e.curScope.bind(name, v) }

// PushScope implements rst.State.
func (e *Engine) PushScope() {
	e.curScope = newScope(e.curScope)
	e.curSubs = newSubScope(e.curSubs)
	e.format.enterScope()
}

// PopScope implements rst.State.
func (e *Engine) PopScope() {
	if e.curScope.parent != nil {
		e.curScope = e.curScope.parent
	}
	if e.curSubs.parent != nil {
		e.curSubs = e.curSubs.parent
	}
	e.format.leaveScope()
}

// DefineSub implements rst.State.
func (e *Engine) DefineSub(name string, params []string, body rst.Node) {
	e.curSubs.define(name, subDef{params: params, body: body})
}

// CallSub implements rst.State.
func (e *Engine) CallSub(name string, args []rst.Value) error {
	def, ok := e.curSubs.lookup(name)
	if !ok {
		return fmt.Errorf("vm: unknown subroutine %q", name)
	}
	e.PushScope()
	defer e.PopScope()
	for i, param := range def.params {
		if i < len(args) {
			e.curScope.bind(param, args[i])
		} else {
			e.curScope.bind(param, rst.Value{})
		}
	}
	if def.body == nil {
		return nil
	}
	return def.body.Execute(e)
}

// Mark implements rst.State.
func (e *Engine) Mark(name string) {
	e.targets.mark(name, utf8.RuneCountInString(e.channels.byName["main"].builder.String()))
}

// Dist implements rst.State.
func (e *Engine) Dist(a, b string) (int, error) { return e.targets.dist(a, b) }

// DeferSend implements rst.State.
func (e *Engine) DeferSend(name, text string) { e.targets.defer_(name, text) }

// OpenTarget implements rst.State.
func (e *Engine) OpenTarget(name string) { e.channels.write(e.targets.openToken(name)) }

// ResolveQuery implements rst.State.
func (e *Engine) ResolveQuery(q *query.Query) (string, bool) {
	if e.queryEng == nil {
		return "", false
	}
	entry, ok := e.queryEng.Resolve(q, e.rng)
	if !ok {
		return "", false
	}
	return entry.Surface, true
}

// CallFunction implements rst.State.
func (e *Engine) CallFunction(name string, args []rst.Arg) (string, error) {
	if e.registry == nil {
		return "", fmt.Errorf("vm: no function registry configured")
	}
	raw := make([]string, len(args))
	for i, a := range args {
		raw[i] = a.Raw
	}
	evalArg := func(i int) (string, error) {
		if args[i].Node == nil {
			return "", nil
		}
		return e.channels.isolate(func() error { return args[i].Node.Execute(e) })
	}
	return e.registry.Call(e, name, raw, evalArg)
}

// RandFloat64 implements rst.State and registry.Runtime.
func (e *Engine) RandFloat64() float64 { return e.rng.Float64() }

// RandIntn implements rst.State and registry.Runtime.
func (e *Engine) RandIntn(n int) int {
	if n <= 0 {
		return 0
	}
	return e.rng.Intn(n)
}

// Tick implements rst.State.
func (e *Engine) Tick() error {
	e.steps++
	if e.budgets.MaxSteps > 0 && e.steps > e.budgets.MaxSteps {
		return fmt.Errorf("vm: exceeded step budget (%d)", e.budgets.MaxSteps)
	}
	return nil
}

// CheckOutput implements rst.State.
func (e *Engine) CheckOutput(n int) error {
	e.output += n
	if e.budgets.MaxOutput > 0 && e.output > e.budgets.MaxOutput {
		return fmt.Errorf("vm: exceeded output budget (%d)", e.budgets.MaxOutput)
	}
	return nil
}

// SubOutput implements rst.State.
func (e *Engine) SubOutput(fn func() error) (string, error) {
	return e.channels.isolate(fn)
}

// --- registry.Runtime ---

// CurrentBlock implements registry.Runtime.
func (e *Engine) CurrentBlock() (registry.BlockState, bool) {
	if len(e.blocks) == 0 {
		return registry.BlockState{}, false
	}
	return e.blocks[len(e.blocks)-1].asRegistryState(), true
}

// PushFormat implements registry.Runtime.
func (e *Engine) PushFormat(kind, value string) { e.format.push(kind, value) }

// GetFormat implements registry.Runtime.
func (e *Engine) GetFormat(kind string) (string, bool) { return e.format.get(kind) }

var _ rst.State = (*Engine)(nil)
var _ registry.Runtime = (*Engine)(nil)
