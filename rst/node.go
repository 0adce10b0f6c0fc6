/*
File    : rant/rst/node.go
Package : rst

Package rst defines the Runtime Syntax Tree: the typed, executable form a
compiled Rant pattern takes (spec.md §3, §4.E). Every variant implements
Node; each carries a stable small-integer type id used by the binary codec
and a source Span for diagnostics.

Node deliberately depends only on the State interface below (not on package
vm directly) so the tree-walking engine can live in its own package without
an import cycle: vm.Engine implements State, rst.Node.Execute calls back
into it.
*/
package rst

import (
	"github.com/mouzizhang/rant/diagnostic"
	"github.com/mouzizhang/rant/query"
)

// typeID is the stable small-integer tag written before every node's
// payload by the binary codec.
type typeID uint8

const (
	typeIDNil typeID = iota
	typeIDLiteral
	typeIDSequence
	typeIDBlock
	typeIDTag
	typeIDQuery
	typeIDGetVar
	typeIDSetVar
	typeIDSubDef
	typeIDSubCall
	typeIDConditional
	typeIDArithmetic
	typeIDListLiteral
	typeIDChannel
	typeIDMark
	typeIDDist
	typeIDSend
	typeIDTarget
	typeIDRandomChar
)

// decoders maps each type id to the function that reconstructs that
// variant from a Decoder. Populated by each variant's init().
var decoders = map[typeID]func(*Decoder) (Node, error){}

func registerDecoder(id typeID, fn func(*Decoder) (Node, error)) {
	decoders[id] = fn
}

// Node is the uniform contract every RST variant satisfies: it knows how to
// execute against engine State and how to serialize/deserialize itself.
type Node interface {
	// Execute runs this node's effect against the given engine state.
	Execute(State) error
	// Span returns this node's source location, for diagnostics.
	Span() diagnostic.Span
	// TypeID returns this variant's stable small-integer tag.
	TypeID() uint8
	// Encode writes this node's variant-specific payload (not including the
	// type id, which Encoder.WriteNode writes first).
	Encode(*Encoder)
}

// State is the subset of engine behavior an RST node needs in order to
// execute. package vm's Engine implements this; nodes never import vm.
type State interface {
	// Write appends text to every currently-visible output channel.
	Write(text string)

	// PushChannel begins directing output additionally to a named channel
	// with the given visibility, in addition to channels already active.
	PushChannel(name string, visibility ChannelVisibility)
	// PopChannel ends the most recently pushed channel redirection.
	PopChannel()

	// PushBlock begins a new block instance with n branches, iterations
	// total iterations (the repeat count; 1 for a plain block), and the
	// given selector name/sync name (empty sync name means "no
	// synchronizer"). It returns the block's dynamic state for the caller
	// to drive.
	PushBlock(branchCount, iterations int, weights []float64, selectorName, syncName string) (BlockHandle, error)
	// PopBlock ends the current block instance.
	PopBlock()

	// GetVar looks up a variable by name in the current scope chain.
	GetVar(name string) (Value, bool)
	// SetVar binds name in the current (innermost) scope.
	SetVar(name string, v Value)

	// PushScope opens a new variable scope (subroutine call) as a child of
	// the current one. Block iteration does not get its own scope: a
	// [set:...]/formatting tag issued inside one branch stays visible to
	// later branches and past the block's close, per spec.md §4.G (only
	// subroutine call is specified as scope-bounded).
	PushScope()
	// PopScope closes the innermost variable scope.
	PopScope()

	// DefineSub registers name as a callable subroutine bound to body with
	// the given parameter names, in the current scope.
	DefineSub(name string, params []string, body Node)
	// CallSub invokes a previously defined subroutine with positional
	// arguments bound to its parameters.
	CallSub(name string, args []Value) error

	// Mark records the current output position under name, measured in the
	// main channel.
	Mark(name string)
	// Dist returns the character distance between two previously recorded
	// marks.
	Dist(a, b string) (int, error)
	// DeferSend schedules text to be written at the target region declared
	// by name once the root node finishes executing (spec.md §4.G).
	DeferSend(name string, text string)
	// OpenTarget declares name as a send target at the current output
	// position.
	OpenTarget(name string)

	// ResolveQuery runs the query engine (package dictionary) against the
	// active dictionary and returns the chosen entry's surface form.
	ResolveQuery(q *query.Query) (string, bool)

	// CallFunction invokes a registered function by name, resolving the
	// overload by len(args). Each Arg carries both its raw source text and
	// its argument RST; the callee (via the function registry) decides per
	// parameter whether to use the raw text or to execute the RST in a
	// fresh sub-output ("cooked" mode, spec.md §4.J).
	CallFunction(name string, args []Arg) (string, error)

	// RandFloat64 returns the next uniform [0,1) draw from the engine's
	// seeded PRNG.
	RandFloat64() float64
	// RandIntn returns a uniform draw in [0,n) from the engine's seeded
	// PRNG.
	RandIntn(n int) int

	// Tick consumes one step of the execution step budget, returning an
	// error if the budget is exhausted (spec.md §5).
	Tick() error
	// CheckOutput consumes n bytes of the output-length budget.
	CheckOutput(n int) error

	// SubOutput runs fn with a fresh, isolated output buffer pushed as the
	// sole active channel, and returns what it wrote. Used wherever a node
	// needs a child's text rather than its output (repeat counts, conditions,
	// operands, list items, set/send bodies, subroutine arguments).
	SubOutput(fn func() error) (string, error)
}

// Arg is one argument to a Tag (function call) node: both its raw source
// text (for raw-mode parameters) and its parsed RST (for cooked-mode
// parameters, executed lazily in a sub-output only if the callee asks for
// it).
type Arg struct {
	Raw  string
	Node Node
}

// ChannelVisibility controls whether a channel's contents are exposed in
// the final RunResult (spec.md §3 "Channel").
type ChannelVisibility int

const (
	// Public channels appear in the final result.
	Public ChannelVisibility = iota
	// Private channels never appear in the final result.
	Private
	// Internal channels are appended to their parent channel but are not
	// separately exposed.
	Internal
)

// BlockHandle lets a Block/Repeater node drive one iteration at a time
// without the node needing to know how selection or synchronization work.
type BlockHandle interface {
	// Next returns the branch index to execute next. The vm implementation
	// always reports ok=true; Block.Execute bounds the iteration count
	// itself.
	Next() (index int, ok bool)
	// Index returns the number of iterations started so far (Next calls,
	// including the one currently executing).
	Index() int
}
