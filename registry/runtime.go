/*
File    : rant/registry/runtime.go
Package : registry
*/
package registry

import "github.com/mouzizhang/rant/rst"

// BlockState describes the currently executing block instance, as needed by
// the first/last/even/odd/notlast/nth builtins.
type BlockState struct {
	Index       int // 0-based index of the iteration currently executing
	Total       int // total iterations, -1 if unbounded
	BranchCount int
}

// Runtime is the callback surface a builtin's Handler receives, mirroring
// the teacher's std.Runtime pattern: a narrow capability interface letting
// registered functions reach back into the engine without importing it.
type Runtime interface {
	// RandFloat64 returns the next uniform [0,1) draw.
	RandFloat64() float64
	// RandIntn returns a uniform draw in [0,n).
	RandIntn(n int) int

	// GetVar looks up a variable in the current scope chain.
	GetVar(name string) (rst.Value, bool)
	// SetVar binds a variable in the current scope.
	SetVar(name string, v rst.Value)

	// CurrentBlock returns the innermost active block's state, if any.
	CurrentBlock() (BlockState, bool)

	// PushFormat activates a formatting mode (capitalization, article,
	// number format) for the remainder of the enclosing scope.
	PushFormat(kind, value string)
	// GetFormat returns the innermost active value for a formatting kind.
	GetFormat(kind string) (string, bool)
}
