/*
File    : rant/vm/blockstate.go
Package : vm
*/
package vm

import (
	"math/rand"

	"github.com/mouzizhang/rant/registry"
	"github.com/mouzizhang/rant/rst"
	"github.com/mouzizhang/rant/selector"
)

// blockState is one dynamic block instance's state (spec.md §3 "Block
// state"): the selector driving branch choice, the declared iteration
// total, and how many iterations have run so far.
type blockState struct {
	branchCount int
	total       int
	index       int // iterations completed so far (0 before the first Next())
	sel         selector.Selector
	rng         *rand.Rand
}

// Next implements rst.BlockHandle.
func (b *blockState) Next() (int, bool) {
	idx := b.sel.Next(b.rng)
	b.index++
	return idx, true
}

// Index implements rst.BlockHandle.
func (b *blockState) Index() int { return b.index }

var _ rst.BlockHandle = (*blockState)(nil)

// asRegistryState converts this block's dynamic state into the shape the
// function registry's built-ins (first/last/even/odd/notlast/nth) expect.
func (b *blockState) asRegistryState() registry.BlockState {
	return registry.BlockState{
		Index:       b.index - 1, // the iteration currently executing, 0-based
		Total:       b.total,
		BranchCount: b.branchCount,
	}
}
