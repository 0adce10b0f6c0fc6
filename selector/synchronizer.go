/*
File    : rant/selector/synchronizer.go
Package : selector
*/
package selector

import "math/rand"

// Synchronizer lets two or more blocks that declare the same sync name
// advance through branch indices together, provided they share the same
// branch count (spec.md §4.H, invariant vi). If a block's branch count
// differs from the synchronizer's, the synchronizer rebinds to the new
// shape and its sequence restarts.
type Synchronizer struct {
	name         string
	branchCount  int
	strategyName string
	sel          Selector
}

// Registry holds the named synchronizers active for one engine run. It is
// not safe for concurrent use, matching the rest of the VM's single-threaded
// execution model (spec.md §5).
type Registry struct {
	byName map[string]*Synchronizer
}

// NewRegistry constructs an empty synchronizer registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Synchronizer)}
}

// Get returns the selector a block should use for the given sync name,
// branch count, and requested strategy, creating or rebinding the
// synchronizer as needed.
func (r *Registry) Get(name string, branchCount int, weights []float64, strategyName string, rng *rand.Rand) Selector {
	sync, ok := r.byName[name]
	if !ok || sync.branchCount != branchCount {
		sync = &Synchronizer{
			name:         name,
			branchCount:  branchCount,
			strategyName: strategyName,
			sel:          New(strategyName, branchCount, weights),
		}
		r.byName[name] = sync
	}
	return sync.sel
}
