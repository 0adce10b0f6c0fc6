package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedCycles(t *testing.T) {
	sel := New("ordered", 3, nil)
	rng := rand.New(rand.NewSource(1))
	got := []int{sel.Next(rng), sel.Next(rng), sel.Next(rng), sel.Next(rng)}
	assert.Equal(t, []int{0, 1, 2, 0}, got)
}

func TestNoRepeatNeverRepeats(t *testing.T) {
	sel := New("no-repeat", 4, nil)
	rng := rand.New(rand.NewSource(42))
	prev := -1
	for i := 0; i < 200; i++ {
		idx := sel.Next(rng)
		require.NotEqual(t, prev, idx)
		prev = idx
	}
}

func TestPingPongSequence(t *testing.T) {
	n := 4
	sel := New("ping-pong", n, nil)
	rng := rand.New(rand.NewSource(7))
	got := make([]int, 2*n-2)
	for i := range got {
		got[i] = sel.Next(rng)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 2, 1}, got)
}

func TestLockedPicksOnce(t *testing.T) {
	sel := New("locked", 5, nil)
	rng := rand.New(rand.NewSource(3))
	first := sel.Next(rng)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, sel.Next(rng))
	}
}

func TestRandShuffleNoBoundaryRepeat(t *testing.T) {
	n := 3
	sel := New("rand-shuffle", n, nil)
	rng := rand.New(rand.NewSource(99))
	var lastOfCycle int
	for cycle := 0; cycle < 50; cycle++ {
		first := sel.Next(rng)
		if cycle > 0 {
			require.NotEqual(t, lastOfCycle, first)
		}
		var last int
		for i := 1; i < n; i++ {
			last = sel.Next(rng)
		}
		lastOfCycle = last
		_ = first
	}
}

func TestCdeckExhaustsBeforeRepeating(t *testing.T) {
	n := 4
	sel := New("cdeck", n, nil)
	rng := rand.New(rand.NewSource(5))
	seen := map[int]bool{}
	for i := 0; i < n; i++ {
		idx := sel.Next(rng)
		require.False(t, seen[idx], "cdeck repeated %d within one cycle", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, n)
}

func TestWeightedRespectsZeroAsUnweighted(t *testing.T) {
	sel := New("random", 2, []float64{0, 0})
	rng := rand.New(rand.NewSource(11))
	counts := [2]int{}
	for i := 0; i < 1000; i++ {
		counts[sel.Next(rng)]++
	}
	assert.InDelta(t, 500, counts[0], 120)
	assert.InDelta(t, 500, counts[1], 120)
}

func TestSynchronizerSameShapeAdvancesTogether(t *testing.T) {
	reg := NewRegistry()
	rng := rand.New(rand.NewSource(1))
	a := reg.Get("x", 3, nil, "ordered", rng)
	b := reg.Get("x", 3, nil, "ordered", rng)
	assert.Same(t, a, b)
	for i := 0; i < 4; i++ {
		assert.Equal(t, a.Next(rng), b.Next(rng))
	}
}

func TestSynchronizerRebindsOnShapeMismatch(t *testing.T) {
	reg := NewRegistry()
	rng := rand.New(rand.NewSource(1))
	a := reg.Get("x", 3, nil, "ordered", rng)
	b := reg.Get("x", 5, nil, "ordered", rng)
	assert.NotSame(t, a, b)
}
