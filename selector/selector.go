/*
File    : rant/selector/selector.go
Package : selector

Package selector implements the seven branch-selection strategies a Block
node can run under (spec.md §4.H), plus the Synchronizer registry that lets
two blocks of equal branch count advance together.
*/
package selector

import "math/rand"

// Selector picks the next branch index for a block instance. Implementations
// hold whatever persistent state their strategy needs (last index, shuffled
// deck, direction) and are not safe for concurrent use — each block instance
// owns its own Selector (or shares one via a Synchronizer).
type Selector interface {
	// Next returns the next branch index in [0,n).
	Next(rng *rand.Rand) int
}

// New constructs the named strategy over n branches with the given
// per-branch weights (len(weights) == n; a zero weight means "unweighted",
// treated as 1). Unknown names default to "random", matching the teacher's
// convention of falling back rather than failing at runtime for a cosmetic
// mistyped tag argument.
func New(name string, n int, weights []float64) Selector {
	switch name {
	case "ordered":
		return &ordered{n: n}
	case "rand-shuffle":
		return newRandShuffle(n)
	case "cdeck":
		return newCdeck(n)
	case "locked":
		return &locked{n: n, picked: false}
	case "ping-pong":
		return newPingPong(n)
	case "no-repeat":
		return &noRepeat{n: n, prev: -1}
	default:
		return &weighted{n: n, weights: normalizeWeights(n, weights)}
	}
}

func normalizeWeights(n int, weights []float64) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < len(weights) && weights[i] > 0 {
			out[i] = weights[i]
		} else {
			out[i] = 1
		}
	}
	return out
}

// weighted is the "random" default strategy: each pick is independent,
// weighted by the cumulative-distribution rule documented in DESIGN.md
// (accumulate weights into a running sum, draw uniform over the total, scan
// for the first branch whose cumulative bound exceeds the draw).
type weighted struct {
	n       int
	weights []float64
}

func (s *weighted) Next(rng *rand.Rand) int {
	if s.n <= 0 {
		return 0
	}
	total := 0.0
	for _, w := range s.weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(s.n)
	}
	draw := rng.Float64() * total
	cum := 0.0
	for i, w := range s.weights {
		cum += w
		if draw < cum {
			return i
		}
	}
	return s.n - 1
}

// ordered cycles 0, 1, ..., n-1, 0, 1, ...
type ordered struct {
	n    int
	next int
}

func (s *ordered) Next(rng *rand.Rand) int {
	if s.n <= 0 {
		return 0
	}
	idx := s.next % s.n
	s.next++
	return idx
}

// locked picks once on first use and returns that index forever after.
type locked struct {
	n      int
	picked bool
	index  int
}

func (s *locked) Next(rng *rand.Rand) int {
	if !s.picked {
		if s.n > 0 {
			s.index = rng.Intn(s.n)
		}
		s.picked = true
	}
	return s.index
}

// noRepeat draws uniformly but never repeats the previous index.
type noRepeat struct {
	n    int
	prev int
}

func (s *noRepeat) Next(rng *rand.Rand) int {
	if s.n <= 0 {
		return 0
	}
	if s.n == 1 {
		s.prev = 0
		return 0
	}
	idx := rng.Intn(s.n)
	for idx == s.prev {
		idx = rng.Intn(s.n)
	}
	s.prev = idx
	return idx
}

// pingPong walks the triangle wave 0,1,...,n-1,n-2,...,1,0,1,... forever
// (period 2n-2 for n>=2; a single-branch block always returns 0).
type pingPong struct {
	n       int
	step    int
	started bool
}

func newPingPong(n int) *pingPong {
	return &pingPong{n: n}
}

func (s *pingPong) Next(rng *rand.Rand) int {
	if s.n <= 1 {
		return 0
	}
	if !s.started {
		s.started = true
	} else {
		s.step++
	}
	period := 2*s.n - 2
	pos := s.step % period
	if pos < s.n {
		return pos
	}
	return period - pos
}

// randShuffle draws a uniform random permutation each cycle, guaranteeing
// the last element of one cycle never repeats as the first of the next
// (spec.md §8 "Rand-shuffle no-boundary-repeat").
type randShuffle struct {
	n       int
	deck    []int
	pos     int
	lastEnd int
	hasLast bool
}

func newRandShuffle(n int) *randShuffle {
	return &randShuffle{n: n, pos: -1}
}

func (s *randShuffle) Next(rng *rand.Rand) int {
	if s.n <= 0 {
		return 0
	}
	s.pos++
	if s.pos >= len(s.deck) {
		s.reshuffle(rng)
		s.pos = 0
	}
	idx := s.deck[s.pos]
	if s.pos == len(s.deck)-1 {
		s.lastEnd = idx
		s.hasLast = true
	}
	return idx
}

func (s *randShuffle) reshuffle(rng *rand.Rand) {
	deck := make([]int, s.n)
	for i := range deck {
		deck[i] = i
	}
	for {
		rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
		if s.n == 1 || !s.hasLast || deck[0] != s.lastEnd {
			break
		}
	}
	s.deck = deck
}

// cdeck is like randShuffle but never reshuffles mid-flight on a boundary
// rule: once a deck is dealt it is exhausted, then a fresh shuffle begins;
// unlike randShuffle it does not reject a first card equal to the previous
// deck's last card (it "cycles cold").
type cdeck struct {
	n    int
	deck []int
	pos  int
}

func newCdeck(n int) *cdeck {
	return &cdeck{n: n, pos: -1}
}

func (s *cdeck) Next(rng *rand.Rand) int {
	if s.n <= 0 {
		return 0
	}
	s.pos++
	if s.pos >= len(s.deck) || s.deck == nil {
		deck := make([]int, s.n)
		for i := range deck {
			deck[i] = i
		}
		rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
		s.deck = deck
		s.pos = 0
	}
	return s.deck[s.pos]
}
