/*
File    : rant/rst/block.go
Package : rst

Block is the node produced for a `{a|b|c}` construct, together with any
`[rep:n]`, `[sep:...]`, `[before:...]`, `[after:...]`, `[sync:name;selector]`
modifiers the parser attached to it (see parser.pendingModifiers). A block
with no Rep expression runs exactly one iteration, which is what spec.md's
data model calls a "Block"; a block with a Rep expression is what spec.md
calls a "Repeater" — the two share one node type because they share every
execution rule except the iteration count.
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// Block is the node for `{branch|branch|...}`, optionally modified by a
// repeat count, separator, before/after wrappers, a named selector
// strategy, and a synchronizer name.
type Block struct {
	Branches     []Node
	Weights      []float64 // parallel to Branches; 0 means "unweighted" (treated as 1)
	Rep          Node      // nil means exactly one iteration
	Sep          Node      // nil means no separator
	Before       Node
	After        Node
	SelectorName string // "" defaults to "random"
	SyncName     string // "" means no synchronizer
	Pos          diagnostic.Span
}

// NewBlock constructs a Block node.
func NewBlock(branches []Node, weights []float64, span diagnostic.Span) *Block {
	return &Block{Branches: branches, Weights: weights, Pos: span}
}

// Execute drives the block's selector for each iteration, writing Before
// once, Sep strictly between iterations, and After once, per spec.md §4.G.
func (n *Block) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}

	repCount := 1
	if n.Rep != nil {
		text, err := s.SubOutput(func() error { return n.Rep.Execute(s) })
		if err != nil {
			return err
		}
		if v, ok := parseRepCount(text); ok {
			repCount = v
		}
	}

	handle, err := s.PushBlock(len(n.Branches), repCount, n.Weights, n.SelectorName, n.SyncName)
	if err != nil {
		return err
	}
	defer s.PopBlock()

	if n.Before != nil {
		if err := n.Before.Execute(s); err != nil {
			return err
		}
	}

	for i := 0; i < repCount; i++ {
		if i > 0 && n.Sep != nil {
			if err := n.Sep.Execute(s); err != nil {
				return err
			}
		}
		idx, ok := handle.Next()
		if !ok {
			break
		}
		if idx < 0 || idx >= len(n.Branches) {
			continue
		}
		if err := n.Branches[idx].Execute(s); err != nil {
			return err
		}
	}

	if n.After != nil {
		if err := n.After.Execute(s); err != nil {
			return err
		}
	}
	return nil
}

func parseRepCount(s string) (int, bool) {
	n := 0
	seenDigit := false
	for _, r := range s {
		if r < '0' || r > '9' {
			if seenDigit {
				break
			}
			continue
		}
		seenDigit = true
		n = n*10 + int(r-'0')
	}
	return n, seenDigit
}

// Span returns the node's source location.
func (n *Block) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Block) TypeID() uint8 { return uint8(typeIDBlock) }

// Encode implements Node.
func (n *Block) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteNodeSlice(n.Branches)
	e.WriteUvarint(uint64(len(n.Weights)))
	for _, w := range n.Weights {
		e.WriteFloat64(w)
	}
	e.WriteNode(n.Rep)
	e.WriteNode(n.Sep)
	e.WriteNode(n.Before)
	e.WriteNode(n.After)
	e.WriteString(n.SelectorName)
	e.WriteString(n.SyncName)
}

func decodeBlock(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	branches, err := d.ReadNodeSlice()
	if err != nil {
		return nil, err
	}
	wcount := d.ReadUvarint()
	weights := make([]float64, 0, wcount)
	for i := uint64(0); i < wcount; i++ {
		weights = append(weights, d.ReadFloat64())
	}
	rep, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	sep, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	before, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	after, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	selectorName := d.ReadString()
	syncName := d.ReadString()
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Block{
		Branches:     branches,
		Weights:      weights,
		Rep:          rep,
		Sep:          sep,
		Before:       before,
		After:        after,
		SelectorName: selectorName,
		SyncName:     syncName,
		Pos:          span,
	}, nil
}

func init() { registerDecoder(typeIDBlock, decodeBlock) }
