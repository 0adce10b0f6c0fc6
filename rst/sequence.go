/*
File    : rant/rst/sequence.go
Package : rst
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// Sequence executes its children in order. It is the node produced for any
// run of sibling constructs (free text interleaved with tags, blocks,
// queries, etc.) and is also the root node of every compiled Program.
type Sequence struct {
	Children []Node
	Pos      diagnostic.Span
}

// NewSequence constructs a Sequence node.
func NewSequence(children []Node, span diagnostic.Span) *Sequence {
	return &Sequence{Children: children, Pos: span}
}

// Execute runs each child in declared order, stopping at the first error.
func (n *Sequence) Execute(s State) error {
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if err := child.Execute(s); err != nil {
			return err
		}
	}
	return nil
}

// Span returns the node's source location.
func (n *Sequence) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Sequence) TypeID() uint8 { return uint8(typeIDSequence) }

// Encode implements Node.
func (n *Sequence) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteNodeSlice(n.Children)
}

func decodeSequence(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	children, err := d.ReadNodeSlice()
	if err != nil {
		return nil, err
	}
	return &Sequence{Children: children, Pos: span}, nil
}

func init() { registerDecoder(typeIDSequence, decodeSequence) }
