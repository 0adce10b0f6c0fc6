/*
File    : rant/rst/list.go
Package : rst
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// ListLiteral is an `@(a, b, c)` list construct. Each item is a sub-output
// run eagerly when the list is evaluated; the list is written in
// Value.String's KindList rendering (items joined with ", " inside square
// brackets).
type ListLiteral struct {
	Items []Node
	Pos   diagnostic.Span
}

// NewListLiteral constructs a ListLiteral node.
func NewListLiteral(items []Node, span diagnostic.Span) *ListLiteral {
	return &ListLiteral{Items: items, Pos: span}
}

// Execute evaluates each item and writes the list's joined rendering.
func (n *ListLiteral) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	v, err := n.Eval(s)
	if err != nil {
		return err
	}
	text := v.String()
	if err := s.CheckOutput(len(text)); err != nil {
		return err
	}
	s.Write(text)
	return nil
}

// Eval evaluates each item in its own sub-output and returns the resulting
// KindList Value, without writing it to the active channel. Execute is its
// only caller; SetVar and subroutine arguments bind the list's text.
func (n *ListLiteral) Eval(s State) (Value, error) {
	items := make([]Value, 0, len(n.Items))
	for _, item := range n.Items {
		text, err := s.SubOutput(func() error {
			if item == nil {
				return nil
			}
			return item.Execute(s)
		})
		if err != nil {
			return Value{}, err
		}
		items = append(items, StringValue(text))
	}
	return ListValue(items), nil
}

// Span returns the node's source location.
func (n *ListLiteral) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *ListLiteral) TypeID() uint8 { return uint8(typeIDListLiteral) }

// Encode implements Node.
func (n *ListLiteral) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteNodeSlice(n.Items)
}

func decodeListLiteral(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	items, err := d.ReadNodeSlice()
	if err != nil {
		return nil, err
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &ListLiteral{Items: items, Pos: span}, nil
}

func init() { registerDecoder(typeIDListLiteral, decodeListLiteral) }
