/*
File    : rant/rst/literal.go
Package : rst
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// Literal is a run of plain pattern text, appended verbatim to the output
// when executed.
type Literal struct {
	Text string
	Pos  diagnostic.Span
}

// NewLiteral constructs a Literal node.
func NewLiteral(text string, span diagnostic.Span) *Literal {
	return &Literal{Text: text, Pos: span}
}

// Execute appends the literal text to the active output channels.
func (n *Literal) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	if err := s.CheckOutput(len(n.Text)); err != nil {
		return err
	}
	s.Write(n.Text)
	return nil
}

// Span returns the node's source location.
func (n *Literal) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Literal) TypeID() uint8 { return uint8(typeIDLiteral) }

// Encode implements Node.
func (n *Literal) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Text)
}

func decodeLiteral(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	text := d.ReadString()
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Literal{Text: text, Pos: span}, nil
}

func init() { registerDecoder(typeIDLiteral, decodeLiteral) }
