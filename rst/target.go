/*
File    : rant/rst/target.go
Package : rst

Target implements [get:name] (spec.md §4.G): it declares name as a send
target at the current output position. A later Send with the same name
writes its evaluated text into this position once the root node finishes
executing.
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// Target declares a named target region at the point it executes.
type Target struct {
	Name string
	Pos  diagnostic.Span
}

// NewTarget constructs a Target node.
func NewTarget(name string, span diagnostic.Span) *Target {
	return &Target{Name: name, Pos: span}
}

// Execute implements Node.
func (n *Target) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	s.OpenTarget(n.Name)
	return nil
}

// Span returns the node's source location.
func (n *Target) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Target) TypeID() uint8 { return uint8(typeIDTarget) }

// Encode implements Node.
func (n *Target) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
}

func decodeTarget(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Target{Name: name, Pos: span}, nil
}

func init() { registerDecoder(typeIDTarget, decodeTarget) }
