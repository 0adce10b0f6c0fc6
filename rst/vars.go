/*
File    : rant/rst/vars.go
Package : rst
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// GetVar looks up a variable and appends its string form to the output.
type GetVar struct {
	Name string
	Pos  diagnostic.Span
}

// NewGetVar constructs a GetVar node.
func NewGetVar(name string, span diagnostic.Span) *GetVar {
	return &GetVar{Name: name, Pos: span}
}

// Execute appends the variable's current value, or nothing if unbound.
func (n *GetVar) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	v, ok := s.GetVar(n.Name)
	if !ok {
		return nil
	}
	text := v.String()
	if err := s.CheckOutput(len(text)); err != nil {
		return err
	}
	s.Write(text)
	return nil
}

// Span returns the node's source location.
func (n *GetVar) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *GetVar) TypeID() uint8 { return uint8(typeIDGetVar) }

// Encode implements Node.
func (n *GetVar) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
}

func decodeGetVar(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &GetVar{Name: name, Pos: span}, nil
}

func init() { registerDecoder(typeIDGetVar, decodeGetVar) }

// SetVar evaluates its Value child in a sub-output and binds the resulting
// string to Name in the current scope. It is what `[set:name;pattern]`
// compiles to; an Arithmetic or ListLiteral value is bound as its text.
type SetVar struct {
	Name  string
	Value Node
	Pos   diagnostic.Span
}

// NewSetVar constructs a SetVar node.
func NewSetVar(name string, value Node, span diagnostic.Span) *SetVar {
	return &SetVar{Name: name, Value: value, Pos: span}
}

// Execute runs Value in a sub-output and binds the resulting text to Name.
func (n *SetVar) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	text, err := s.SubOutput(func() error {
		if n.Value == nil {
			return nil
		}
		return n.Value.Execute(s)
	})
	if err != nil {
		return err
	}
	s.SetVar(n.Name, StringValue(text))
	return nil
}

// Span returns the node's source location.
func (n *SetVar) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *SetVar) TypeID() uint8 { return uint8(typeIDSetVar) }

// Encode implements Node.
func (n *SetVar) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
	e.WriteNode(n.Value)
}

func decodeSetVar(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	value, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	return &SetVar{Name: name, Value: value, Pos: span}, nil
}

func init() { registerDecoder(typeIDSetVar, decodeSetVar) }
