/*
File    : rant/rst/tag.go
Package : rst
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// Tag is a `[name:arg;arg;...]` function call. Each argument carries both
// its raw source text and its own parsed RST; which one a given overload
// consumes is decided by the function registry's declared parameter modes
// (spec.md §4.J), not by this node.
type Tag struct {
	Name string
	Args []Arg
	Pos  diagnostic.Span
}

// NewTag constructs a Tag node.
func NewTag(name string, args []Arg, span diagnostic.Span) *Tag {
	return &Tag{Name: name, Args: args, Pos: span}
}

// Execute resolves the function by name and arity and invokes it; its
// returned string (if any) is appended to the output. Functions that
// only change state and return an empty string (e.g. [numfmt]) write
// nothing.
func (n *Tag) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	out, err := s.CallFunction(n.Name, n.Args)
	if err != nil {
		return err
	}
	if out == "" {
		return nil
	}
	if err := s.CheckOutput(len(out)); err != nil {
		return err
	}
	s.Write(out)
	return nil
}

// Span returns the node's source location.
func (n *Tag) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Tag) TypeID() uint8 { return uint8(typeIDTag) }

// Encode implements Node.
func (n *Tag) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
	e.WriteUvarint(uint64(len(n.Args)))
	for _, a := range n.Args {
		e.WriteString(a.Raw)
		e.WriteNode(a.Node)
	}
}

func decodeTag(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	n := d.ReadUvarint()
	args := make([]Arg, 0, n)
	for i := uint64(0); i < n; i++ {
		raw := d.ReadString()
		node, err := d.ReadNode()
		if err != nil {
			return nil, err
		}
		args = append(args, Arg{Raw: raw, Node: node})
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Tag{Name: name, Args: args, Pos: span}, nil
}

func init() { registerDecoder(typeIDTag, decodeTag) }
