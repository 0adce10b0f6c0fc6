/*
File    : rant/rst/subroutine.go
Package : rst
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// SubroutineDef binds Name to Body in the current scope, callable later
// with positional arguments bound to Params (spec.md §4.F). Defining a
// subroutine produces no output itself.
type SubroutineDef struct {
	Name   string
	Params []string
	Body   Node
	Pos    diagnostic.Span
}

// NewSubroutineDef constructs a SubroutineDef node.
func NewSubroutineDef(name string, params []string, body Node, span diagnostic.Span) *SubroutineDef {
	return &SubroutineDef{Name: name, Params: params, Body: body, Pos: span}
}

// Execute registers the subroutine and returns immediately.
func (n *SubroutineDef) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	s.DefineSub(n.Name, n.Params, n.Body)
	return nil
}

// Span returns the node's source location.
func (n *SubroutineDef) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *SubroutineDef) TypeID() uint8 { return uint8(typeIDSubDef) }

// Encode implements Node.
func (n *SubroutineDef) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
	e.WriteUvarint(uint64(len(n.Params)))
	for _, p := range n.Params {
		e.WriteString(p)
	}
	e.WriteNode(n.Body)
}

func decodeSubroutineDef(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	pcount := d.ReadUvarint()
	params := make([]string, 0, pcount)
	for i := uint64(0); i < pcount; i++ {
		params = append(params, d.ReadString())
	}
	body, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &SubroutineDef{Name: name, Params: params, Body: body, Pos: span}, nil
}

func init() { registerDecoder(typeIDSubDef, decodeSubroutineDef) }

// SubroutineCall invokes a previously defined subroutine. Each argument is
// evaluated in its own sub-output before the call, left to right, matching
// the teacher's eager-argument-evaluation convention.
type SubroutineCall struct {
	Name string
	Args []Node
	Pos  diagnostic.Span
}

// NewSubroutineCall constructs a SubroutineCall node.
func NewSubroutineCall(name string, args []Node, span diagnostic.Span) *SubroutineCall {
	return &SubroutineCall{Name: name, Args: args, Pos: span}
}

// Execute evaluates arguments, then invokes the subroutine.
func (n *SubroutineCall) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	values := make([]Value, 0, len(n.Args))
	for _, arg := range n.Args {
		text, err := s.SubOutput(func() error {
			if arg == nil {
				return nil
			}
			return arg.Execute(s)
		})
		if err != nil {
			return err
		}
		values = append(values, StringValue(text))
	}
	return s.CallSub(n.Name, values)
}

// Span returns the node's source location.
func (n *SubroutineCall) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *SubroutineCall) TypeID() uint8 { return uint8(typeIDSubCall) }

// Encode implements Node.
func (n *SubroutineCall) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
	e.WriteNodeSlice(n.Args)
}

func decodeSubroutineCall(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	args, err := d.ReadNodeSlice()
	if err != nil {
		return nil, err
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &SubroutineCall{Name: name, Args: args, Pos: span}, nil
}

func init() { registerDecoder(typeIDSubCall, decodeSubroutineCall) }
