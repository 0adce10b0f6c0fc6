/*
File    : rant/rst/arithmetic.go
Package : rst

Arithmetic covers both numeric operators (+ - * / % ^) and the comparison
operators (= != < <= > >=) used by [if:...] conditions; both render their
result as text (spec.md's data model has no separate boolean literal
syntax, only boolean-valued expressions).
*/
package rst

import (
	"math"

	"github.com/mouzizhang/rant/diagnostic"
)

// ArithOp identifies an Arithmetic node's operator.
type ArithOp uint8

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

// Arithmetic evaluates Left Op Right against their numeric coercions. Left
// and Right are run in sub-outputs and parsed as numbers via Value.AsNumber.
type Arithmetic struct {
	Op    ArithOp
	Left  Node
	Right Node
	Pos   diagnostic.Span
}

// NewArithmetic constructs an Arithmetic node.
func NewArithmetic(op ArithOp, left, right Node, span diagnostic.Span) *Arithmetic {
	return &Arithmetic{Op: op, Left: left, Right: right, Pos: span}
}

// Execute evaluates both operands, applies Op, and writes the result.
func (n *Arithmetic) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	left, err := evalNumeric(s, n.Left)
	if err != nil {
		return err
	}
	right, err := evalNumeric(s, n.Right)
	if err != nil {
		return err
	}

	var out string
	switch n.Op {
	case OpAdd:
		out = NumberValue(left + right).String()
	case OpSub:
		out = NumberValue(left - right).String()
	case OpMul:
		out = NumberValue(left * right).String()
	case OpDiv:
		if right == 0 {
			out = NumberValue(0).String()
		} else {
			out = NumberValue(left / right).String()
		}
	case OpMod:
		if right == 0 {
			out = NumberValue(0).String()
		} else {
			out = NumberValue(math.Mod(left, right)).String()
		}
	case OpPow:
		out = NumberValue(math.Pow(left, right)).String()
	case OpEq:
		out = BoolValue(left == right).String()
	case OpNeq:
		out = BoolValue(left != right).String()
	case OpLt:
		out = BoolValue(left < right).String()
	case OpLte:
		out = BoolValue(left <= right).String()
	case OpGt:
		out = BoolValue(left > right).String()
	case OpGte:
		out = BoolValue(left >= right).String()
	}

	if err := s.CheckOutput(len(out)); err != nil {
		return err
	}
	s.Write(out)
	return nil
}

func evalNumeric(s State, n Node) (float64, error) {
	if n == nil {
		return 0, nil
	}
	text, err := s.SubOutput(func() error { return n.Execute(s) })
	if err != nil {
		return 0, err
	}
	v, _ := StringValue(text).AsNumber()
	return v, nil
}

// Span returns the node's source location.
func (n *Arithmetic) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Arithmetic) TypeID() uint8 { return uint8(typeIDArithmetic) }

// Encode implements Node.
func (n *Arithmetic) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteUvarint(uint64(n.Op))
	e.WriteNode(n.Left)
	e.WriteNode(n.Right)
}

func decodeArithmetic(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	op := ArithOp(d.ReadUvarint())
	left, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	right, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Arithmetic{Op: op, Left: left, Right: right, Pos: span}, nil
}

func init() { registerDecoder(typeIDArithmetic, decodeArithmetic) }
