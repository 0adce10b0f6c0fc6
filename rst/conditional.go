/*
File    : rant/rst/conditional.go
Package : rst
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// parseTruthy interprets a sub-output's text as a boolean: exactly "false"
// and "" are false, any other text (including "0") is true. This lets [if:...] conditions be either genuine
// boolean expressions (Arithmetic comparisons render "true"/"false") or
// plain non-empty-string truthiness checks.
func parseTruthy(text string) bool {
	switch text {
	case "", "false":
		return false
	default:
		return true
	}
}

// Conditional is an `[if:cond;then;else]` construct. Cond is run in a
// sub-output and its text is interpreted by parseTruthy; Else may be nil.
type Conditional struct {
	Cond Node
	Then Node
	Else Node
	Pos  diagnostic.Span
}

// NewConditional constructs a Conditional node.
func NewConditional(cond, then, els Node, span diagnostic.Span) *Conditional {
	return &Conditional{Cond: cond, Then: then, Else: els, Pos: span}
}

// Execute evaluates Cond, then runs Then or Else depending on its truthiness.
func (n *Conditional) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	text, err := s.SubOutput(func() error {
		if n.Cond == nil {
			return nil
		}
		return n.Cond.Execute(s)
	})
	if err != nil {
		return err
	}
	if parseTruthy(text) {
		if n.Then == nil {
			return nil
		}
		return n.Then.Execute(s)
	}
	if n.Else == nil {
		return nil
	}
	return n.Else.Execute(s)
}

// Span returns the node's source location.
func (n *Conditional) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Conditional) TypeID() uint8 { return uint8(typeIDConditional) }

// Encode implements Node.
func (n *Conditional) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteNode(n.Cond)
	e.WriteNode(n.Then)
	e.WriteNode(n.Else)
}

func decodeConditional(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	cond, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	then, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	els, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Conditional{Cond: cond, Then: then, Else: els, Pos: span}, nil
}

func init() { registerDecoder(typeIDConditional, decodeConditional) }
