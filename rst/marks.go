/*
File    : rant/rst/marks.go
Package : rst

Mark, Dist, and Send implement spec.md §4.G's deferred-write mechanism:
Mark records a named output position, Dist measures between two marks, and
Send schedules text to be spliced in at a previously opened target once the
root node finishes executing.
*/
package rst

import (
	"fmt"
	"strconv"

	"github.com/mouzizhang/rant/diagnostic"
)

// Mark records the current output position under Name.
type Mark struct {
	Name string
	Pos  diagnostic.Span
}

// NewMark constructs a Mark node.
func NewMark(name string, span diagnostic.Span) *Mark {
	return &Mark{Name: name, Pos: span}
}

// Execute records the mark and writes nothing.
func (n *Mark) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	s.Mark(n.Name)
	return nil
}

// Span returns the node's source location.
func (n *Mark) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Mark) TypeID() uint8 { return uint8(typeIDMark) }

// Encode implements Node.
func (n *Mark) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
}

func decodeMark(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Mark{Name: name, Pos: span}, nil
}

func init() { registerDecoder(typeIDMark, decodeMark) }

// Dist writes the character distance between marks A and B (B minus A).
// An unresolved mark is a soft error: it writes "0" rather than aborting,
// matching Query's soft-miss convention.
type Dist struct {
	A, B string
	Pos  diagnostic.Span
}

// NewDist constructs a Dist node.
func NewDist(a, b string, span diagnostic.Span) *Dist {
	return &Dist{A: a, B: b, Pos: span}
}

// Execute looks up the distance and writes it as a decimal integer.
func (n *Dist) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	d, err := s.Dist(n.A, n.B)
	out := "0"
	if err == nil {
		out = strconv.Itoa(d)
	}
	if err := s.CheckOutput(len(out)); err != nil {
		return err
	}
	s.Write(out)
	return nil
}

// Span returns the node's source location.
func (n *Dist) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Dist) TypeID() uint8 { return uint8(typeIDDist) }

// Encode implements Node.
func (n *Dist) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.A)
	e.WriteString(n.B)
}

func decodeDist(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	a := d.ReadString()
	b := d.ReadString()
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Dist{A: a, B: b, Pos: span}, nil
}

func init() { registerDecoder(typeIDDist, decodeDist) }

// Send evaluates Body in a sub-output and schedules the result to be
// spliced at the target region previously declared by a matching Target
// node (`[get:name]`) once the root finishes executing. Body is required;
// the parser rejects a one-argument `[send:name]` as a parse-time error
// (parser.specialTag's "send" case), but Execute still guards against a
// nil Body so a hand-built or deserialized tree can never panic the run.
type Send struct {
	Name string
	Body Node
	Pos  diagnostic.Span
}

// NewSend constructs a Send node.
func NewSend(name string, body Node, span diagnostic.Span) *Send {
	return &Send{Name: name, Body: body, Pos: span}
}

// Execute evaluates Body in a sub-output and schedules the result to be
// written into the target region previously declared by a matching Target
// node (spec.md §4.G: "[send:name;text] writes into the target region
// previously declared by [get:name]").
func (n *Send) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	if n.Body == nil {
		return fmt.Errorf("rst: send %q at %s has no body", n.Name, n.Pos)
	}
	text, err := s.SubOutput(func() error { return n.Body.Execute(s) })
	if err != nil {
		return err
	}
	s.DeferSend(n.Name, text)
	return nil
}

// Span returns the node's source location.
func (n *Send) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Send) TypeID() uint8 { return uint8(typeIDSend) }

// Encode implements Node.
func (n *Send) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
	e.WriteNode(n.Body)
}

func decodeSend(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	body, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Send{Name: name, Body: body, Pos: span}, nil
}

func init() { registerDecoder(typeIDSend, decodeSend) }
