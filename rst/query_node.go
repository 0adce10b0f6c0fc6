/*
File    : rant/rst/query_node.go
Package : rst
*/
package rst

import (
	"github.com/mouzizhang/rant/diagnostic"
	"github.com/mouzizhang/rant/query"
)

// QueryNode is the node for a `<table.subtype-class?regex(range)$>`
// dictionary query. Its Query value was already fully parsed at compile
// time by package query; executing it only asks the engine to resolve it
// against the active dictionary.
type QueryNode struct {
	Query *query.Query
	Pos   diagnostic.Span
}

// NewQueryNode constructs a QueryNode.
func NewQueryNode(q *query.Query, span diagnostic.Span) *QueryNode {
	return &QueryNode{Query: q, Pos: span}
}

// Execute resolves the query and appends the chosen entry's surface form.
// A miss is a soft error (spec.md §4.I, §7): a diagnostic token is appended
// to the output instead of aborting the run.
func (n *QueryNode) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	text, ok := s.ResolveQuery(n.Query)
	if !ok {
		text = "[?:" + n.Query.Table + "]"
	}
	if err := s.CheckOutput(len(text)); err != nil {
		return err
	}
	s.Write(text)
	return nil
}

// Span returns the node's source location.
func (n *QueryNode) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *QueryNode) TypeID() uint8 { return uint8(typeIDQuery) }

// Encode implements Node.
func (n *QueryNode) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Query.Table)
	e.WriteString(n.Query.Subtype)
	e.WriteBool(n.Query.Exclusive)

	e.WriteUvarint(uint64(len(n.Query.ClassFilter)))
	for _, rule := range n.Query.ClassFilter {
		e.WriteString(rule.ClassName)
		e.WriteBool(rule.Include)
	}

	e.WriteUvarint(uint64(len(n.Query.RegexFilters)))
	for _, rf := range n.Query.RegexFilters {
		e.WriteBool(rf.Positive)
		e.WriteString(rf.Source)
	}

	hasRange := n.Query.SyllablePred != nil
	e.WriteBool(hasRange)
	if hasRange {
		writeOptionalInt(e, n.Query.SyllablePred.Min)
		writeOptionalInt(e, n.Query.SyllablePred.Max)
	}

	hasCarrier := n.Query.Carrier != nil
	e.WriteBool(hasCarrier)
	if hasCarrier {
		e.WriteString(n.Query.Carrier.ID)
		e.WriteString(n.Query.Carrier.Kind)
	}
}

func writeOptionalInt(e *Encoder, v *int) {
	if v == nil {
		e.WriteBool(false)
		return
	}
	e.WriteBool(true)
	e.WriteVarint(int64(*v))
}

func readOptionalInt(d *Decoder) *int {
	if !d.ReadBool() {
		return nil
	}
	n := int(d.ReadVarint())
	return &n
}

func decodeQueryNode(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	q := &query.Query{}
	q.Table = d.ReadString()
	q.Subtype = d.ReadString()
	q.Exclusive = d.ReadBool()

	cfCount := d.ReadUvarint()
	for i := uint64(0); i < cfCount; i++ {
		name := d.ReadString()
		include := d.ReadBool()
		q.ClassFilter = append(q.ClassFilter, query.ClassFilterRule{ClassName: name, Include: include})
	}

	rfCount := d.ReadUvarint()
	for i := uint64(0); i < rfCount; i++ {
		positive := d.ReadBool()
		source := d.ReadString()
		q.RegexFilters = append(q.RegexFilters, query.RegexFilter{Positive: positive, Source: source})
	}

	if d.ReadBool() {
		min := readOptionalInt(d)
		max := readOptionalInt(d)
		q.SyllablePred = &query.Range{Min: min, Max: max}
	}

	if d.ReadBool() {
		id := d.ReadString()
		kind := d.ReadString()
		q.Carrier = &query.Carrier{ID: id, Kind: kind}
	}

	if d.Err() != nil {
		return nil, d.Err()
	}
	return &QueryNode{Query: q, Pos: span}, nil
}

func init() { registerDecoder(typeIDQuery, decodeQueryNode) }
