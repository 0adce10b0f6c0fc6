/*
File    : rant/rst/codec.go
Package : rst

Binary program codec (spec.md §4.E/§4.F): every Node serializes as
`[varint type-id][variant payload]`. Payloads are little-endian; strings are
length-prefixed UTF-8; child nodes recurse through the same Encoder/Decoder.
*/
package rst

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mouzizhang/rant/diagnostic"
)

// Encoder writes a binary RST into an io.Writer.
type Encoder struct {
	w   io.Writer
	err error
}

// NewEncoder wraps w for writing a serialized RST.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Err returns the first error encountered by any Write* call.
func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// WriteUvarint writes an unsigned varint.
func (e *Encoder) WriteUvarint(v uint64) {
	if e.err != nil {
		return
	}
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	if _, err := e.w.Write(buf[:n]); err != nil {
		e.fail(err)
	}
}

// WriteVarint writes a signed varint.
func (e *Encoder) WriteVarint(v int64) {
	if e.err != nil {
		return
	}
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], v)
	if _, err := e.w.Write(buf[:n]); err != nil {
		e.fail(err)
	}
}

// WriteFloat64 writes an IEEE-754 float in 8 bytes, little-endian.
func (e *Encoder) WriteFloat64(f float64) {
	if e.err != nil {
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	if _, err := e.w.Write(buf[:]); err != nil {
		e.fail(err)
	}
}

// WriteBool writes a single byte, 1 for true.
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.WriteUvarint(1)
	} else {
		e.WriteUvarint(0)
	}
}

// WriteString writes a length-prefixed UTF-8 string.
func (e *Encoder) WriteString(s string) {
	e.WriteUvarint(uint64(len(s)))
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.fail(err)
	}
}

// WriteSpan writes a diagnostic.Span's four integer fields.
func (e *Encoder) WriteSpan(s diagnostic.Span) {
	e.WriteVarint(int64(s.Offset))
	e.WriteVarint(int64(s.Line))
	e.WriteVarint(int64(s.Col))
	e.WriteVarint(int64(s.Length))
}

// WriteNode writes a full child node: its type id followed by its payload.
func (e *Encoder) WriteNode(n Node) {
	if e.err != nil {
		return
	}
	if n == nil {
		e.WriteUvarint(uint64(typeIDNil))
		return
	}
	e.WriteUvarint(uint64(n.TypeID()))
	n.Encode(e)
}

// WriteNodeSlice writes a length-prefixed slice of child nodes.
func (e *Encoder) WriteNodeSlice(ns []Node) {
	e.WriteUvarint(uint64(len(ns)))
	for _, n := range ns {
		e.WriteNode(n)
	}
}

// Decoder reads a binary RST from an io.Reader.
type Decoder struct {
	r   io.Reader
	br  io.ByteReader
	err error
}

// NewDecoder wraps r for reading a serialized RST. r must support ReadByte
// (wrap with bufio.NewReader if it doesn't).
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(io.ByteReader)
	if !ok {
		panic("rst.NewDecoder requires an io.ByteReader (wrap with bufio.NewReader)")
	}
	return &Decoder{r: r, br: br}
}

// Err returns the first error encountered by any Read* call.
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// ReadUvarint reads an unsigned varint.
func (d *Decoder) ReadUvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, err := binary.ReadUvarint(d.br)
	if err != nil {
		d.fail(err)
		return 0
	}
	return v
}

// ReadVarint reads a signed varint.
func (d *Decoder) ReadVarint() int64 {
	if d.err != nil {
		return 0
	}
	v, err := binary.ReadVarint(d.br)
	if err != nil {
		d.fail(err)
		return 0
	}
	return v
}

// ReadFloat64 reads an IEEE-754 float from 8 little-endian bytes.
func (d *Decoder) ReadFloat64() float64 {
	if d.err != nil {
		return 0
	}
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		d.fail(err)
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
}

// ReadBool reads a single-byte boolean.
func (d *Decoder) ReadBool() bool {
	return d.ReadUvarint() != 0
}

// ReadString reads a length-prefixed UTF-8 string.
func (d *Decoder) ReadString() string {
	n := d.ReadUvarint()
	if d.err != nil || n == 0 {
		return ""
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		d.fail(err)
		return ""
	}
	return string(buf)
}

// ReadSpan reads a diagnostic.Span's four integer fields.
func (d *Decoder) ReadSpan() diagnostic.Span {
	off := int(d.ReadVarint())
	line := int(d.ReadVarint())
	col := int(d.ReadVarint())
	length := int(d.ReadVarint())
	return diagnostic.Span{Offset: off, Line: line, Col: col, Length: length}
}

// ReadNode reads a child node's type id and dispatches to the matching
// decode function. An unknown type id is a hard error (spec.md §4.E).
func (d *Decoder) ReadNode() (Node, error) {
	if d.err != nil {
		return nil, d.err
	}
	id := typeID(d.ReadUvarint())
	if d.err != nil {
		return nil, d.err
	}
	if id == typeIDNil {
		return nil, nil
	}
	decodeFn, ok := decoders[id]
	if !ok {
		return nil, fmt.Errorf("rst: unknown node type id %d", id)
	}
	return decodeFn(d)
}

// ReadNodeSlice reads a length-prefixed slice of child nodes.
func (d *Decoder) ReadNodeSlice() ([]Node, error) {
	n := d.ReadUvarint()
	if d.err != nil {
		return nil, d.err
	}
	out := make([]Node, 0, n)
	for i := uint64(0); i < n; i++ {
		child, err := d.ReadNode()
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// Decode reads one full root node from r (a convenience wrapper combining
// NewDecoder + ReadNode; package program calls those two directly because
// it reads the program name in between).
func Decode(r io.Reader) (Node, error) {
	d := NewDecoder(r)
	n, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	if d.err != nil {
		return nil, d.err
	}
	return n, nil
}

// Serialize writes n (and its whole subtree) to w.
func Serialize(w io.Writer, n Node) error {
	e := NewEncoder(w)
	e.WriteNode(n)
	return e.Err()
}
