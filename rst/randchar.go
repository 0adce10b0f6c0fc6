/*
File    : rant/rst/randchar.go
Package : rst

RandomChar implements the lexer's `\x`, `\c`, `\d`, `\N` escapes and their
digit-count-prefixed form `\N,x` (spec.md §4.A: "\8,x meaning '8 hex
digits'"): each execution draws Count characters from the charset named by
Kind using the engine's seeded PRNG.
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

const (
	hexDigits    = "0123456789abcdef"
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	digits       = "0123456789"
	nonzeroDigit = "123456789"
)

// RandomChar draws Count random characters from the charset named by Kind
// ('x' hex, 'c' lowercase letter, 'd' digit, 'N' nonzero digit).
type RandomChar struct {
	Kind  byte
	Count int
	Pos   diagnostic.Span
}

// NewRandomChar constructs a RandomChar node.
func NewRandomChar(kind byte, count int, span diagnostic.Span) *RandomChar {
	if count <= 0 {
		count = 1
	}
	return &RandomChar{Kind: kind, Count: count, Pos: span}
}

func charsetFor(kind byte) string {
	switch kind {
	case 'x':
		return hexDigits
	case 'c':
		return lowerLetters
	case 'd':
		return digits
	case 'N':
		return nonzeroDigit
	default:
		return digits
	}
}

// Execute implements Node.
func (n *RandomChar) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	charset := charsetFor(n.Kind)
	out := make([]byte, n.Count)
	for i := range out {
		out[i] = charset[s.RandIntn(len(charset))]
	}
	text := string(out)
	if err := s.CheckOutput(len(text)); err != nil {
		return err
	}
	s.Write(text)
	return nil
}

// Span returns the node's source location.
func (n *RandomChar) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *RandomChar) TypeID() uint8 { return uint8(typeIDRandomChar) }

// Encode implements Node.
func (n *RandomChar) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteUvarint(uint64(n.Kind))
	e.WriteUvarint(uint64(n.Count))
}

func decodeRandomChar(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	kind := byte(d.ReadUvarint())
	count := int(d.ReadUvarint())
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &RandomChar{Kind: kind, Count: count, Pos: span}, nil
}

func init() { registerDecoder(typeIDRandomChar, decodeRandomChar) }
