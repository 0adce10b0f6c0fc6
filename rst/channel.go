/*
File    : rant/rst/channel.go
Package : rst
*/
package rst

import "github.com/mouzizhang/rant/diagnostic"

// Channel is a `[chan:name;visibility]{...}` directive: it redirects the
// output of Body to also flow into a named channel for the duration of
// Body's execution (spec.md §4.H).
type Channel struct {
	Name       string
	Visibility ChannelVisibility
	Body       Node
	Pos        diagnostic.Span
}

// NewChannel constructs a Channel node.
func NewChannel(name string, visibility ChannelVisibility, body Node, span diagnostic.Span) *Channel {
	return &Channel{Name: name, Visibility: visibility, Body: body, Pos: span}
}

// Execute pushes the channel redirection, runs Body, then pops it.
func (n *Channel) Execute(s State) error {
	if err := s.Tick(); err != nil {
		return err
	}
	s.PushChannel(n.Name, n.Visibility)
	defer s.PopChannel()
	if n.Body == nil {
		return nil
	}
	return n.Body.Execute(s)
}

// Span returns the node's source location.
func (n *Channel) Span() diagnostic.Span { return n.Pos }

// TypeID implements Node.
func (n *Channel) TypeID() uint8 { return uint8(typeIDChannel) }

// Encode implements Node.
func (n *Channel) Encode(e *Encoder) {
	e.WriteSpan(n.Pos)
	e.WriteString(n.Name)
	e.WriteUvarint(uint64(n.Visibility))
	e.WriteNode(n.Body)
}

func decodeChannel(d *Decoder) (Node, error) {
	span := d.ReadSpan()
	name := d.ReadString()
	visibility := ChannelVisibility(d.ReadUvarint())
	body, err := d.ReadNode()
	if err != nil {
		return nil, err
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return &Channel{Name: name, Visibility: visibility, Body: body, Pos: span}, nil
}

func init() { registerDecoder(typeIDChannel, decodeChannel) }
