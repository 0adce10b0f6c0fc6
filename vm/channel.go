/*
File    : rant/vm/channel.go
Package : vm
*/
package vm

import (
	"strings"

	"github.com/mouzizhang/rant/rst"
)

// namedChannel is one persistent output buffer, keyed by name for the
// lifetime of a run (spec.md §3 "Channel").
type namedChannel struct {
	name       string
	builder    strings.Builder
	visibility rst.ChannelVisibility
}

// channelSet tracks every channel ever written to during a run, plus the
// stack of channels currently receiving writes (spec.md §4.G: "Output
// operation is always 'append to the top-visible channels'" — here, every
// channel on the active stack, not just the top one, since nested [chan]
// directives are additive).
type channelSet struct {
	byName map[string]*namedChannel
	active []*namedChannel
}

func newChannelSet() *channelSet {
	main := &namedChannel{name: "main", visibility: rst.Public}
	return &channelSet{
		byName: map[string]*namedChannel{"main": main},
		active: []*namedChannel{main},
	}
}

func (c *channelSet) write(text string) {
	for _, ch := range c.active {
		ch.builder.WriteString(text)
	}
}

func (c *channelSet) push(name string, visibility rst.ChannelVisibility) {
	ch, ok := c.byName[name]
	if !ok {
		ch = &namedChannel{name: name, visibility: visibility}
		c.byName[name] = ch
	}
	c.active = append(c.active, ch)
}

func (c *channelSet) pop() {
	if len(c.active) <= 1 {
		return
	}
	c.active = c.active[:len(c.active)-1]
}

// isolate temporarily replaces the active stack with a single throwaway
// buffer, runs fn, restores the previous active stack, and returns what fn
// wrote. Backs Engine.SubOutput and cooked Tag-argument evaluation.
func (c *channelSet) isolate(fn func() error) (string, error) {
	saved := c.active
	tmp := &namedChannel{name: "", visibility: rst.Private}
	c.active = []*namedChannel{tmp}
	err := fn()
	c.active = saved
	if err != nil {
		return "", err
	}
	return tmp.builder.String(), nil
}

// results returns the main channel's text and every other public channel's
// text, for RunResult (spec.md §6 "run(...) -> RunResult -- returns main
// channel plus any non-private channels").
func (c *channelSet) results() (main string, others map[string]string) {
	others = make(map[string]string)
	for name, ch := range c.byName {
		if name == "main" {
			continue
		}
		if ch.visibility != rst.Public {
			continue
		}
		others[name] = ch.builder.String()
	}
	return c.byName["main"].builder.String(), others
}
