/*
File    : rant/vm/targets.go
Package : vm

Implements spec.md §4.G's deferred-write mechanism: [mark:a] records a
character offset, [dist:a;b] measures between two marks, [get:name] opens a
target region, and [send:name;text] queues text to be spliced into that
region once the root RST finishes executing. Marks and targets are tracked
against the main channel only; text written solely to another channel
(such as a [send]/[mark] pair inside a sub-output) does not move them.
*/
package vm

import (
	"fmt"
	"strings"
)

type deferredSend struct {
	target string
	text   string
}

type targetTracker struct {
	marks       map[string]int
	placeholder map[string]string // target name -> unique placeholder token
	deferred    []deferredSend
	seq         int
}

func newTargetTracker() *targetTracker {
	return &targetTracker{
		marks:       make(map[string]int),
		placeholder: make(map[string]string),
	}
}

func (t *targetTracker) mark(name string, pos int) {
	t.marks[name] = pos
}

func (t *targetTracker) dist(a, b string) (int, error) {
	posA, ok := t.marks[a]
	if !ok {
		return 0, fmt.Errorf("vm: unresolved mark %q", a)
	}
	posB, ok := t.marks[b]
	if !ok {
		return 0, fmt.Errorf("vm: unresolved mark %q", b)
	}
	return posB - posA, nil
}

// openToken returns the placeholder text to write at the current output
// position for a newly opened target, creating it if needed.
func (t *targetTracker) openToken(name string) string {
	if tok, ok := t.placeholder[name]; ok {
		return tok
	}
	t.seq++
	tok := fmt.Sprintf("\x00RANT-TARGET-%d\x00", t.seq)
	t.placeholder[name] = tok
	return tok
}

func (t *targetTracker) defer_(name, text string) {
	t.deferred = append(t.deferred, deferredSend{target: name, text: text})
}

// resolve replaces every target placeholder in text with the concatenation
// of its deferred sends, in the order they were scheduled.
func (t *targetTracker) resolve(text string) string {
	if len(t.placeholder) == 0 {
		return text
	}
	byTarget := make(map[string]string)
	for _, d := range t.deferred {
		byTarget[d.target] += d.text
	}
	for name, tok := range t.placeholder {
		text = strings.ReplaceAll(text, tok, byTarget[name])
	}
	return text
}
