// Package numbering tracks list numbering state during one conversion.
//
// A Tracker holds a stack of list contexts, one per active nesting depth.
// Items are fed in document order; each call to Enter returns the context
// snapshot whose marker the item must display. Markers are never revised
// after the fact.
package numbering

import "strconv"

// Format is the marker style of an ordered list level.
type Format int

// Marker formats, selected by depth modulo 3.
const (
	FormatNumeric Format = iota // 1.
	FormatAlpha                 // a)
	FormatRoman                 // i.
)

func (f Format) String() string {
	switch f {
	case FormatAlpha:
		return "alpha"
	case FormatRoman:
		return "roman"
	default:
		return "numeric"
	}
}

// bullets cycle by depth for unordered lists.
var bullets = [...]string{"•", "◦", "▪"}

// Context is the numbering state of one active list level.
type Context struct {
	Depth   int
	Ordered bool
	Counter int
	Format  Format
}

// FormatForDepth returns the ordered marker format used at depth.
func FormatForDepth(depth int) Format {
	if depth < 0 {
		depth = 0
	}
	return Format(depth % 3)
}

// Tracker is a stack of list contexts. The zero value is ready to use.
// A Tracker belongs to a single conversion and is not safe for concurrent use.
type Tracker struct {
	stack []Context
}

// Enter registers a list item at depth and returns the context it belongs to.
//
// Two items share a list when they have the same depth and kind. A deeper
// item pushes a new context, a shallower one pops every deeper context, and
// a kind change at the same depth replaces the context, so its counter
// starts again at 1. Negative depths are treated as 0.
func (t *Tracker) Enter(depth int, ordered bool) Context {
	if depth < 0 {
		depth = 0
	}

	for len(t.stack) > 0 && t.top().Depth > depth {
		t.stack = t.stack[:len(t.stack)-1]
	}

	if len(t.stack) > 0 && t.top().Depth == depth {
		top := &t.stack[len(t.stack)-1]
		if top.Ordered == ordered {
			top.Counter++
			return *top
		}
		*top = newContext(depth, ordered)
		return *top
	}

	t.stack = append(t.stack, newContext(depth, ordered))
	return t.stack[len(t.stack)-1]
}

// Reset discards every active context. Called when a non-list block ends a
// contiguous run of list items.
func (t *Tracker) Reset() {
	t.stack = t.stack[:0]
}

// Truncate discards the contexts at depth and deeper, keeping the
// shallower ones. Called when a non-list block inside a container ends the
// lists nested in that container.
func (t *Tracker) Truncate(depth int) {
	for len(t.stack) > 0 && t.top().Depth >= depth {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Depth returns the number of active contexts.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

func (t *Tracker) top() Context {
	return t.stack[len(t.stack)-1]
}

func newContext(depth int, ordered bool) Context {
	return Context{
		Depth:   depth,
		Ordered: ordered,
		Counter: 1,
		Format:  FormatForDepth(depth),
	}
}

// Marker renders the visible marker for ctx.
func Marker(ctx Context) string {
	if !ctx.Ordered {
		return bullets[ctx.Depth%len(bullets)]
	}
	switch ctx.Format {
	case FormatAlpha:
		return Alpha(ctx.Counter) + ")"
	case FormatRoman:
		if r := Roman(ctx.Counter); r != "" {
			return r + "."
		}
		return strconv.Itoa(ctx.Counter) + "."
	default:
		return strconv.Itoa(ctx.Counter) + "."
	}
}
