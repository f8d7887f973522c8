// Package control implements the focusable control tree: leaf fields that own
// a value, composites that own a focus slot over their children, and the
// contract both share.
//
// Exactly one leaf in a tree is focused at a time. Key events enter at the
// root and travel down the focus chain; a control that cannot use an event
// returns NotConsumed so its parent may reinterpret it.
package control

import "github.com/nitidus-mail/nitidus/internal/keys"

// Result reports whether a control used a key event.
type Result int

const (
	NotConsumed Result = iota
	Consumed
)

func (r Result) String() string {
	if r == Consumed {
		return "consumed"
	}
	return "not-consumed"
}

// Control is the contract shared by leaf fields and composites.
type Control interface {
	// Render describes the control laid out in area. It never mutates state.
	Render(area Area) View
	Focus()
	Blur()
	HandleKey(ev keys.Event) Result
}

// Sizer is implemented by controls that know how many rows they occupy.
// Zero means the control fills whatever space its parent has left.
type Sizer interface {
	Rows() int
}

// Direction is the way focus travelled into a control.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Enterer is implemented by controls that place their inner focus depending
// on the direction focus arrived from.
type Enterer interface {
	Enter(dir Direction)
}

// Parent is implemented by controls that own children.
type Parent interface {
	Children() []Control
}

// Focuser is implemented by leaves to report their focus flag.
type Focuser interface {
	Focused() bool
}

// RowsOf returns the number of rows c asks for; controls that do not
// implement Sizer take a single row.
func RowsOf(c Control) int {
	if s, ok := c.(Sizer); ok {
		return s.Rows()
	}
	return 1
}

// Walk visits c and every descendant depth first.
func Walk(c Control, fn func(Control)) {
	if c == nil {
		return
	}
	fn(c)
	if p, ok := c.(Parent); ok {
		for _, child := range p.Children() {
			Walk(child, fn)
		}
	}
}

// FocusedLeaves returns every leaf under root whose focus flag is set. A
// parent with no children at the moment counts as a leaf.
func FocusedLeaves(root Control) []Control {
	var out []Control
	Walk(root, func(c Control) {
		if p, ok := c.(Parent); ok && len(p.Children()) > 0 {
			return
		}
		if f, ok := c.(Focuser); ok && f.Focused() {
			out = append(out, c)
		}
	})
	return out
}

func enter(c Control, dir Direction) {
	if e, ok := c.(Enterer); ok {
		e.Enter(dir)
		return
	}
	c.Focus()
}
