package control

import (
	"fmt"

	"github.com/nitidus-mail/nitidus/internal/keys"
	"github.com/nitidus-mail/nitidus/internal/logging/events"
)

// Slot names a child position inside a composite. Slots are ordered by the
// order children are declared in.
type Slot int

// Policy decides what a composite does with advance and retreat keys at the
// ends of its slot list.
type Policy int

const (
	// Cycle wraps from the last slot to the first and back.
	Cycle Policy = iota
	// Delegate returns NotConsumed at the ends so the parent can move on.
	Delegate
)

func (p Policy) String() string {
	switch p {
	case Cycle:
		return "cycle"
	case Delegate:
		return "delegate"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Child is a slot in a composite. When, if set, decides whether the slot is
// addressable; it is evaluated every time the slot set is needed.
type Child struct {
	Slot    Slot
	Name    string
	Control Control
	When    func() bool
}

func (c Child) addressable() bool {
	return c.When == nil || c.When()
}

// Composite is a control made of ordered children with one focus slot.
type Composite struct {
	name     string
	title    string
	border   Border
	policy   Policy
	keys     keys.FocusKeys
	children []Child
	focus    Slot
	active   bool
}

// Option customises a composite.
type Option func(*Composite)

// WithPolicy selects the end-of-list behaviour. The default is Cycle.
func WithPolicy(p Policy) Option {
	return func(c *Composite) {
		c.policy = p
	}
}

// WithTitle draws a rounded border with title in its top edge.
func WithTitle(title string) Option {
	return func(c *Composite) {
		c.title = title
		c.border = BorderRounded
	}
}

// WithFocusKeys replaces the advance and retreat bindings.
func WithFocusKeys(k keys.FocusKeys) Option {
	return func(c *Composite) {
		c.keys = k
	}
}

// NewComposite builds a composite over children. Focus starts at the first
// addressable slot. It panics when children is empty, a control is nil, or
// a slot is declared twice.
func NewComposite(name string, children []Child, opts ...Option) *Composite {
	if len(children) == 0 {
		panic("control: composite " + name + " has no children")
	}
	seen := make(map[Slot]struct{}, len(children))
	for _, child := range children {
		if child.Control == nil {
			panic(fmt.Sprintf("control: composite %s slot %d has no control", name, child.Slot))
		}
		if _, dup := seen[child.Slot]; dup {
			panic(fmt.Sprintf("control: composite %s declares slot %d twice", name, child.Slot))
		}
		seen[child.Slot] = struct{}{}
	}
	c := &Composite{
		name:     name,
		policy:   Cycle,
		keys:     keys.DefaultFocusKeys(),
		children: append([]Child(nil), children...),
		focus:    children[0].Slot,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if slots := c.Slots(); len(slots) > 0 {
		c.focus = slots[0]
	}
	return c
}

func (c *Composite) Name() string { return c.name }

func (c *Composite) Policy() Policy { return c.policy }

// FocusSlot returns the slot that currently holds focus.
func (c *Composite) FocusSlot() Slot { return c.focus }

// Active reports whether focus is inside this composite.
func (c *Composite) Active() bool { return c.active }

// Slots returns the addressable slots in declaration order.
func (c *Composite) Slots() []Slot {
	out := make([]Slot, 0, len(c.children))
	for _, child := range c.children {
		if child.addressable() {
			out = append(out, child.Slot)
		}
	}
	return out
}

// Addressable reports whether slot can currently hold focus.
func (c *Composite) Addressable(slot Slot) bool {
	i := c.indexOf(slot)
	return i >= 0 && c.children[i].addressable()
}

// Children returns every child control, addressable or not.
func (c *Composite) Children() []Control {
	out := make([]Control, len(c.children))
	for i, child := range c.children {
		out[i] = child.Control
	}
	return out
}

// Child returns the control at slot.
func (c *Composite) Child(slot Slot) Control {
	if i := c.indexOf(slot); i >= 0 {
		return c.children[i].Control
	}
	return nil
}

// Repair moves focus off a slot that is no longer addressable. The nearest
// preceding addressable slot wins, then the nearest following one. It
// reports whether focus moved.
func (c *Composite) Repair() bool {
	if c.Addressable(c.focus) {
		return false
	}
	pos := c.indexOf(c.focus)
	for i := pos - 1; i >= 0; i-- {
		if c.children[i].addressable() {
			c.repairTo(c.children[i].Slot, Backward)
			return true
		}
	}
	for i := pos + 1; i < len(c.children); i++ {
		if c.children[i].addressable() {
			c.repairTo(c.children[i].Slot, Forward)
			return true
		}
	}
	return false
}

func (c *Composite) repairTo(slot Slot, dir Direction) {
	from := c.slotName(c.focus)
	c.moveTo(slot, dir)
	events.Focus.Repair(c.name, from, c.slotName(slot))
}

func (c *Composite) Focus() {
	c.Repair()
	c.active = true
	if child := c.focusedChild(); child != nil {
		child.Focus()
	}
}

// Enter focuses the first slot when entered going forward and the last slot
// when entered going backward.
func (c *Composite) Enter(dir Direction) {
	slots := c.Slots()
	if len(slots) == 0 {
		c.active = true
		return
	}
	target := slots[0]
	if dir == Backward {
		target = slots[len(slots)-1]
	}
	if c.active && target != c.focus {
		if old := c.Child(c.focus); old != nil {
			old.Blur()
		}
	}
	c.focus = target
	c.active = true
	enter(c.Child(target), dir)
}

func (c *Composite) Blur() {
	if child := c.Child(c.focus); child != nil {
		child.Blur()
	}
	c.active = false
}

// HandleKey repairs focus, offers the event to the focused child and, if the
// child declines, interprets advance and retreat keys.
func (c *Composite) HandleKey(ev keys.Event) Result {
	c.Repair()
	child := c.focusedChild()
	if child == nil {
		return NotConsumed
	}
	if child.HandleKey(ev) == Consumed {
		c.Repair()
		return Consumed
	}
	switch {
	case keys.Matches(ev, c.keys.Advance):
		return c.step(Forward)
	case keys.Matches(ev, c.keys.Retreat):
		return c.step(Backward)
	}
	return NotConsumed
}

func (c *Composite) step(dir Direction) Result {
	slots := c.Slots()
	n := len(slots)
	i := indexOfSlot(slots, c.focus)
	if n == 0 || i < 0 {
		return NotConsumed
	}
	next := i + 1
	if dir == Backward {
		next = i - 1
	}
	if next < 0 || next >= n {
		if c.policy == Delegate {
			return NotConsumed
		}
		next = (next + n) % n
	}
	if slots[next] == c.focus {
		return Consumed
	}
	from := c.slotName(c.focus)
	c.moveTo(slots[next], dir)
	events.Focus.Move(c.name, from, c.slotName(c.focus))
	return Consumed
}

func (c *Composite) moveTo(slot Slot, dir Direction) {
	if c.active {
		if old := c.Child(c.focus); old != nil {
			old.Blur()
		}
	}
	c.focus = slot
	if c.active {
		if next := c.Child(slot); next != nil {
			enter(next, dir)
		}
	}
}

// Rows is the height of the addressable children plus the border. A
// composite with a flexible child is flexible itself.
func (c *Composite) Rows() int {
	total := 0
	for _, child := range c.children {
		if !child.addressable() {
			continue
		}
		rows := RowsOf(child.Control)
		if rows <= 0 {
			return 0
		}
		total += rows
	}
	if c.border != BorderNone {
		total += 2
	}
	return total
}

// Render stacks the addressable children top to bottom. Flexible children
// share the rows left after the fixed ones.
func (c *Composite) Render(area Area) View {
	v := View{Area: area, Title: c.title, Border: c.border, Active: c.active}
	inner := area
	if c.border != BorderNone {
		inner = area.Inner()
	}
	visible := make([]Control, 0, len(c.children))
	fixed, flex := 0, 0
	for _, child := range c.children {
		if !child.addressable() {
			continue
		}
		visible = append(visible, child.Control)
		if rows := RowsOf(child.Control); rows > 0 {
			fixed += rows
		} else {
			flex++
		}
	}
	spare := inner.Height - fixed
	if spare < 0 {
		spare = 0
	}
	for _, ctl := range visible {
		rows := RowsOf(ctl)
		if rows <= 0 {
			rows = spare / flex
			if flex == 1 {
				rows = spare
			}
			spare -= rows
			flex--
		}
		var slot Area
		slot, inner = inner.Take(rows)
		if slot.Empty() {
			continue
		}
		v.Children = append(v.Children, ctl.Render(slot))
	}
	return v
}

func (c *Composite) focusedChild() Control {
	if !c.Addressable(c.focus) {
		return nil
	}
	return c.Child(c.focus)
}

func (c *Composite) indexOf(slot Slot) int {
	for i, child := range c.children {
		if child.Slot == slot {
			return i
		}
	}
	return -1
}

func (c *Composite) slotName(slot Slot) string {
	if i := c.indexOf(slot); i >= 0 && c.children[i].Name != "" {
		return c.children[i].Name
	}
	return fmt.Sprintf("slot-%d", int(slot))
}

func indexOfSlot(slots []Slot, slot Slot) int {
	for i, s := range slots {
		if s == slot {
			return i
		}
	}
	return -1
}
