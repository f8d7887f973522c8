package state

import "github.com/nitidus-mail/nitidus/internal/mail"

// List holds the message list's cursor, viewport and filter state.
type List struct {
	Items          []mail.Envelope
	Full           []mail.Envelope
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List with the cursor on the first envelope.
func NewList(items []mail.Envelope) *List {
	l := &List{LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// Selected returns the envelope under the cursor.
func (l *List) Selected() (mail.Envelope, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return mail.Envelope{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the visible index of the envelope with id.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the envelopes, keeping the cursor on the previously
// selected envelope when it is still listed.
func (l *List) UpdateItems(items []mail.Envelope) {
	prev, hadPrev := l.Selected()
	prevOffset := l.ViewportOffset
	l.Full = cloneEnvelopes(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if hadPrev {
		if idx := l.IndexOf(prev.ID); idx >= 0 {
			l.Cursor = idx
		}
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		prevOffset = 0
	}
	l.ViewportOffset = prevOffset
}

func cloneEnvelopes(items []mail.Envelope) []mail.Envelope {
	dup := make([]mail.Envelope, len(items))
	copy(dup, items)
	return dup
}
