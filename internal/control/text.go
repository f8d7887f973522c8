package control

import (
	"strings"

	"github.com/nitidus-mail/nitidus/internal/keys"
	"github.com/nitidus-mail/nitidus/internal/logging/events"
)

const maskRune = "•"

// Text is a free text leaf field.
type Text struct {
	label   string
	value   []rune
	masked  bool
	focused bool
}

// TextOption customises a Text field.
type TextOption func(*Text)

// WithDefault pre-fills the field.
func WithDefault(value string) TextOption {
	return func(t *Text) {
		t.value = []rune(value)
	}
}

// Masked renders the value as bullets. The stored value is unchanged.
func Masked() TextOption {
	return func(t *Text) {
		t.masked = true
	}
}

// NewText builds a text field with the given label.
func NewText(label string, opts ...TextOption) *Text {
	t := &Text{label: label}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func (t *Text) Label() string { return t.label }

func (t *Text) Value() string { return string(t.value) }

// SetValue replaces the value.
func (t *Text) SetValue(value string) {
	t.value = []rune(value)
}

func (t *Text) Focused() bool { return t.focused }

func (t *Text) Focus() { t.focused = true }

func (t *Text) Blur() { t.focused = false }

func (t *Text) Rows() int { return 1 }

// HandleKey appends printable characters and erases with Backspace. Erasing
// an empty value is still consumed.
func (t *Text) HandleKey(ev keys.Event) Result {
	switch {
	case ev.Printable():
		t.value = append(t.value, ev.Rune)
	case ev.Code == keys.CodeBackspace && !ev.Alt:
		if len(t.value) > 0 {
			t.value = t.value[:len(t.value)-1]
		}
	default:
		return NotConsumed
	}
	events.Field.Edit(t.label, len(t.value))
	return Consumed
}

func (t *Text) Render(area Area) View {
	label := Plain(t.label + ": ")
	if t.focused {
		label.Emphasis = Bold
	}
	value := t.Value()
	if t.masked {
		value = strings.Repeat(maskRune, len(t.value))
	}
	spans := []Span{label, Plain(value)}
	if t.focused {
		spans = append(spans, Styled(" ", Reverse))
	}
	return View{Area: area, Lines: []Line{{Spans: spans}}}
}
