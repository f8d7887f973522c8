package control

import (
	"github.com/nitidus-mail/nitidus/internal/keys"
	"github.com/nitidus-mail/nitidus/internal/logging/events"
)

// Select is a single choice leaf field over a fixed, non-empty option list.
type Select struct {
	label   string
	options []string
	index   int
	focused bool
	keys    keys.ChoiceKeys
}

// NewSelect builds a select field with the first option chosen. It panics
// when options is empty.
func NewSelect(label string, options ...string) *Select {
	if len(options) == 0 {
		panic("control: select " + label + " needs at least one option")
	}
	return &Select{
		label:   label,
		options: append([]string(nil), options...),
		keys:    keys.DefaultChoiceKeys(),
	}
}

// SetKeys replaces the previous and next option bindings.
func (s *Select) SetKeys(k keys.ChoiceKeys) {
	s.keys = k
}

func (s *Select) Label() string { return s.label }

// Selected returns the current option.
func (s *Select) Selected() string {
	return s.options[s.index]
}

func (s *Select) Index() int { return s.index }

func (s *Select) Options() []string {
	return append([]string(nil), s.options...)
}

// SetSelected chooses option by value and reports whether it exists.
func (s *Select) SetSelected(option string) bool {
	for i, o := range s.options {
		if o == option {
			s.index = i
			return true
		}
	}
	return false
}

func (s *Select) Focused() bool { return s.focused }

func (s *Select) Focus() { s.focused = true }

func (s *Select) Blur() { s.focused = false }

func (s *Select) Rows() int { return 1 }

// HandleKey steps through the options with the choice bindings, wrapping
// at both ends.
func (s *Select) HandleKey(ev keys.Event) Result {
	n := len(s.options)
	switch {
	case keys.Matches(ev, s.keys.Prev):
		s.index = (s.index + n - 1) % n
	case keys.Matches(ev, s.keys.Next):
		s.index = (s.index + 1) % n
	default:
		return NotConsumed
	}
	events.Field.Select(s.label, s.Selected())
	return Consumed
}

func (s *Select) Render(area Area) View {
	label := Plain(s.label + ":")
	if s.focused {
		label.Emphasis = Bold
	}
	spans := []Span{label}
	for i, option := range s.options {
		spans = append(spans, Plain(" "))
		if i == s.index {
			spans = append(spans, Styled(option, Underline))
		} else {
			spans = append(spans, Plain(option))
		}
	}
	return View{Area: area, Lines: []Line{{Spans: spans}}}
}
