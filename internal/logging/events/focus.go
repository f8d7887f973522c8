package events

import "github.com/nitidus-mail/nitidus/internal/logging"

type FocusTracer struct{}

type FieldTracer struct{}

var (
	Focus = FocusTracer{}
	Field = FieldTracer{}
)

func (FocusTracer) Move(scope, from, to string) {
	logging.Trace("focus.move", map[string]interface{}{"scope": scope, "from": from, "to": to})
}

func (FocusTracer) Repair(scope, from, to string) {
	logging.Trace("focus.repair", map[string]interface{}{"scope": scope, "from": from, "to": to})
}

// Bubble records a key that no control in the focus chain consumed.
func (FocusTracer) Bubble(key string) {
	logging.Trace("focus.bubble", map[string]interface{}{"key": key})
}

// Edit records the new length of a text field. Values are never traced.
func (FieldTracer) Edit(label string, length int) {
	logging.Trace("field.edit", map[string]interface{}{"label": label, "length": length})
}

func (FieldTracer) Select(label, option string) {
	logging.Trace("field.select", map[string]interface{}{"label": label, "option": option})
}
