package events

import "github.com/nitidus-mail/nitidus/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

type ScreenTracer struct{}

var Screen = ScreenTracer{}

func (ScreenTracer) Switch(from, to string) {
	logging.Trace("screen.switch", map[string]interface{}{"from": from, "to": to})
}
