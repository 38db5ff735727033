package events

import "github.com/marketpeek/tickerpick/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Input(value string) {
	logging.Trace("ui.input", map[string]interface{}{"value": value})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Notice(kind, message string) {
	logging.Trace("ui.notice", map[string]interface{}{"kind": kind, "message": message})
}
