package events

import "github.com/marketpeek/tickerpick/internal/logging"

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Queue(name string) {
	logging.Trace("command.queue", map[string]interface{}{"name": name})
}

func (CommandTracer) NoOp(name string) {
	logging.Trace("command.noop", map[string]interface{}{"name": name})
}

func (CommandTracer) Result(name, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"name": name, "msg": msgType})
}
