package events

import "github.com/marketpeek/tickerpick/internal/logging"

type BackendTracer struct{}

var Backend = BackendTracer{}

func (BackendTracer) Refresh(kind string, count int) {
	logging.Trace("backend.refresh", map[string]interface{}{"kind": kind, "count": count})
}

func (BackendTracer) Error(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("backend.error", map[string]interface{}{"kind": kind, "error": err.Error()})
}
