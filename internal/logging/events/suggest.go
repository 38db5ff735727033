package events

import "github.com/marketpeek/tickerpick/internal/logging"

type SuggestTracer struct{}

var Suggest = SuggestTracer{}

func (SuggestTracer) Show(count int) {
	logging.Trace("suggest.show", map[string]interface{}{"count": count})
}

func (SuggestTracer) Hide(reason string) {
	logging.Trace("suggest.hide", map[string]interface{}{"reason": reason})
}

func (SuggestTracer) Cursor(index int) {
	logging.Trace("suggest.cursor", map[string]interface{}{"index": index})
}
