package events

import "github.com/marketpeek/tickerpick/internal/logging"

type SearchTracer struct{}

var Search = SearchTracer{}

func (SearchTracer) Debounce(query string, gen int) {
	logging.Trace("search.debounce", map[string]interface{}{"query": query, "gen": gen})
}

func (SearchTracer) Dispatch(query string, seq int) {
	logging.Trace("search.dispatch", map[string]interface{}{"query": query, "seq": seq})
}

func (SearchTracer) Results(seq, count int) {
	logging.Trace("search.results", map[string]interface{}{"seq": seq, "count": count})
}

func (SearchTracer) Stale(seq, active int) {
	logging.Trace("search.stale", map[string]interface{}{"seq": seq, "active": active})
}

func (SearchTracer) Failed(seq int, kind, message string) {
	logging.Trace("search.failed", map[string]interface{}{
		"seq":     seq,
		"kind":    kind,
		"message": message,
	})
}
