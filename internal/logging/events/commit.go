package events

import "github.com/marketpeek/tickerpick/internal/logging"

type CommitTracer struct{}

var Commit = CommitTracer{}

func (CommitTracer) Attempt(symbol string) {
	logging.Trace("commit.attempt", map[string]interface{}{"ticker": symbol})
}

func (CommitTracer) Success(symbol string) {
	logging.Trace("commit.success", map[string]interface{}{"ticker": symbol})
}

func (CommitTracer) Failure(symbol, message string) {
	logging.Trace("commit.failure", map[string]interface{}{"ticker": symbol, "message": message})
}
