package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketpeek/tickerpick/internal/logging/events"
)

// Request encapsulates an asynchronous operation the UI wants executed.
type Request struct {
	Name string
	Run  func() tea.Msg
}

// Bus coordinates the execution of asynchronous operations.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps the request into a Bubble Tea command while emitting trace
// logs for the dispatch and its resulting message type.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.Name)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.NoOp(req.Name)
			return nil
		}
		msg := req.Run()
		events.Command.Result(req.Name, fmt.Sprintf("%T", msg))
		return msg
	}
}
