// Package ui contains the Bubble Tea program that powers the ticker picker.
// The package is structured so the Model type focuses on message
// orchestration while the search controller owns all search, selection, and
// commit state transitions.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each message through a typed handler registry so every
//     tea.Msg is handled by a focused function (key presses, timer expiries,
//     remote responses, backend refreshes).
//   - Handlers translate messages into controller events. The controller
//     returns effects, which apply() converts back into tea.Cmd values:
//     timers become tea.Tick commands carrying their generation, and remote
//     fetches and commits run asynchronously through the command bus.
//
// State ownership:
//   - Search phase, suggestions, highlight, notices, and commit state live in
//     the search.Controller; the model never mutates them directly.
//   - The offline symbol index and the in-memory watchlist view are refreshed
//     by the data dispatcher whenever the backend refresher emits an event.
//
// This separation keeps Model.Update compact: the race-sensitive logic is
// all inside the controller, where it is tested without timers or IO.
package ui
