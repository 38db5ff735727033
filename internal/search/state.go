package search

import "time"

// Phase enumerates the search lifecycle states. Exactly one phase holds at
// any time; PhaseSearching retains the sequence number that owns it.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDebouncing
	PhaseSearching
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDebouncing:
		return "debouncing"
	case PhaseSearching:
		return "searching"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrorKind classifies surfaced failures.
type ErrorKind int

const (
	// ErrorConnectivity means the remote backend could not be reached.
	// Surfaced sticky; never blanks already-visible local suggestions.
	ErrorConnectivity ErrorKind = iota
	// ErrorApplication means the backend was reached but reported a logical
	// failure. Surfaced transiently and auto-expired after NoticeTTL.
	ErrorApplication
	// ErrorCommit means the commit action reported failure. Sticky until the
	// next commit attempt or input change.
	ErrorCommit
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorConnectivity:
		return "connectivity"
	case ErrorApplication:
		return "application"
	case ErrorCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// Notice is the user-visible error indicator. Sticky notices persist until
// superseded; transient ones expire via an ExpireNotice effect.
type Notice struct {
	Kind    ErrorKind
	Message string
	Sticky  bool
}

// CommitPhase tracks the commit lifecycle, disjoint from the search phase.
type CommitPhase int

const (
	CommitIdle CommitPhase = iota
	Committing
	CommitSucceeded
	CommitFailed
)

// Timing and sizing constants for the controller.
const (
	// DebounceInterval is the quiet period required before a query dispatches.
	DebounceInterval = 300 * time.Millisecond
	// MinQueryLen is the minimum trimmed input length that triggers a search.
	MinQueryLen = 1
	// MaxSuggestions caps the visible suggestion list.
	MaxSuggestions = 10
	// NoticeTTL is how long a transient notice stays on screen.
	NoticeTTL = 5 * time.Second
	// HideGrace is the window during which a pending hide-on-blur can be
	// beaten by a competing selection.
	HideGrace = 150 * time.Millisecond
)
