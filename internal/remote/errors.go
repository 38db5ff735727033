package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind separates failures where the backend was never reached from failures
// the backend itself reported. The distinction drives how the UI surfaces
// the error and whether local suggestions stay on screen.
type Kind int

const (
	// KindConnectivity covers transport failures: DNS, refused connections,
	// timeouts, and anything else that means no response arrived.
	KindConnectivity Kind = iota
	// KindApplication covers responses the backend produced deliberately:
	// non-2xx statuses and malformed payloads.
	KindApplication
)

func (k Kind) String() string {
	if k == KindConnectivity {
		return "connectivity"
	}
	return "application"
}

// Error is the classified failure returned by all client operations.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Classify wraps err with the kind inferred from its chain. Transport-level
// errors and cancelled or timed-out contexts count as connectivity; anything
// else means the backend answered and the failure is its own.
func Classify(op string, err error) *Error {
	kind := KindApplication
	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		kind = KindConnectivity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = KindConnectivity
	}
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf("%s: %v", op, err),
		cause:   err,
	}
}

func applicationError(op, message string) *Error {
	return &Error{Kind: KindApplication, Message: fmt.Sprintf("%s: %s", op, message)}
}
