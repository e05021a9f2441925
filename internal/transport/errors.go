package transport

import (
	"errors"
	"strings"
)

// Kind classifies a failed call so UI layers can pick the right message:
// connectivity prompt, server message, forced sign-out, or input fix.
type Kind int

const (
	// KindNetwork: request sent, no response received (connectivity, timeout).
	KindNetwork Kind = iota
	// KindServer: response received with a non-2xx status.
	KindServer
	// KindAuth: specifically a 401; the one class with a mandated side
	// effect (global logout) beyond display.
	KindAuth
	// KindInput: required input missing before any request was built.
	KindInput
)

const (
	networkMessage  = "unable to reach the server, check your connection and try again"
	fallbackMessage = "operation failed"
)

// Error is the single error type every façade call normalizes to. Message
// is always human-readable.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func NewNetworkError(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: networkMessage, cause: cause}
}

func NewServerError(status int, env *Envelope) *Error {
	return &Error{Kind: KindServer, Status: status, Message: messageFrom(env)}
}

func NewAuthError(env *Envelope) *Error {
	msg := messageFrom(env)
	if msg == fallbackMessage {
		msg = "session expired, please sign in again"
	}
	return &Error{Kind: KindAuth, Status: 401, Message: msg}
}

func NewInputError(message string) *Error {
	return &Error{Kind: KindInput, Message: message}
}

// messageFrom applies the message priority: server message, then the joined
// errors list, then the generic fallback.
func messageFrom(env *Envelope) string {
	if env != nil {
		if env.Message != "" {
			return env.Message
		}
		if len(env.Errors) > 0 {
			return strings.Join(env.Errors, ", ")
		}
	}
	return fallbackMessage
}

// KindOf extracts the classification, defaulting unknown errors to the
// server class so they still surface a message.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

func IsAuthError(err error) bool { return KindOf(err) == KindAuth }

func IsNetworkError(err error) bool { return KindOf(err) == KindNetwork }
