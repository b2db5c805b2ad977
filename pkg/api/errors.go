package api

import (
	"fmt"

	"github.com/DVDCLVGMB/new-contaminados-grupoa-frontend/pkg/game"
)

// ValidationError reports bad caller input. It is raised before any network
// traffic and is never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidPhaseError means the round, as last observed by this client, is in
// a status that forbids the requested mutation. The server remains the
// authority; this is only a guard against submitting on visibly stale data.
type InvalidPhaseError struct {
	Status game.RoundStatus
}

func (e *InvalidPhaseError) Error() string {
	return fmt.Sprintf("round status %q does not allow this action", e.Status)
}

// RequestError is a non-2xx server response. Message carries the resolved
// human-readable text; StatusCode is kept for programmatic matching.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string { return e.Message }

// TransportError wraps a network-level failure (DNS, refused connection,
// timeout). Its message is normalized so the UI can show one connectivity
// string instead of raw dial errors.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "connection error: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the server payload is not the expected
// envelope shape. A single round record failing validation is not this
// error; those are silently dropped by the normalizer.
type MalformedResponseError struct {
	Msg string
}

func (e *MalformedResponseError) Error() string { return "malformed server response: " + e.Msg }

// statusMessage is the fallback user-facing text per status code, used only
// when the server supplied neither an X-Msg header nor a body message.
func statusMessage(code int) string {
	switch code {
	case 401:
		return "invalid credentials"
	case 403:
		return "not authorized for this action"
	case 404:
		return "resource not found"
	case 409:
		return "action not valid for the current phase"
	case 428:
		return "precondition required"
	}
	return ""
}
