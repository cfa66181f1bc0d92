// Package api provides the client for the periodization data service.
package api

import (
	"encoding/json"
	"strings"
)

// Kind classifies an API error for handling at the command layer.
type Kind int

const (
	// KindUsage indicates malformed or missing command arguments.
	KindUsage Kind = iota
	// KindAuthExpired indicates the server rejected the bearer token (401).
	KindAuthExpired
	// KindRemote indicates an unexpected status code from the service.
	KindRemote
	// KindTransport indicates a network-level failure.
	KindTransport
)

// Error is a tagged error returned by API operations.
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code for remote errors, 0 otherwise.
	Status int
}

func (e *Error) Error() string {
	return e.Message
}

// Is allows errors.Is comparisons against kind-only sentinel values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// TokenExpiredMessage is printed for every 401, regardless of the response
// body.
const TokenExpiredMessage = "Token rejected by the server; it has probably expired. " +
	"Run `periodo refresh-token` to enter a new one."

// ErrTokenExpired is returned whenever the service answers 401.
var ErrTokenExpired = &Error{Kind: KindAuthExpired, Message: TokenExpiredMessage, Status: 401}

// remoteError builds a remote error from a response body. The body is
// expected to be JSON with a "message" field; anything else is wrapped
// as-is.
func remoteError(status int, body []byte) *Error {
	return &Error{
		Kind:    KindRemote,
		Message: extractMessage(body),
		Status:  status,
	}
}

// transportError wraps a network-level failure.
func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error()}
}

// extractMessage pulls the "message" field out of a JSON error body,
// falling back to the raw text when the body is not valid JSON or has no
// message field.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
