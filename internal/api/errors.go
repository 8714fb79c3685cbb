package api

import (
	"errors"
	"fmt"
)

// ErrBadPayload reports a response whose shape the client refuses to
// interpret, such as a product listing that is not a JSON array.
var ErrBadPayload = errors.New("api: unexpected response shape")

// Error is a server-reported application failure: a non-2xx status whose
// body may carry an "error" field. Message is empty when it did not, and
// screens then fall back to their own wording. Transport-level failures are
// returned as plain errors, never as *Error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: server returned status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// ServerMessage extracts the server's error text from err, or "" when err
// is not a server-reported failure or carried no message.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsServerError reports whether err is a server-reported failure (as
// opposed to a connection or decoding problem).
func IsServerError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}
