package inventoryapi

import (
	"errors"
	"fmt"
)

// ErrTransport matches every failure to reach the API or to decode its reply.
var ErrTransport = errors.New("inventory api unreachable")

// TransportError reports a network failure or an unparsable response body.
type TransportError struct {
	Op  Op
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("inventory api %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// StatusError reports a well-formed response whose status is not a success.
// Message is the server-supplied text and may be empty.
type StatusError struct {
	Op         Op
	HTTPStatus int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("inventory api %s: status %q (http %d): %s", e.Op, e.Status, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("inventory api %s: status %q (http %d)", e.Op, e.Status, e.HTTPStatus)
}
