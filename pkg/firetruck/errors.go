package firetruck

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument matches every InvalidArgumentError.
	ErrInvalidArgument = errors.New("firetruck: invalid argument")
	// ErrResponse matches every ResponseError.
	ErrResponse = errors.New("firetruck: unexpected response status")
	// ErrTransport matches every TransportError.
	ErrTransport = errors.New("firetruck: transport failure")
)

// InvalidArgumentError is returned for bad input: unknown methods, empty setter values, bad config.
// It is never retried.
type InvalidArgumentError struct {
	Op      string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("firetruck: %s: %s", e.Op, e.Message)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func invalidArgument(op, msg string) error {
	return &InvalidArgumentError{Op: op, Message: msg}
}

// ResponseError is returned when the API answers with a status other than 200.
// Response holds the normalized status and body for inspection.
type ResponseError struct {
	Response *Response
}

func (e *ResponseError) Error() string {
	if e.Response == nil {
		return ErrResponse.Error()
	}
	return fmt.Sprintf("firetruck: response status %d", e.Response.StatusCode)
}

func (e *ResponseError) Is(target error) bool { return target == ErrResponse }

// TransportError wraps network failures and payload decode failures from the transport.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("firetruck: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
