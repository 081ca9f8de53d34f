package firetruck

import "errors"

// Kind classifies the outcome of a call.
type Kind int

const (
	KindOK Kind = iota
	KindInvalidArgument
	KindResponse
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindResponse:
		return "response_error"
	case KindTransport:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of Client.Do. Response is set for KindOK and KindResponse.
type Result struct {
	Response *Response
	Err      error
}

// OK reports whether the call returned status 200.
func (r Result) OK() bool { return r.Err == nil }

// Kind returns the outcome class.
func (r Result) Kind() Kind {
	switch {
	case r.Err == nil:
		return KindOK
	case errors.Is(r.Err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(r.Err, ErrResponse):
		return KindResponse
	default:
		return KindTransport
	}
}

// Unwrap returns the result in (value, error) form.
func (r Result) Unwrap() (*Response, error) { return r.Response, r.Err }
