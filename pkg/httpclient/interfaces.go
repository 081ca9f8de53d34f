package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Request is a fully built outbound call. Query and Headers are already merged.
type Request struct {
	Method  string
	URL     string
	Query   map[string]string
	Headers map[string]string
	Body    []byte
	HasBody bool
	Timeout time.Duration
	Verify  bool
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
	Raw() *http.Response
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// StatusError is returned by transports for responses with status >= 400.
// The response is fully read and still available to the caller.
type StatusError struct {
	Response Response
}

func (e *StatusError) Error() string {
	if e == nil || e.Response == nil {
		return "http response error"
	}
	return fmt.Sprintf("http response status %d", e.Response.StatusCode())
}
