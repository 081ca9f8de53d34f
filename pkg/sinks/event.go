package sinks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
)

// Event is the payload forwarded downstream after each API call.
type Event struct {
	Method      string          `json:"method"`
	Path        string          `json:"path"`
	StatusCode  int             `json:"status_code,omitempty"`
	Outcome     string          `json:"outcome"`
	Error       string          `json:"error,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
	CompletedAt time.Time       `json:"completed_at"`
}

// NewEvent constructs an Event from a call result. The API key never appears in it.
func NewEvent(method, path string, res firetruck.Result) Event {
	evt := Event{
		Method:      method,
		Path:        path,
		Outcome:     res.Kind().String(),
		CompletedAt: time.Now().UTC(),
	}
	if res.Err != nil {
		evt.Error = res.Err.Error()
	}
	if res.Response != nil {
		evt.StatusCode = res.Response.StatusCode
		if json.Valid(res.Response.RawBody) {
			evt.Body = json.RawMessage(res.Response.RawBody)
		}
	}
	return evt
}

// Attribute names attached to brokered messages and webhook headers.
const (
	attrMethod  = "method"
	attrOutcome = "outcome"
	attrStatus  = "status_code"
)

// attributes returns the routing metadata of evt. status_code is only present
// when the API answered.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{
		attrMethod:  e.Method,
		attrOutcome: e.Outcome,
	}
	if e.StatusCode != 0 {
		attrs[attrStatus] = strconv.Itoa(e.StatusCode)
	}
	return attrs
}

func (e Event) encode() ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return raw, nil
}
