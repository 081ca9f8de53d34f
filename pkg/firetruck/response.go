package firetruck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/firetruck-io/firetruck-go/pkg/httpclient"
)

// Response is the normalized result of a completed call.
type Response struct {
	StatusCode int
	// Raw is the underlying HTTP response. Its body has already been consumed; use RawBody.
	Raw *http.Response
	// Body is the decoded JSON payload (map[string]any, []any, string, float64, bool or nil).
	Body    any
	RawBody []byte
}

// Decode unmarshals the raw payload into v.
func (r *Response) Decode(v any) error {
	if r == nil {
		return fmt.Errorf("decode: nil response")
	}
	if len(bytes.TrimSpace(r.RawBody)) == 0 {
		return fmt.Errorf("decode: empty response body")
	}
	return json.Unmarshal(r.RawBody, v)
}

// normalize wraps a transport response. A non-200 status yields the response
// together with a *ResponseError.
func normalize(raw httpclient.Response) (*Response, error) {
	payload := raw.Body()

	var body any
	if len(bytes.TrimSpace(payload)) > 0 {
		if err := json.Unmarshal(payload, &body); err != nil {
			return nil, &TransportError{Err: fmt.Errorf("decode response body: %w", err)}
		}
	}

	resp := &Response{
		StatusCode: raw.StatusCode(),
		Raw:        raw.Raw(),
		Body:       body,
		RawBody:    payload,
	}
	if resp.StatusCode != http.StatusOK {
		return resp, &ResponseError{Response: resp}
	}
	return resp, nil
}
