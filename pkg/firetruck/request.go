package firetruck

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/firetruck-io/firetruck-go/pkg/httpclient"
)

// Options are per-call overrides. Query and Headers merge key-by-key over the
// client defaults; caller values win on collision. Header names compare
// case-insensitively. Body is ignored for GET and DELETE.
type Options struct {
	Query   map[string]string
	Headers map[string]string
	Body    any
}

// buildRequest assembles the outbound request from a config snapshot and caller overrides.
func buildRequest(cfg Config, method, path string, opts *Options) (httpclient.Request, error) {
	if err := checkMethod(method); err != nil {
		return httpclient.Request{}, err
	}
	if opts == nil {
		opts = &Options{}
	}

	req := httpclient.Request{
		Method:  method,
		URL:     cfg.APIURL() + "/" + strings.TrimLeft(path, "/"),
		Query:   mergeStrings(map[string]string{apiKeyParam: cfg.APIKey}, opts.Query),
		Headers: mergeHeaders(cfg.Headers, opts.Headers),
		Timeout: cfg.Timeout,
		Verify:  cfg.Verify,
	}

	if BodyAllowed(method) {
		body := opts.Body
		if body == nil {
			body = ""
		}
		raw, err := encodeBody(body)
		if err != nil {
			return httpclient.Request{}, err
		}
		req.Body = raw
		req.HasBody = true
	}

	return req, nil
}

// encodeBody serializes the body as JSON. Pre-encoded json.RawMessage is passed through.
func encodeBody(body any) ([]byte, error) {
	if raw, ok := body.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, invalidArgument("Do", "body is not valid JSON")
		}
		return raw, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, invalidArgument("Do", fmt.Sprintf("body cannot be encoded as JSON: %v", err))
	}
	return raw, nil
}

// mergeStrings returns defaults overlaid with overrides, leaving both inputs untouched.
func mergeStrings(defaults, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// mergeHeaders is mergeStrings for header maps. Names are canonicalized so
// "content-type" replaces "Content-Type". Within one map, colliding spellings
// resolve in sorted key order so the result does not depend on map iteration.
func mergeHeaders(defaults, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(defaults)+len(overrides))
	for _, in := range []map[string]string{defaults, overrides} {
		keys := make([]string, 0, len(in))
		for k := range in {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[http.CanonicalHeaderKey(k)] = in[k]
		}
	}
	return out
}
