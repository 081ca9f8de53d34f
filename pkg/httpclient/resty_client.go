package httpclient

import (
	"context"
	"crypto/tls"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
// It keeps one resty client per TLS verification mode.
type RestyClient struct {
	mu       sync.Mutex
	timeout  time.Duration
	verified *resty.Client
	insecure *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified default timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{timeout: timeout}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout, true)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration, verify bool) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if !verify {
		c.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // opt-in via verify=false
	}
	return c
}

func (r *RestyClient) clientFor(verify bool) *resty.Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	if verify {
		if r.verified == nil {
			r.verified = newRestyBaseClient(r.timeout, true)
		}
		return r.verified
	}
	if r.insecure == nil {
		r.insecure = newRestyBaseClient(r.timeout, false)
	}
	return r.insecure
}

// Do performs the request. Responses with status >= 400 are returned wrapped in a *StatusError.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	rr := r.clientFor(req.Verify).R().SetContext(ctx)
	if len(req.Query) > 0 {
		rr.SetQueryParams(req.Query)
	}
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if req.HasBody {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}
	out := &restyResponseAdapter{resp: resp}
	if resp.IsError() {
		return nil, &StatusError{Response: out}
	}
	return out, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
func (r *restyResponseAdapter) Raw() *http.Response { return r.resp.RawResponse }
