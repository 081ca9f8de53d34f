package sinks

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
	"github.com/firetruck-io/firetruck-go/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

// webhookHeaderPrefix prefixes the event attributes copied onto webhook requests,
// e.g. X-Firetruck-Outcome: response_error.
const webhookHeaderPrefix = "X-Firetruck-"

// httpSink POSTs each event as JSON to a webhook.
type httpSink struct {
	id      string
	url     string
	headers map[string]string
	client  *resty.Client
	log     firetruck.Logger
}

func checkHTTP(cfg SinkConfig) error {
	u, err := url.Parse(cfg.Target)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("target %q is not an http(s) URL", cfg.Target)
	}
	return nil
}

func newHTTPSink(_ context.Context, cfg SinkConfig, log firetruck.Logger) (Sink, error) {
	return &httpSink{
		id:      cfg.ID,
		url:     cfg.Target,
		headers: cfg.Headers,
		client:  httpclient.NewRestyHTTPClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
		log:     firetruck.OrDiscard(log),
	}, nil
}

func (h *httpSink) ID() string   { return h.id }
func (h *httpSink) Type() string { return TypeHTTP }

// Send posts evt. Anything but a 2xx answer is an error.
func (h *httpSink) Send(ctx context.Context, evt Event) error {
	payload, err := evt.encode()
	if err != nil {
		return err
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeaders(h.headers).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	for name, value := range evt.attributes() {
		req.SetHeader(webhookHeader(name), value)
	}

	resp, err := req.Post(h.url)
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("webhook answered %d: %s", resp.StatusCode(), snippet(resp.Body()))
	}
	h.log.DebugObj("webhook delivered event", "sink_delivery", map[string]any{
		"sink_id": h.id,
		"status":  resp.StatusCode(),
	})
	return nil
}

// webhookHeader turns an attribute name like status_code into X-Firetruck-Status-Code.
func webhookHeader(attr string) string {
	return webhookHeaderPrefix + strings.ReplaceAll(attr, "_", "-")
}

func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		body = body[:max]
	}
	return strings.TrimSpace(string(body))
}
