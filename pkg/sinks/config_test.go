package sinks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "sinks.yaml", `
sinks:
  - id: hook
    type: http
    disabled: true
    target: https://example.com/hook
  - id: failures
    type: SQS
    target: " https://sqs.eu-west-1.amazonaws.com/1/calls "
    region: eu-west-1
    credentials:
      access_key_id: AKIA
      secret_access_key: secret
    outcomes: [Response_Error, transport_error]
    methods: [post, delete]
    headers:
      x-ignored: " 1 "
`)

	cfgs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfgs) != 1 || cfgs[0].ID != "failures" {
		t.Fatalf("expected only the enabled sink, got %#v", cfgs)
	}
	c := cfgs[0]
	if c.Type != TypeSQS || c.Target != "https://sqs.eu-west-1.amazonaws.com/1/calls" {
		t.Fatalf("not normalized: %#v", c)
	}
	if c.Credentials.AccessKeyID != "AKIA" || c.TimeoutSeconds != defaultHTTPTimeoutSeconds {
		t.Fatalf("credentials or defaults wrong: %#v", c)
	}
	if strings.Join(c.Outcomes, ",") != "response_error,transport_error" || strings.Join(c.Methods, ",") != "POST,DELETE" {
		t.Fatalf("filters = %v %v", c.Outcomes, c.Methods)
	}
	if c.Headers["X-Ignored"] != "1" {
		t.Fatalf("headers = %#v", c.Headers)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "sinks.json", `{"sinks":[{"id":"ps","type":"pubsub","target":"calls","project":"p"}]}`)
	cfgs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfgs) != 1 || cfgs[0].Project != "p" || cfgs[0].Target != "calls" {
		t.Fatalf("cfgs = %#v", cfgs)
	}
}

func TestLoadFileErrors(t *testing.T) {
	cases := map[string]string{
		"dup.yaml": `
sinks:
  - {id: a, type: http, target: "https://example.com"}
  - {id: a, type: http, target: "https://example.com/2"}
`,
		"noid.yaml":     `sinks: [{type: http, target: "https://example.com"}]`,
		"notype.yaml":   `sinks: [{id: a, target: "https://example.com"}]`,
		"notarget.yaml": `sinks: [{id: a, type: http}]`,
		"halfkey.yaml":  `sinks: [{id: a, type: sns, target: arn, credentials: {access_key_id: only}}]`,
		"outcome.yaml":  `sinks: [{id: a, type: http, target: "https://example.com", outcomes: [maybe]}]`,
		"method.yaml":   `sinks: [{id: a, type: http, target: "https://example.com", methods: [TRACE]}]`,
		"broken.json":   `{"sinks": [`,
		"sinks.toml":    `sinks = []`,
	}
	for name, raw := range cases {
		if _, err := LoadFile(writeFile(t, name, raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestSinkConfigAccepts(t *testing.T) {
	cfg := SinkConfig{Outcomes: []string{"response_error"}, Methods: []string{"POST"}}
	cases := []struct {
		evt  Event
		want bool
	}{
		{Event{Method: "POST", Outcome: "response_error"}, true},
		{Event{Method: "GET", Outcome: "response_error"}, false},
		{Event{Method: "POST", Outcome: "ok"}, false},
	}
	for _, c := range cases {
		if got := cfg.accepts(c.evt); got != c.want {
			t.Fatalf("accepts(%+v) = %v", c.evt, got)
		}
	}
	if !(SinkConfig{}).accepts(Event{Method: "GET", Outcome: "ok"}) {
		t.Fatalf("empty filters should accept everything")
	}
}
