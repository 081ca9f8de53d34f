package sinks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSinkPostsEventWithMetadataHeaders(t *testing.T) {
	var got Event
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		header = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), SinkConfig{
		ID:             "hook",
		Type:           TypeHTTP,
		Target:         srv.URL,
		Headers:        map[string]string{"X-Token": "t"},
		TimeoutSeconds: 2,
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	evt := Event{Method: "PATCH", Path: "domains/1", StatusCode: 422, Outcome: "response_error", Body: json.RawMessage(`{"errors":[]}`)}
	if err := sink.Send(context.Background(), evt); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Path != "domains/1" || got.StatusCode != 422 || string(got.Body) != `{"errors":[]}` {
		t.Fatalf("server received %#v", got)
	}
	want := map[string]string{
		"X-Token":                 "t",
		"Content-Type":            "application/json",
		"X-Firetruck-Method":      "PATCH",
		"X-Firetruck-Outcome":     "response_error",
		"X-Firetruck-Status-Code": "422",
	}
	for k, v := range want {
		if header.Get(k) != v {
			t.Fatalf("%s = %q, want %q", k, header.Get(k), v)
		}
	}
}

func TestHTTPSinkErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), SinkConfig{ID: "hook", Target: srv.URL, TimeoutSeconds: 1}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}
	if err := sink.Send(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}
