package sinks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type stubSink struct {
	id     string
	typ    string
	err    error
	calls  atomic.Int32
	closed bool
}

func (s *stubSink) ID() string   { return s.id }
func (s *stubSink) Type() string { return s.typ }
func (s *stubSink) Send(context.Context, Event) error {
	s.calls.Add(1)
	return s.err
}
func (s *stubSink) Close() error {
	s.closed = true
	return nil
}

func TestFanoutSendAggregatesErrors(t *testing.T) {
	ok := &stubSink{id: "ok", typ: TypeHTTP}
	bad := &stubSink{id: "bad", typ: TypeSQS, err: errors.New("failed")}
	fanout := NewFanout(ok, nil, bad)

	if fanout.Size() != 2 {
		t.Fatalf("nil sinks should be dropped, size=%d", fanout.Size())
	}
	count, err := fanout.Send(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if ok.calls.Load() != 1 || bad.calls.Load() != 1 {
		t.Fatalf("every sink should be called once: ok=%d bad=%d", ok.calls.Load(), bad.calls.Load())
	}
	if err := fanout.Close(); err != nil || !ok.closed || !bad.closed {
		t.Fatalf("Close: err=%v ok=%v bad=%v", err, ok.closed, bad.closed)
	}
}

func TestFanoutHonorsFilters(t *testing.T) {
	all := &stubSink{id: "all", typ: TypeHTTP}
	failures := &stubSink{id: "failures", typ: TypeSNS}
	fanout := &Fanout{routes: []route{
		{sink: all},
		{sink: failures, cfg: SinkConfig{Outcomes: []string{"response_error", "transport_error"}}},
	}}

	if n, err := fanout.Send(context.Background(), Event{Method: "GET", Outcome: "ok"}); n != 1 || err != nil {
		t.Fatalf("ok event: n=%d err=%v", n, err)
	}
	if n, err := fanout.Send(context.Background(), Event{Method: "GET", Outcome: "response_error"}); n != 2 || err != nil {
		t.Fatalf("error event: n=%d err=%v", n, err)
	}
	if all.calls.Load() != 2 || failures.calls.Load() != 1 {
		t.Fatalf("calls: all=%d failures=%d", all.calls.Load(), failures.calls.Load())
	}
	if d := fanout.Describe(); len(d) != 2 || d[1]["id"] != "failures" || d[1]["type"] != TypeSNS {
		t.Fatalf("Describe = %#v", d)
	}
}

func TestNilFanoutIsNoop(t *testing.T) {
	var f *Fanout
	if n, err := f.Send(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout: n=%d err=%v", n, err)
	}
	if f.Size() != 0 || f.Close() != nil || f.Describe() != nil {
		t.Fatalf("nil fanout should be empty")
	}
}
