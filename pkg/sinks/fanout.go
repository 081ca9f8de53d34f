package sinks

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type route struct {
	sink Sink
	cfg  SinkConfig
}

// Fanout sends each event to every sink whose filters accept it.
// The zero value and a nil *Fanout have no sinks.
type Fanout struct {
	routes []route
}

// NewFanout wraps sinks that accept every event. Nil sinks are dropped.
func NewFanout(sinks ...Sink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.routes = append(f.routes, route{sink: s})
		}
	}
	return f
}

// Send delivers evt to the accepting sinks concurrently and waits for all of
// them. It returns how many deliveries succeeded and the joined failures.
func (f *Fanout) Send(ctx context.Context, evt Event) (int, error) {
	if f == nil {
		return 0, nil
	}

	var targets []Sink
	for _, r := range f.routes {
		if r.cfg.accepts(evt) {
			targets = append(targets, r.sink)
		}
	}
	if len(targets) == 0 {
		return 0, nil
	}

	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, s := range targets {
		wg.Add(1)
		go func(i int, s Sink) {
			defer wg.Done()
			if err := s.Send(ctx, evt); err != nil {
				errs[i] = fmt.Errorf("%s sink %q: %w", s.Type(), s.ID(), err)
			}
		}(i, s)
	}
	wg.Wait()

	delivered := 0
	for _, err := range errs {
		if err == nil {
			delivered++
		}
	}
	return delivered, errors.Join(errs...)
}

// Size returns the number of sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.routes)
}

// Describe lists the id and type of every sink, for logging.
func (f *Fanout) Describe() []map[string]string {
	if f == nil {
		return nil
	}
	out := make([]map[string]string, 0, len(f.routes))
	for _, r := range f.routes {
		out = append(out, map[string]string{"id": r.sink.ID(), "type": r.sink.Type()})
	}
	return out
}

// Close closes the sinks that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, r := range f.routes {
		if c, ok := r.sink.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close sink %q: %w", r.sink.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
