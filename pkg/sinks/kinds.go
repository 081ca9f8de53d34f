package sinks

import (
	"context"
	"errors"
	"fmt"

	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
)

// Kind validates and constructs one sink type.
type Kind struct {
	// Check rejects configs the type cannot use. Nil means any config is accepted.
	Check func(cfg SinkConfig) error
	Build func(ctx context.Context, cfg SinkConfig, log firetruck.Logger) (Sink, error)
}

// Kinds maps a sink type name to its implementation.
type Kinds map[string]Kind

// DefaultKinds returns the built-in sink types.
func DefaultKinds() Kinds {
	return Kinds{
		TypeHTTP:   {Check: checkHTTP, Build: newHTTPSink},
		TypeSQS:    {Check: checkSQS, Build: newSQSSink},
		TypeSNS:    {Check: checkSNS, Build: newSNSSink},
		TypePubSub: {Check: checkPubSub, Build: newPubSubSink},
	}
}

// Open checks and builds every config and returns them behind a Fanout.
// If any sink fails, the ones already built are closed and the error returned.
func (k Kinds) Open(ctx context.Context, cfgs []SinkConfig, log firetruck.Logger) (*Fanout, error) {
	log = firetruck.OrDiscard(log)
	fanout := &Fanout{}

	for _, cfg := range cfgs {
		s, err := k.build(ctx, cfg, log)
		if err != nil {
			if cerr := fanout.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close partial sinks: %w", cerr))
			}
			return nil, err
		}
		fanout.routes = append(fanout.routes, route{sink: s, cfg: cfg})
	}
	return fanout, nil
}

func (k Kinds) build(ctx context.Context, cfg SinkConfig, log firetruck.Logger) (Sink, error) {
	kind, ok := k[cfg.Type]
	if !ok || kind.Build == nil {
		return nil, fmt.Errorf("sink %q: unknown type %q", cfg.ID, cfg.Type)
	}
	if kind.Check != nil {
		if err := kind.Check(cfg); err != nil {
			return nil, fmt.Errorf("sink %q: %w", cfg.ID, err)
		}
	}
	s, err := kind.Build(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sink %q: %w", cfg.ID, err)
	}
	return s, nil
}
