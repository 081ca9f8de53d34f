package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firetruck-io/firetruck-go/internal/config"
	"github.com/firetruck-io/firetruck-go/internal/journal"
	"github.com/firetruck-io/firetruck-go/internal/logger"
	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
	"github.com/firetruck-io/firetruck-go/pkg/sinks"
)

// Runner wires the API client together with the call journal and downstream sinks.
// Journal and sink failures are logged and never change a call's result.
type Runner struct {
	cfg     *config.Config
	client  *firetruck.Client
	journal journal.Store
	fanout  *sinks.Fanout
	log     logger.Logger
}

// NewRunner builds a runner from config. Extra client options are applied after
// the config-derived ones.
func NewRunner(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...firetruck.Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = firetruck.OrDiscard(log)
	if ctx == nil {
		ctx = context.Background()
	}

	clientOpts := append([]firetruck.Option{
		firetruck.WithBaseURL(cfg.BaseURL),
		firetruck.WithVersion(cfg.APIVersion),
		firetruck.WithHeaders(cfg.Headers),
		firetruck.WithVerify(cfg.VerifyTLS),
		firetruck.WithTimeout(cfg.Timeout),
		firetruck.WithLogger(log),
	}, opts...)
	client, err := firetruck.New(cfg.APIKey, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init client: %w", err)
	}
	log.InfoObj("client initialized", "client_config", map[string]any{
		"api_url":         client.APIURL(),
		"verify_tls":      client.Verify(),
		"timeout_seconds": int(cfg.Timeout.Seconds()),
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := journal.NewStore(cfg.JournalType, cfg.JournalPath, journal.Options{
		EntryTTL:        cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init journal: %w", err)
	}
	log.InfoObj("journal initialized", "journal_config", map[string]any{
		"type":                     cfg.JournalType,
		"path":                     cfg.JournalPath,
		"entry_ttl_seconds":        int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	return &Runner{
		cfg:     cfg,
		client:  client,
		journal: store,
		fanout:  fanout,
		log:     log,
	}, nil
}

// buildFanout opens the sinks declared in the sinks file. No file means no sinks.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*sinks.Fanout, error) {
	if cfg.SinksFile == "" {
		return sinks.NewFanout(), nil
	}

	declared, err := sinks.LoadFile(cfg.SinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks: %w", err)
	}
	fanout, err := sinks.DefaultKinds().Open(ctx, declared, log)
	if err != nil {
		return nil, fmt.Errorf("open sinks: %w", err)
	}
	log.InfoObj("sinks opened", "sinks_meta", map[string]any{
		"count": fanout.Size(),
		"sinks": fanout.Describe(),
	})
	return fanout, nil
}

// Client exposes the underlying API client.
func (r *Runner) Client() *firetruck.Client { return r.client }

// Call performs one API request, journals it and forwards it to sinks.
func (r *Runner) Call(ctx context.Context, method, path string, opts *firetruck.Options) firetruck.Result {
	start := time.Now()
	res := r.client.Do(ctx, method, path, opts)
	elapsed := time.Since(start)

	entry := journal.Entry{
		Method:     method,
		Path:       path,
		Outcome:    res.Kind().String(),
		DurationMs: elapsed.Milliseconds(),
	}
	if res.Response != nil {
		entry.StatusCode = res.Response.StatusCode
	}
	if res.Err != nil {
		entry.Error = res.Err.Error()
	}
	if err := r.journal.Record(entry); err != nil {
		r.log.ErrorObj("journal record failed", "error", err.Error())
	}

	// Invalid input never reached the API, so there is nothing to forward.
	if res.Kind() != firetruck.KindInvalidArgument && r.fanout.Size() > 0 {
		delivered, err := r.fanout.Send(ctx, sinks.NewEvent(method, path, res))
		if err != nil {
			r.log.ErrorObj("sink delivery failed", "sink_delivery", map[string]any{
				"delivered": delivered,
				"sinks":     r.fanout.Size(),
				"error":     err.Error(),
			})
		}
	}

	return res
}

// History returns up to limit journaled calls, newest first.
func (r *Runner) History(limit int) ([]journal.Entry, error) {
	return r.journal.Recent(limit)
}

// Close releases the journal and sinks.
func (r *Runner) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.journal != nil {
		if err := r.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
	}
	if err := r.fanout.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close sinks: %w", err))
	}
	return errors.Join(errs...)
}
