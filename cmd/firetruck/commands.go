package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/firetruck-io/firetruck-go/internal/app"
	"github.com/firetruck-io/firetruck-go/internal/config"
	"github.com/firetruck-io/firetruck-go/internal/journal"
	"github.com/firetruck-io/firetruck-go/internal/logger"
	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
	"github.com/spf13/cobra"
)

type requestFlags struct {
	query    []string
	headers  []string
	body     string
	insecure bool
	output   string
}

func newRequestCmd(c *cli, method string) *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " <path>",
		Short: fmt.Sprintf("Send a %s request to the FireTruck API", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, c, method, args[0], f)
		},
	}

	cmd.Flags().StringArrayVarP(&f.query, "query", "q", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, `header as "Name: value" (repeatable)`)
	cmd.Flags().StringVarP(&f.output, "output", "o", formatJSON, "output format: json or yaml")
	cmd.Flags().BoolVar(&f.insecure, "insecure", false, "skip TLS certificate verification")
	if firetruck.BodyAllowed(method) {
		cmd.Flags().StringVarP(&f.body, "data", "d", "", "JSON request body")
	}
	return cmd
}

func runRequest(cmd *cobra.Command, c *cli, method, path string, f *requestFlags) error {
	if err := checkFormat(f.output); err != nil {
		return err
	}
	opts, err := f.options()
	if err != nil {
		return err
	}

	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Close()

	clientOpts := append([]firetruck.Option{}, c.clientOpts...)
	if f.insecure {
		clientOpts = append(clientOpts, firetruck.WithVerify(false))
	}

	runner, err := app.NewRunner(cmd.Context(), cfg, log, clientOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			log.ErrorObj("runner close failed", "error", err.Error())
		}
	}()

	res := runner.Call(cmd.Context(), method, path, opts)
	if res.Response != nil {
		if err := writeResponse(cmd.OutOrStdout(), f.output, res.Response); err != nil {
			return err
		}
	}
	return res.Err
}

// options converts the raw flags into per-call overrides.
func (f *requestFlags) options() (*firetruck.Options, error) {
	opts := &firetruck.Options{}

	if len(f.query) > 0 {
		opts.Query = make(map[string]string, len(f.query))
		for _, kv := range f.query {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || strings.TrimSpace(k) == "" {
				return nil, fmt.Errorf("invalid query %q (expected key=value)", kv)
			}
			opts.Query[strings.TrimSpace(k)] = v
		}
	}

	if len(f.headers) > 0 {
		opts.Headers = make(map[string]string, len(f.headers))
		for _, h := range f.headers {
			k, v, ok := strings.Cut(h, ":")
			if !ok || strings.TrimSpace(k) == "" {
				return nil, fmt.Errorf("invalid header %q (expected \"Name: value\")", h)
			}
			opts.Headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	if strings.TrimSpace(f.body) != "" {
		raw := json.RawMessage(f.body)
		if !json.Valid(raw) {
			return nil, errors.New("request body is not valid JSON")
		}
		opts.Body = raw
	}
	return opts, nil
}

func newHistoryCmd(c *cli) *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent API calls from the local journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			cfg, _, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Close()

			store, err := journal.NewStore(cfg.JournalType, cfg.JournalPath, journal.Options{
				EntryTTL:        cfg.JournalTTL,
				CleanupInterval: cfg.JournalCleanupInterval,
			})
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(limit)
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}
			if entries == nil {
				entries = []journal.Entry{}
			}
			return writeValue(cmd.OutOrStdout(), output, entries)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries (0 for all)")
	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, "output format: json or yaml")
	return cmd
}

// setup loads config and initializes logging.
func setup(c *cli) (*config.Config, logger.Logger, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger.InfoObj("firetruck starting", "config", cfg.Redacted())
	return cfg, log, nil
}
