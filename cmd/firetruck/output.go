package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// responseView is what the CLI prints for a completed call.
type responseView struct {
	StatusCode int `json:"status_code" yaml:"status_code"`
	Body       any `json:"body" yaml:"body"`
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (expected json or yaml)", format)
	}
}

func writeResponse(w io.Writer, format string, resp *firetruck.Response) error {
	return writeValue(w, format, responseView{StatusCode: resp.StatusCode, Body: resp.Body})
}

func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
