package sinks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
	"gopkg.in/yaml.v3"
)

const defaultHTTPTimeoutSeconds = 5

// SinkConfig declares one sink. Which fields apply depends on Type:
//
//	http:   Target is the webhook URL; Headers and TimeoutSeconds are optional.
//	sqs:    Target is the queue URL; Region is required.
//	sns:    Target is the topic ARN; Region defaults to the ARN's region.
//	pubsub: Target is the topic ID inside Project.
//
// Outcomes and Methods restrict which events reach the sink; empty means all.
type SinkConfig struct {
	ID             string            `json:"id" yaml:"id"`
	Type           string            `json:"type" yaml:"type"`
	Disabled       bool              `json:"disabled" yaml:"disabled"`
	Target         string            `json:"target" yaml:"target"`
	Region         string            `json:"region,omitempty" yaml:"region,omitempty"`
	Project        string            `json:"project,omitempty" yaml:"project,omitempty"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	TimeoutSeconds int               `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	Credentials    Credentials       `json:"credentials" yaml:"credentials"`
	Outcomes       []string          `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Methods        []string          `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// Credentials override the ambient cloud credentials. AWS sinks use the key
// pair; Pub/Sub uses File. Leave empty to use the default provider chain.
type Credentials struct {
	AccessKeyID     string `json:"access_key_id,omitempty" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty" yaml:"secret_access_key,omitempty"`
	SessionToken    string `json:"session_token,omitempty" yaml:"session_token,omitempty"`
	File            string `json:"file,omitempty" yaml:"file,omitempty"`
}

// LoadFile reads sink declarations from a .yaml, .yml or .json file and
// returns the enabled ones in file order. Entries are normalized and checked
// for shape; type-specific checks happen in Kinds.Open.
func LoadFile(path string) ([]SinkConfig, error) {
	raw, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("read sinks file: %w", err)
	}

	var doc struct {
		Sinks []SinkConfig `json:"sinks" yaml:"sinks"`
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &doc)
	case ".json":
		err = json.Unmarshal(raw, &doc)
	default:
		return nil, fmt.Errorf("sinks file %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode sinks file: %w", err)
	}

	seen := make(map[string]bool, len(doc.Sinks))
	enabled := make([]SinkConfig, 0, len(doc.Sinks))
	for i, cfg := range doc.Sinks {
		cfg = cfg.normalized()
		if err := cfg.check(); err != nil {
			return nil, fmt.Errorf("sinks[%d]: %w", i, err)
		}
		if seen[cfg.ID] {
			return nil, fmt.Errorf("sinks[%d]: duplicate id %q", i, cfg.ID)
		}
		seen[cfg.ID] = true
		if !cfg.Disabled {
			enabled = append(enabled, cfg)
		}
	}
	return enabled, nil
}

// normalized trims every field, lowercases Type and Outcomes, uppercases
// Methods and canonicalizes header names.
func (c SinkConfig) normalized() SinkConfig {
	c.ID = strings.TrimSpace(c.ID)
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))
	c.Target = strings.TrimSpace(c.Target)
	c.Region = strings.TrimSpace(c.Region)
	c.Project = strings.TrimSpace(c.Project)
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultHTTPTimeoutSeconds
	}

	cred := &c.Credentials
	cred.AccessKeyID = strings.TrimSpace(cred.AccessKeyID)
	cred.SecretAccessKey = strings.TrimSpace(cred.SecretAccessKey)
	cred.SessionToken = strings.TrimSpace(cred.SessionToken)
	cred.File = strings.TrimSpace(cred.File)

	if len(c.Headers) > 0 {
		headers := make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			if k = strings.TrimSpace(k); k != "" {
				headers[http.CanonicalHeaderKey(k)] = strings.TrimSpace(v)
			}
		}
		c.Headers = headers
	}
	c.Outcomes = mapStrings(c.Outcomes, strings.ToLower)
	c.Methods = mapStrings(c.Methods, strings.ToUpper)
	return c
}

// check validates the fields common to every sink type.
func (c SinkConfig) check() error {
	if c.ID == "" {
		return errors.New("id is required")
	}
	if c.Type == "" {
		return fmt.Errorf("sink %q: type is required", c.ID)
	}
	if c.Target == "" {
		return fmt.Errorf("sink %q: target is required", c.ID)
	}
	if (c.Credentials.AccessKeyID == "") != (c.Credentials.SecretAccessKey == "") {
		return fmt.Errorf("sink %q: access_key_id and secret_access_key must be set together", c.ID)
	}
	for _, o := range c.Outcomes {
		if !knownOutcome(o) {
			return fmt.Errorf("sink %q: unknown outcome %q", c.ID, o)
		}
	}
	for _, m := range c.Methods {
		if !firetruck.IsValidMethod(m) {
			return fmt.Errorf("sink %q: unknown method %q", c.ID, m)
		}
	}
	return nil
}

// accepts reports whether evt passes the sink's outcome and method filters.
func (c SinkConfig) accepts(evt Event) bool {
	return matchAny(c.Outcomes, evt.Outcome) && matchAny(c.Methods, evt.Method)
}

func knownOutcome(o string) bool {
	for _, k := range []firetruck.Kind{firetruck.KindOK, firetruck.KindInvalidArgument, firetruck.KindResponse, firetruck.KindTransport} {
		if k.String() == o {
			return true
		}
	}
	return false
}

// matchAny is true when allowed is empty or contains v.
func matchAny(allowed []string, v string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

func mapStrings(in []string, fn func(string) string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, fn(s))
		}
	}
	return out
}
