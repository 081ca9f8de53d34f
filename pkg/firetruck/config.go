package firetruck

import (
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the FireTruck API root without the version segment.
	DefaultBaseURL = "https://api.firetruck.io"
	// DefaultVersion is the API version appended to the base URL.
	DefaultVersion = "v1"
	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "Firetruck/API/Client"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	jsonAPIMediaType = "application/vnd.api+json"
	apiKeyParam      = "apikey"
)

// Config holds everything a Client needs to build requests.
// It is copied on construction; mutate a live client through its setters.
type Config struct {
	APIKey  string
	BaseURL string
	Version string
	Headers map[string]string
	Verify  bool
	Timeout time.Duration
}

// DefaultHeaders returns the headers sent with every request unless overridden.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":       jsonAPIMediaType,
		"Content-Type": jsonAPIMediaType,
		"User-Agent":   DefaultUserAgent,
	}
}

// DefaultConfig returns the standard configuration for the given API key.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		Version: DefaultVersion,
		Headers: DefaultHeaders(),
		Verify:  true,
		Timeout: DefaultTimeout,
	}
}

// APIURL returns the versioned API root, e.g. https://api.firetruck.io/v1.
func (c Config) APIURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.Trim(c.Version, "/")
}

// Validate reports the first invalid field as an InvalidArgumentError.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return invalidArgument("Config", "api key must not be empty")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return invalidArgument("Config", "base url must not be empty")
	}
	if strings.Trim(c.Version, "/ ") == "" {
		return invalidArgument("Config", "api version must not be empty")
	}
	if c.Timeout <= 0 {
		return invalidArgument("Config", "timeout must be positive")
	}
	for k := range c.Headers {
		if strings.TrimSpace(k) == "" {
			return invalidArgument("Config", "header names must not be empty")
		}
	}
	return nil
}

// clone deep-copies the config and canonicalizes header names.
func (c Config) clone() Config {
	c.Headers = mergeHeaders(nil, c.Headers)
	return c
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
