// Package nasa holds the HTTP clients for the three upstream imagery
// feeds. Each adapter builds its own request and normalizes its own raw
// payload shape; the shapes are never shared between adapters even when
// field names happen to coincide.
package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// DefaultAPIBaseURL serves the Mars rover and APOD feeds.
	DefaultAPIBaseURL = "https://api.nasa.gov"

	// DefaultEPICBaseURL serves the EPIC feed and doubles as the archive
	// root for derived image URLs.
	DefaultEPICBaseURL = "https://epic.gsfc.nasa.gov"

	requestTimeout = 10 * time.Second
)

// Client talks to the upstream NASA endpoints.
type Client struct {
	http     *http.Client
	apiBase  string
	epicBase string
	apiKey   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithAPIBaseURL overrides the api.nasa.gov base URL.
func WithAPIBaseURL(base string) Option {
	return func(c *Client) {
		c.apiBase = strings.TrimSuffix(base, "/")
	}
}

// WithEPICBaseURL overrides the EPIC base URL.
func WithEPICBaseURL(base string) Option {
	return func(c *Client) {
		c.epicBase = strings.TrimSuffix(base, "/")
	}
}

// NewClient creates a new upstream client. The key is only sent on the
// feeds that require one.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiBase:  DefaultAPIBaseURL,
		epicBase: DefaultEPICBaseURL,
		apiKey:   apiKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{
			Timeout: requestTimeout,
		}
	}

	return c
}

// Fetches the url and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %s", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error getting url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %s", err)
	}

	return nil
}

var stripPolicy = bluemonday.StrictPolicy()

// Removes all html tags from the string, usually a title or explanation.
//
// Also limits the length of the string so there's not a massive chunk of text being output.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = stripPolicy.Sanitize(s)
	if len(s) > 2048 {
		s = s[:2048]
	}

	return s
}
