package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jpalmerr/pokedex/internal/explorer"
)

// maxResponseBodySize caps the creature listing read into memory.
const maxResponseBodySize = 8 << 20 // 8MB

// DefaultTimeout applies when [Config.Timeout] is zero.
const DefaultTimeout = 10 * time.Second

// connection pooling limits; a single upstream host is expected
const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 2
	defaultIdleConnTimeout     = 60 * time.Second
)

// ErrFetchFailed is wrapped by every error returned from [Client.FetchCreatures].
//
// Network errors, non-2xx responses and undecodable bodies all collapse into
// this single kind; the wrapped detail is for logs only.
var ErrFetchFailed = errors.New("fetch creatures failed")

// Config describes the creature-listing endpoint.
type Config struct {
	// URL is the absolute URL of the listing endpoint.
	URL string

	// Headers are sent with the request.
	Headers map[string]string

	// Timeout bounds the whole request. Zero means [DefaultTimeout].
	Timeout time.Duration
}

// Client fetches the creature listing over HTTP.
//
// The timeout is applied per request via the context rather than as a global
// client timeout, and the response body is size-limited.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a [Client] for the given endpoint.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		cfg: cfg,
	}
}

// URL returns the configured listing URL.
func (c *Client) URL() string {
	return c.cfg.URL
}

// FetchCreatures issues one GET to the listing endpoint and decodes the
// response in service order.
//
// There is no retry and no partial result: any failure returns a nil slice
// and an error wrapping [ErrFetchFailed].
func (c *Client) FetchCreatures(ctx context.Context) ([]explorer.Creature, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range c.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrFetchFailed, err)
	}

	creatures, err := decodeCreatures(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return creatures, nil
}

// Close closes idle connections in the client's pool.
//
// Safe to call multiple times and on a nil client. The client remains usable.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// wireCreature is the listing's JSON shape for a single record.
type wireCreature struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Types []wireSlot `json:"types"`
}

type wireSlot struct {
	Slot int `json:"slot"`
	Type struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"type"`
}

// decodeCreatures parses a JSON array of creature records.
//
// Records missing "types" decode with no tags; they are not rejected.
func decodeCreatures(body []byte) ([]explorer.Creature, error) {
	var wire []wireCreature
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if wire == nil {
		// a literal JSON null is not a listing
		return nil, errors.New("failed to decode response: expected a JSON array")
	}

	creatures := make([]explorer.Creature, 0, len(wire))
	for _, w := range wire {
		types := make([]string, 0, len(w.Types))
		for _, slot := range w.Types {
			types = append(types, slot.Type.Name)
		}
		creatures = append(creatures, explorer.Creature{
			ID:    w.ID,
			Name:  w.Name,
			Types: types,
		})
	}
	return creatures, nil
}
