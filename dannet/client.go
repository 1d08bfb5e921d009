// Package dannet is the client-side core of the DanNet MCP server: an HTTP
// transport for the wordnet.dk JSON-LD API and the normalizer that turns its
// semi-structured responses into flat records.
package dannet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wordnet-dk/dannet-mcp/errors"
	"github.com/wordnet-dk/dannet-mcp/internal/httpclient"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of retries after a failed attempt.
	// A success arriving on the final retry still succeeds, so three
	// consecutive 429s followed by a 200 complete within the budget.
	DefaultMaxRetries = 3
)

// Client is an HTTP client for the DanNet API with format negotiation.
//
// The API selects its response format through a format=json query parameter
// rather than an Accept header, and redirects a single unambiguous search
// result straight to that entity's full record, so every request follows
// redirects.
//
// A Client is immutable after construction. Switching servers means building
// a new Client and swapping the reference (see mcpserver); an in-flight
// multi-hop operation may then complete against a mix of old and new
// endpoints, which is accepted and documented rather than synchronized away.
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
	logger     *zap.SugaredLogger
	maxRetries int
	limiter    *rate.Limiter
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Timeout    time.Duration
	MaxRetries int
	// RequestsPerMinute throttles outbound requests; 0 disables throttling.
	RequestsPerMinute int
	Logger            *zap.SugaredLogger
}

// NewClient creates a DanNet client for the given base URL.
func NewClient(baseURL string, opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerMinute)/60, 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.New(opts.Timeout),
		logger:     logger,
		maxRetries: opts.MaxRetries,
		limiter:    limiter,
	}
}

// BaseURL returns the base URL this client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetHTTPClient allows overriding the HTTP client for testing against
// httptest servers.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = httpclient.Wrap(client)
}

// Get fetches endpoint with the caller's query parameters plus the mandatory
// format=json, and returns the decoded body.
//
// Retry policy: network-level failures and HTTP 429 are retried up to the
// configured budget; a 404 surfaces immediately as ErrNotFound; any other
// non-2xx status surfaces immediately as a StatusError.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (any, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("format", "json")

	body, err := c.do(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Wrapf(err, "invalid JSON from %s", endpoint)
	}
	return decoded, nil
}

// GetText fetches endpoint and returns the raw body as text. Used for
// schema documents, which are served as Turtle rather than JSON.
func (c *Client) GetText(ctx context.Context, endpoint string) (string, error) {
	body, err := c.do(ctx, endpoint, url.Values{})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	requestURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var lastErr error

	// maxRetries counts retries after the initial attempt.
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debugw("Retrying DanNet request",
				"url", requestURL, "attempt", attempt, "max_retries", c.maxRetries)
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, errors.Wrap(err, "request throttled past deadline")
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build request")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries {
				c.logger.Warnw("DanNet request failed, will retry",
					"url", requestURL, "attempt", attempt+1, "error", err)
				continue
			}
			return nil, errors.Mark(errors.Wrapf(err, "request to %s failed after %d attempts", endpoint, attempt+1), ErrRetriesExhausted)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, errors.Mark(errors.Newf("resource not found: %s", endpoint), ErrNotFound)

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = errors.Newf("HTTP 429 from %s", endpoint)
			if attempt < c.maxRetries {
				c.logger.Warnw("Rate limited by DanNet, will retry",
					"url", requestURL, "attempt", attempt+1)
				continue
			}
			return nil, errors.Mark(lastErr, ErrRateLimited)

		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return nil, errors.WithStack(&StatusError{Code: resp.StatusCode, Body: string(body)})
		}

		if readErr != nil {
			lastErr = readErr
			if attempt < c.maxRetries {
				c.logger.Warnw("Failed to read DanNet response, will retry",
					"url", requestURL, "attempt", attempt+1, "error", readErr)
				continue
			}
			return nil, errors.Mark(errors.Wrapf(readErr, "reading response from %s", endpoint), ErrRetriesExhausted)
		}

		return body, nil
	}

	return nil, errors.Mark(errors.Wrapf(lastErr, "request to %s", endpoint), ErrRetriesExhausted)
}

// Search queries DanNet for words and synsets by lemma. A single unambiguous
// match redirects to the full entity record; the caller distinguishes the
// two shapes with NormalizeSearch.
func (c *Client) Search(ctx context.Context, lemma, lang string) (map[string]any, error) {
	if lang == "" {
		lang = "da"
	}
	v, err := c.Get(ctx, "dannet/search", map[string]string{"lemma": lemma, "lang": lang})
	if err != nil {
		return nil, err
	}
	m, _ := v.(map[string]any)
	return m, nil
}

// Resource fetches a DanNet entity (synset, word, sense) by identifier.
func (c *Client) Resource(ctx context.Context, id string) (map[string]any, error) {
	v, err := c.Get(ctx, "dannet/data/"+id, nil)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, errors.Mark(errors.Newf("no data for %s", id), ErrNoData)
	}
	return m, nil
}

// External fetches a foreign-vocabulary entity (ontolex, ili, lexinfo, ...)
// loaded into the DanNet triplestore.
func (c *Client) External(ctx context.Context, namespace, id string) (map[string]any, error) {
	v, err := c.Get(ctx, "dannet/external/"+namespace+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, errors.Mark(errors.Newf("no data for %s/%s", namespace, id), ErrNoData)
	}
	return m, nil
}

// Autocomplete returns lemma completions for a word prefix. The service
// expects at least 3 characters; shorter prefixes and upstream failures
// degrade to an empty list rather than an error, matching the tool contract.
func (c *Client) Autocomplete(ctx context.Context, prefix string) []string {
	v, err := c.Get(ctx, "dannet/autocomplete", map[string]string{"s": prefix})
	if err != nil {
		c.logger.Warnw("Autocomplete failed", "prefix", prefix, "error", err)
		return nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := m["autocompletions"].([]any)
	if !ok {
		return nil
	}

	completions := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			completions = append(completions, s)
		}
	}
	return completions
}

// Schema fetches an RDF schema document (Turtle) for a namespace prefix.
func (c *Client) Schema(ctx context.Context, prefix string) (string, error) {
	return c.GetText(ctx, "schema/"+prefix)
}
