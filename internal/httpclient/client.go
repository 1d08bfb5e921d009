// Package httpclient provides the HTTP client used for all outbound DanNet
// requests: redirect-following with a hard cap, scheme validation, and a
// fixed timeout.
//
// Redirect-following matters here: the DanNet search endpoint redirects a
// single unambiguous match straight to that entity's full record.
package httpclient

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wordnet-dk/dannet-mcp/errors"
)

// Client wraps http.Client with URL validation and a redirect cap.
type Client struct {
	*http.Client
	allowedSchemes []string
	maxRedirects   int
}

// New creates an HTTP client with the given timeout. Redirects are followed
// up to a fixed cap so a misbehaving server cannot loop us forever.
func New(timeout time.Duration) *Client {
	client := &Client{
		Client: &http.Client{
			Timeout: timeout,
		},
		allowedSchemes: []string{"http", "https"},
		maxRedirects:   10,
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.maxRedirects {
			return errors.Newf("stopped after %d redirects", client.maxRedirects)
		}
		if err := client.validateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	return client
}

// validateURL checks scheme and hostname before a request goes out.
func (c *Client) validateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	allowed := false
	for _, allowedScheme := range c.allowedSchemes {
		if scheme == allowedScheme {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, c.allowedSchemes)
	}

	if u.Hostname() == "" {
		return errors.New("URL missing hostname")
	}

	return nil
}

// ValidateURL validates a URL string before creating a request.
func (c *Client) ValidateURL(urlStr string) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid URL")
	}

	if err := c.validateURL(u); err != nil {
		return nil, err
	}

	return u, nil
}

// Do executes an HTTP request after validating its URL.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.validateURL(req.URL); err != nil {
		return nil, err
	}
	return c.Client.Do(req)
}

// Wrap wraps an existing http.Client, keeping the validation and redirect
// behavior. Intended for tests that need httptest server clients.
func Wrap(client *http.Client) *Client {
	return &Client{
		Client:         client,
		allowedSchemes: []string{"http", "https"},
		maxRedirects:   10,
	}
}
