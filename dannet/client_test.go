package dannet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordnet-dk/dannet-mcp/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, Options{})
	client.SetHTTPClient(srv.Client())
	return client, srv
}

func TestGetAppendsFormatParam(t *testing.T) {
	var gotFormat, gotLemma string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFormat = r.URL.Query().Get("format")
		gotLemma = r.URL.Query().Get("lemma")
		fmt.Fprint(w, `{"@graph": []}`)
	}))

	_, err := client.Get(context.Background(), "dannet/search", map[string]string{"lemma": "hund"})
	require.NoError(t, err)
	assert.Equal(t, "json", gotFormat)
	assert.Equal(t, "hund", gotLemma)
}

func TestGetNotFound(t *testing.T) {
	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.NotFound(w, r)
	}))

	_, err := client.Get(context.Background(), "dannet/data/synset-999999", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(1), requests.Load(), "404 must not be retried")
}

func TestGetRateLimitedThenSuccess(t *testing.T) {
	// Three consecutive 429s followed by a 200: the success lands on the
	// final retry, inside the budget of three retries after the first
	// attempt.
	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"@id": "dn:synset-52", "@type": "ontolex:LexicalConcept"}`)
	}))

	v, err := client.Get(context.Background(), "dannet/data/synset-52", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(4), requests.Load())

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dn:synset-52", m["@id"])
}

func TestGetRateLimitExhausted(t *testing.T) {
	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Get(context.Background(), "dannet/search", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, int32(4), requests.Load(), "initial attempt plus three retries")
}

func TestGetServerError(t *testing.T) {
	var requests atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "terminal failure", http.StatusInternalServerError)
	}))

	_, err := client.Get(context.Background(), "dannet/search", nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, statusErr.Body, "terminal failure")
	assert.Equal(t, int32(1), requests.Load(), "non-429 status must not be retried")
}

func TestGetRetriesExhaustedOnNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, Options{})
	client.SetHTTPClient(srv.Client())
	srv.Close() // connection refused from here on

	_, err := client.Get(context.Background(), "dannet/search", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRetriesExhausted))
}

func TestGetInvalidJSON(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))

	_, err := client.Get(context.Background(), "dannet/search", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestGetFollowsSearchRedirect(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dannet/search" {
			http.Redirect(w, r, "/dannet/data/synset-11677?format=json", http.StatusFound)
			return
		}
		fmt.Fprint(w, `{"@id": "dn:synset-11677", "@type": "ontolex:LexicalConcept"}`)
	}))

	body, err := client.Search(context.Background(), "svinkeærinde", "da")
	require.NoError(t, err)
	assert.Equal(t, "dn:synset-11677", body["@id"])
}

func TestResourceNoData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	_, err := client.Resource(context.Background(), "synset-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestExternal(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dannet/external/ontolex/LexicalConcept", r.URL.Path)
		fmt.Fprint(w, `{"@id": "ontolex:LexicalConcept", "@type": "owl:Class"}`)
	}))

	body, err := client.External(context.Background(), "ontolex", "LexicalConcept")
	require.NoError(t, err)
	assert.Equal(t, "owl:Class", body["@type"])
}

func TestAutocomplete(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hyg", r.URL.Query().Get("s"))
		fmt.Fprint(w, `{"autocompletions": ["hygge", "hyggelig", "hygiejne"]}`)
	}))

	completions := client.Autocomplete(context.Background(), "hyg")
	assert.Equal(t, []string{"hygge", "hyggelig", "hygiejne"}, completions)
}

func TestAutocompleteShortPrefix(t *testing.T) {
	// The service wants at least 3 characters; a 2-character prefix yields
	// an empty result, never an error.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	assert.Empty(t, client.Autocomplete(context.Background(), "hy"))
}

func TestAutocompleteUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	assert.Empty(t, client.Autocomplete(context.Background(), "hyg"))
}

func TestSchemaReturnsPlainText(t *testing.T) {
	const turtle = "@prefix dns: <https://wordnet.dk/dannet/schema/> .\n"
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schema/dns", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("format"), "schema endpoint is plain text, no format param")
		fmt.Fprint(w, turtle)
	}))

	schema, err := client.Schema(context.Background(), "dns")
	require.NoError(t, err)
	assert.Equal(t, turtle, schema)
}

func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	client := NewClient("https://wordnet.dk/", Options{})
	assert.Equal(t, "https://wordnet.dk", client.BaseURL())
}
