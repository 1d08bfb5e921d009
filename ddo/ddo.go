// Package ddo retrieves full definitions from Den Danske Ordbog (ordnet.dk),
// the dictionary DanNet senses are derived from. DanNet caps synset
// definitions at a fixed length; the complete text lives behind the
// dns:source URLs attached to each sense.
package ddo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/wordnet-dk/dannet-mcp/dannet"
	"github.com/wordnet-dk/dannet-mcp/errors"
	"github.com/wordnet-dk/dannet-mcp/internal/httpclient"
)

// DefaultTimeout bounds each ordnet.dk page fetch. DDO pages are slower
// than the DanNet API and entirely out of our control.
const DefaultTimeout = 10 * time.Second

// minDefinitionLength filters out stray matches like list bullets.
const minDefinitionLength = 5

// Result is the outcome of one definition lookup. Lookups are best-effort
// across all of a synset's senses; per-sense failures accumulate in Errors
// instead of aborting the remaining URLs.
type Result struct {
	SynsetID            string   `json:"synset_id"`
	Definitions         []string `json:"ddo_definitions"`
	SourceURLs          []string `json:"source_urls"`
	SuccessURLs         []string `json:"success_urls"`
	Errors              []string `json:"errors"`
	TruncatedDefinition string   `json:"truncated_definition"`
}

// Fetcher resolves a synset to its DDO source pages and scrapes the full
// definition text out of them.
type Fetcher struct {
	dannet *dannet.Client
	http   *httpclient.Client
	logger *zap.SugaredLogger
}

// NewFetcher creates a Fetcher backed by the given DanNet client.
func NewFetcher(client *dannet.Client, logger *zap.SugaredLogger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Fetcher{
		dannet: client,
		http:   httpclient.New(DefaultTimeout),
		logger: logger,
	}
}

// SetHTTPClient allows overriding the page-fetching client for testing.
func (f *Fetcher) SetHTTPClient(client *http.Client) {
	f.http = httpclient.Wrap(client)
}

// FetchDefinition walks synset -> senses -> dns:source URLs and scrapes each
// DDO page for the definition marked as selected. The returned error covers
// only the initial synset fetch; everything downstream is recorded in the
// Result, since DDO and DanNet have diverged over time and dead source URLs
// are expected.
func (f *Fetcher) FetchDefinition(ctx context.Context, synsetID string) (*Result, error) {
	cleanID := dannet.CleanID(synsetID, "synset")

	synset, err := f.dannet.Resource(ctx, cleanID)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch synset %s", cleanID)
	}

	result := &Result{
		SynsetID:            cleanID,
		Definitions:         []string{},
		SourceURLs:          []string{},
		SuccessURLs:         []string{},
		Errors:              []string{},
		TruncatedDefinition: dannet.LanguageValue(synset["skos:definition"], "da"),
	}

	for _, senseRef := range refs(synset["ontolex:lexicalizedSense"]) {
		senseID := dannet.CleanID(senseRef, "sense")

		sense, err := f.dannet.Resource(ctx, senseID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to fetch sense %s: %v", senseID, err))
			continue
		}

		sourceURL := sourceURL(sense["dns:source"])
		if sourceURL == "" {
			continue
		}
		result.SourceURLs = append(result.SourceURLs, sourceURL)

		definition, err := f.scrapeDefinition(ctx, sourceURL)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to fetch/parse %s: %v", sourceURL, err))
			continue
		}
		if definition == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("no selected definition found at %s", sourceURL))
			continue
		}

		result.Definitions = append(result.Definitions, definition)
		result.SuccessURLs = append(result.SuccessURLs, sourceURL)
	}

	return result, nil
}

// scrapeDefinition fetches a DDO page and extracts the first definition in
// the entry marked as selected. When the page resolves, the sense the
// source URL points at carries the CSS class "selected".
func (f *Fetcher) scrapeDefinition(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Newf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "parsing HTML")
	}

	var definition string
	doc.Find("div.definitionBox.selected span.definition").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if len(text) > minDefinitionLength {
			definition = text
			return false
		}
		return true
	})
	return definition, nil
}

// sourceURL extracts the first dns:source value, stripping the angle
// brackets some records wrap URIs in.
func sourceURL(v any) string {
	switch val := v.(type) {
	case string:
		return strings.Trim(val, "<>")
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				return strings.Trim(s, "<>")
			}
		}
	}
	return ""
}

// refs normalizes a property value that is either one URI reference or a
// sequence of them.
func refs(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
