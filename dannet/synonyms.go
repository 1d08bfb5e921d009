package dannet

import (
	"context"
	"sort"
	"strings"

	"github.com/wordnet-dk/dannet-mcp/errors"
)

// Synonyms finds lexical alternatives for a word through shared synsets: a
// two-hop traversal from the word's synsets along ontolex:isEvokedBy to
// every sibling word, resolved to its canonical label.
//
// Each hop is a separate blocking fetch with its own timeout budget, so the
// cost is proportional to sense count times evoking-form count. Words whose
// records have gone missing upstream are skipped; transport failures
// propagate.
//
// The result is the sorted, comma-joined union of labels, excluding the
// input word case-insensitively.
func (c *Client) Synonyms(ctx context.Context, word string) (string, error) {
	body, err := c.Search(ctx, word, "da")
	if err != nil {
		return "", errors.Wrapf(err, "search for %q", word)
	}

	var synsetIDs []string
	switch normalized := NormalizeSearch(body, word, "da"); normalized.Kind {
	case KindEntity:
		if id, ok := normalized.Entity["synset_id"].(string); ok {
			synsetIDs = append(synsetIDs, id)
		}
	case KindSummaries:
		for _, result := range normalized.Summaries {
			// Only exact word matches contribute synsets.
			if strings.EqualFold(result.Word, word) && result.SynsetID != "" {
				synsetIDs = append(synsetIDs, result.SynsetID)
			}
		}
	case KindEmpty:
		return "", nil
	}

	synonyms := make(map[string]struct{})

	for _, synsetID := range synsetIDs {
		synset, err := c.Resource(ctx, synsetID)
		if err != nil {
			if errors.IsAny(err, ErrNotFound, ErrNoData) {
				continue
			}
			return "", errors.Wrapf(err, "fetch synset %s", synsetID)
		}

		for _, ref := range stringRefs(synset["ontolex:isEvokedBy"]) {
			wordID := ResourceID(ref)
			if wordID == "" {
				continue
			}

			record, err := c.Resource(ctx, wordID)
			if err != nil {
				if errors.IsAny(err, ErrNotFound, ErrNoData) {
					continue
				}
				return "", errors.Wrapf(err, "fetch word %s", wordID)
			}

			lemma := strings.Trim(LanguageValue(record["rdfs:label"], "da"), `"`)
			if lemma == "" || strings.EqualFold(lemma, word) {
				continue
			}
			synonyms[lemma] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(synonyms))
	for lemma := range synonyms {
		sorted = append(sorted, lemma)
	}
	sort.Strings(sorted)

	return strings.Join(sorted, ", "), nil
}

// stringRefs normalizes a property value that is either one URI reference
// or a sequence of them.
func stringRefs(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		refs := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				refs = append(refs, s)
			}
		}
		return refs
	default:
		return nil
	}
}
