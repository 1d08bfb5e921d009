package dannet

import (
	"fmt"
	"strings"
)

// Kind tags the shape of a normalized search response, decided once at the
// top of NormalizeSearch rather than re-checked throughout.
type Kind int

const (
	// KindEmpty is a response with no usable results.
	KindEmpty Kind = iota
	// KindEntity is a single full entity record (the service redirected an
	// unambiguous search straight to its match).
	KindEntity
	// KindSummaries is a multi-result response, one summary per candidate.
	KindSummaries
)

// SearchResult is a flat summary of one search candidate.
type SearchResult struct {
	Word       string `json:"word"`
	SynsetID   string `json:"synset_id"`
	Label      string `json:"label"`
	Definition string `json:"definition"`
}

// Normalized is the result of normalizing one search response body.
type Normalized struct {
	Kind      Kind
	Entity    map[string]any
	Summaries []SearchResult
}

// NormalizeSearch converts a raw search response into either one full entity
// record or a list of candidate summaries.
//
// Candidates with no discoverable identifier are skipped and malformed
// candidates are dropped; normalization never fails on individual items.
func NormalizeSearch(body map[string]any, query, lang string) Normalized {
	if body == nil {
		return Normalized{Kind: KindEmpty}
	}

	// Single entity: the search redirected to one full record.
	if id, ok := body["@id"].(string); ok {
		if _, hasType := body["@type"]; hasType && strings.HasPrefix(id, dataPrefix) {
			if synsetID := ResourceID(id); synsetID != "" {
				entity := NormalizeEntity(body)
				entity["synset_id"] = synsetID
				return Normalized{Kind: KindEntity, Entity: entity}
			}
		}
	}

	graph, ok := body["@graph"].([]any)
	if !ok || len(graph) == 0 {
		return Normalized{Kind: KindEmpty}
	}

	summaries := make([]SearchResult, 0, len(graph))
	for _, item := range graph {
		candidate, ok := item.(map[string]any)
		if !ok {
			continue
		}

		id, _ := candidate["@id"].(string)
		if !strings.HasPrefix(id, dataPrefix) {
			continue
		}
		synsetID := ResourceID(id)
		if synsetID == "" {
			continue
		}

		// Definition may be absent; empty string is fine, null is not.
		definition := LanguageValue(candidate["skos:definition"], lang)

		label := LanguageValue(candidate["rdfs:label"], lang)
		if label == "" {
			// Synthesized placeholder in the DDO sense-label style.
			label = fmt.Sprintf("{%s_§1}", query)
		}

		summaries = append(summaries, SearchResult{
			Word:       query,
			SynsetID:   synsetID,
			Label:      label,
			Definition: definition,
		})
	}

	if len(summaries) == 0 {
		return Normalized{Kind: KindEmpty}
	}
	return Normalized{Kind: KindSummaries, Summaries: summaries}
}

// NormalizeEntity copies an entity record through, flattening the two
// recognized special-case encodings in place: ontological-type bags and
// sentiment annotations. Unrecognized shapes are kept unchanged, so the
// record survives forward-incompatible server payloads intact.
func NormalizeEntity(body map[string]any) map[string]any {
	record := make(map[string]any, len(body)+1)
	for key, value := range body {
		record[key] = value
	}

	if raw, ok := record["dns:ontologicalType"]; ok {
		if types, ok := OntologicalTypes(raw); ok {
			record["dns:ontologicalType"] = types
		}
	}
	if raw, ok := record["dns:sentiment"]; ok {
		if sentiment, ok := ExtractSentiment(raw); ok {
			record["dns:sentiment"] = sentiment
		}
	}

	return record
}

// CleanID strips any namespace prefix from id and, when the remainder is
// purely numeric, prepends the given entity kind ("synset", "word",
// "sense"). "1876" becomes "synset-1876"; "dn:synset-1876" and
// "synset-1876" both pass through as "synset-1876".
func CleanID(id, kind string) string {
	clean := ResourceID(id)
	if clean == "" {
		return clean
	}
	if isDigits(clean) {
		return kind + "-" + clean
	}
	return clean
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
