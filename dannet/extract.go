package dannet

import (
	"sort"
	"strconv"
	"strings"
)

// The dnc concept vocabulary holds ontological types. Values appear as
// "dnc:Animal" in the JSON-LD era and ":dnc/Animal" in legacy bag encodings.
const (
	conceptPrefix       = "dnc:"
	legacyConceptPrefix = ":dnc/"
)

// OntologicalTypes extracts the ontological-type set from a raw
// dns:ontologicalType value.
//
// Recognized shapes:
//   - {"@set": ["dnc:Animal", ...]}, the JSON-LD set encoding
//   - ["dnc:Animal", ...], a plain array
//   - the legacy RDF bag: a singleton sequence holding one mapping whose
//     keys are positional markers ("rdf:_0", "_1", ...) with one-element
//     sequences as values; flattened via flattenBag
//
// Returns (types, true) for a recognized shape. Anything else returns
// (nil, false) and the caller must keep the original value unchanged;
// unrecognized server payloads degrade to pass-through, never an error.
func OntologicalTypes(v any) ([]string, bool) {
	switch val := v.(type) {
	case map[string]any:
		set, ok := val["@set"].([]any)
		if !ok {
			return nil, false
		}
		return stringSlice(set)
	case []any:
		if types, ok := flattenBag(val); ok {
			return types, true
		}
		return stringSlice(val)
	default:
		return nil, false
	}
}

// flattenBag flattens the legacy positional-marker encoding: a non-empty
// sequence whose first element is a mapping from marker keys to one-element
// sequences. Values are collected in marker order, filtered to the dnc
// concept vocabulary, normalized to the JSON-LD "dnc:Name" form, and
// returned sorted and deduplicated.
func flattenBag(seq []any) ([]string, bool) {
	if len(seq) == 0 {
		return nil, false
	}
	bag, ok := seq[0].(map[string]any)
	if !ok || len(bag) == 0 {
		return nil, false
	}

	type entry struct {
		index int
		value string
	}
	entries := make([]entry, 0, len(bag))

	for key, raw := range bag {
		index, ok := bagIndex(key)
		if !ok {
			return nil, false
		}
		inner, ok := raw.([]any)
		if !ok || len(inner) != 1 {
			return nil, false
		}
		value, ok := inner[0].(string)
		if !ok {
			return nil, false
		}
		entries = append(entries, entry{index: index, value: value})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	seen := make(map[string]struct{}, len(entries))
	types := make([]string, 0, len(entries))
	for _, e := range entries {
		if !strings.HasPrefix(e.value, legacyConceptPrefix) {
			continue
		}
		// ":dnc/Animal" → "dnc:Animal"
		normalized := conceptPrefix + e.value[len(legacyConceptPrefix):]
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		types = append(types, normalized)
	}

	sort.Strings(types)
	return types, true
}

// bagIndex parses a positional container marker: "rdf:_0", "_1", or "2".
func bagIndex(key string) (int, bool) {
	key = strings.TrimPrefix(key, "rdf:")
	key = strings.TrimPrefix(key, "_")
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ExtractSentiment extracts a sentiment annotation from a raw dns:sentiment
// value: a mapping (or the legacy singleton sequence holding one mapping)
// with a marl:hasPolarity and/or marl:polarityValue field.
//
// The polarity's namespace prefix is stripped ("marl:Positive" → "Positive")
// and the numeric value is kept as-is; absent fields are omitted from the
// result. Any other shape returns (nil, false) and the caller keeps the
// original value unchanged.
func ExtractSentiment(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		seq, isSeq := v.([]any)
		if !isSeq || len(seq) != 1 {
			return nil, false
		}
		if m, ok = seq[0].(map[string]any); !ok {
			return nil, false
		}
	}

	result := make(map[string]any, 2)
	if polarity, ok := m["marl:hasPolarity"].(string); ok {
		result["polarity"] = ResourceID(polarity)
	}
	if value, ok := m["marl:polarityValue"]; ok {
		result["value"] = value
	}
	if len(result) == 0 {
		return nil, false
	}
	return result, true
}

func stringSlice(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
