package dannet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOntologicalTypesSet(t *testing.T) {
	raw := map[string]any{"@set": []any{"dnc:Animal", "dnc:Object"}}

	types, ok := OntologicalTypes(raw)
	require.True(t, ok)
	assert.Equal(t, []string{"dnc:Animal", "dnc:Object"}, types)
}

func TestOntologicalTypesPlainList(t *testing.T) {
	types, ok := OntologicalTypes([]any{"dnc:Human", "dnc:Occupation"})
	require.True(t, ok)
	assert.Equal(t, []string{"dnc:Human", "dnc:Occupation"}, types)
}

func TestOntologicalTypesLegacyBag(t *testing.T) {
	raw := []any{
		map[string]any{
			"rdf:_0": []any{":dnc/Object"},
			"rdf:_1": []any{":dnc/Animal"},
			"rdf:_2": []any{":rdf/Bag"},
		},
	}

	types, ok := OntologicalTypes(raw)
	require.True(t, ok)
	assert.Equal(t, []string{"dnc:Animal", "dnc:Object"}, types, "non-dnc entries filtered, output sorted")
}

func TestLegacyBagOrderIndependence(t *testing.T) {
	forward := []any{
		map[string]any{
			"_0": []any{":dnc/Animal"},
			"_1": []any{":dnc/Object"},
			"_2": []any{":dnc/Physical"},
		},
	}
	reversed := []any{
		map[string]any{
			"_0": []any{":dnc/Physical"},
			"_1": []any{":dnc/Object"},
			"_2": []any{":dnc/Animal"},
		},
	}

	a, ok := OntologicalTypes(forward)
	require.True(t, ok)
	b, ok := OntologicalTypes(reversed)
	require.True(t, ok)

	assert.Equal(t, a, b, "sorted output must not depend on marker order")
}

func TestLegacyBagDeduplicates(t *testing.T) {
	raw := []any{
		map[string]any{
			"_0": []any{":dnc/Animal"},
			"_1": []any{":dnc/Animal"},
		},
	}

	types, ok := OntologicalTypes(raw)
	require.True(t, ok)
	assert.Equal(t, []string{"dnc:Animal"}, types)
}

func TestOntologicalTypesPassthrough(t *testing.T) {
	malformed := []any{
		"not a list of strings only",
		map[string]any{"_0": []any{":dnc/Animal"}},
	}

	tests := []struct {
		name string
		v    any
	}{
		{"string", "dnc:Animal"},
		{"number", 42},
		{"nil", nil},
		{"empty sequence", []any{}},
		{"map without @set", map[string]any{"other": "thing"}},
		{"bag with non-marker keys", []any{map[string]any{"label": []any{"x"}}}},
		{"bag with multi-element inner sequence", []any{map[string]any{"_0": []any{"a", "b"}}}},
		{"bag with non-sequence value", []any{map[string]any{"_0": "scalar"}}},
		{"mixed sequence", malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := OntologicalTypes(tt.v)
			assert.False(t, ok, "unrecognized shape must pass through")
		})
	}
}

func TestExtractSentiment(t *testing.T) {
	raw := map[string]any{
		"marl:hasPolarity":   "marl:Negative",
		"marl:polarityValue": "-2",
	}

	sentiment, ok := ExtractSentiment(raw)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"polarity": "Negative", "value": "-2"}, sentiment)
}

func TestExtractSentimentLegacySequence(t *testing.T) {
	raw := []any{
		map[string]any{
			"marl:hasPolarity":   "marl:Positive",
			"marl:polarityValue": float64(3),
		},
	}

	sentiment, ok := ExtractSentiment(raw)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"polarity": "Positive", "value": float64(3)}, sentiment)
}

func TestExtractSentimentOmitsAbsentKeys(t *testing.T) {
	sentiment, ok := ExtractSentiment(map[string]any{"marl:hasPolarity": "marl:Positive"})
	require.True(t, ok)
	assert.Equal(t, map[string]any{"polarity": "Positive"}, sentiment)
	assert.NotContains(t, sentiment, "value")
}

func TestExtractSentimentPassthrough(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"nil", nil},
		{"string", "positive"},
		{"list of non-mapping", []any{"marl:Positive", "3"}},
		{"empty list", []any{}},
		{"two-element list", []any{map[string]any{}, map[string]any{}}},
		{"mapping without marl keys", map[string]any{"polarity": "Positive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ExtractSentiment(tt.v)
			assert.False(t, ok, "unrecognized shape must pass through")
		})
	}
}
