package dannet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceID(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"data prefix", "dn:synset-3047", "synset-3047"},
		{"legacy data prefix", ":dn/synset-1876", "synset-1876"},
		{"word reference", "dn:word-11021628", "word-11021628"},
		{"foreign prefix", "ontolex:LexicalConcept", "LexicalConcept"},
		{"path separator", "schemas/wn/hypernym", "hypernym"},
		{"bare identifier", "synset-52", "synset-52"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResourceID(tt.uri))
		})
	}
}

func TestResourceIDIdempotent(t *testing.T) {
	uris := []string{
		"dn:synset-3047",
		":dn/word-123",
		"ontolex:evokes",
		"a/b/c",
		"plain",
	}

	for _, uri := range uris {
		stripped := ResourceID(uri)
		assert.Equal(t, stripped, ResourceID(stripped), "stripping %q twice must equal stripping once", uri)
	}
}

func TestLanguageValue(t *testing.T) {
	tests := []struct {
		name string
		v    any
		lang string
		want string
	}{
		{"plain string", "hund", "da", "hund"},
		{"structured literal", map[string]any{"@value": "hund", "@language": "da"}, "da", "hund"},
		{"nil", nil, "da", ""},
		{"empty sequence", []any{}, "da", ""},
		{
			"preferred language wins",
			[]any{
				map[string]any{"@value": "dog", "@language": "en"},
				map[string]any{"@value": "hund", "@language": "da"},
			},
			"da",
			"hund",
		},
		{
			"fallback to first element",
			[]any{
				map[string]any{"@value": "dog", "@language": "en"},
				map[string]any{"@value": "Hund", "@language": "de"},
			},
			"da",
			"dog",
		},
		{"sequence of strings", []any{"hund", "køter"}, "da", "hund"},
		{"object without value field", map[string]any{"@language": "da"}, "da", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LanguageValue(tt.v, tt.lang))
		})
	}
}

func TestValidDocument(t *testing.T) {
	valid := map[string]any{
		"@context": map[string]any{"dn": "https://wordnet.dk/dannet/data/"},
		"@id":      "dn:synset-3047",
		"@type":    "ontolex:LexicalConcept",
	}
	assert.True(t, ValidDocument(valid))

	assert.False(t, ValidDocument(nil))
	assert.False(t, ValidDocument(map[string]any{"@id": "dn:synset-3047"}))
}

func TestNamespacePrefixes(t *testing.T) {
	doc := map[string]any{
		"@context": map[string]any{
			"dn":    "https://wordnet.dk/dannet/data/",
			"dns":   "https://wordnet.dk/dannet/schema/",
			"extra": 42,
		},
	}

	prefixes := NamespacePrefixes(doc)
	assert.Equal(t, map[string]string{
		"dn":  "https://wordnet.dk/dannet/data/",
		"dns": "https://wordnet.dk/dannet/schema/",
	}, prefixes)

	assert.Empty(t, NamespacePrefixes(map[string]any{}))
}

func TestResolvePrefixed(t *testing.T) {
	context := map[string]string{
		"dns": "https://wordnet.dk/dannet/schema/",
	}

	assert.Equal(t, "https://wordnet.dk/dannet/schema/sentiment", ResolvePrefixed("dns:sentiment", context))
	assert.Equal(t, "wn:hypernym", ResolvePrefixed("wn:hypernym", context), "unknown prefix passes through")
	assert.Equal(t, "https://example.com/x", ResolvePrefixed("https://example.com/x", context), "full URI passes through")
	assert.Equal(t, "bare", ResolvePrefixed("bare", context))
}
